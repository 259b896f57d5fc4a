package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/internal/clients"
	"github.com/pegkeeper/dollar-protocol-service/internal/config"
	"github.com/pegkeeper/dollar-protocol-service/internal/db"
	"github.com/pegkeeper/dollar-protocol-service/internal/epoch"
	"github.com/pegkeeper/dollar-protocol-service/internal/governance"
	"github.com/pegkeeper/dollar-protocol-service/internal/observability/metrics"
	"github.com/pegkeeper/dollar-protocol-service/internal/pool"
	"github.com/pegkeeper/dollar-protocol-service/internal/regulator"
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// EventPublisher sends encoded protocol events to the message queue.
type EventPublisher interface {
	EncodeEvent(evt *types.Event) (string, error)
	SendRaw(ctx context.Context, body string) error
	IsConnectionHealthy() error
}

// Service layer owns the protocol state and is the only way to mutate it.
// Every operation is serialised, and the events it emits are fanned out to
// the database and the queue before the call returns.
type Services struct {
	DbClient  db.DBClient
	Publisher EventPublisher

	cfg      *config.Config
	params   *types.GlobalParams
	clients  *clients.Clients
	clock    *epoch.Clock
	catalog  *regulator.Catalog
	pools    map[types.PoolID]*pool.Engine
	governor *governance.Governor
	dao      types.AccountID
	treasury types.AccountID

	// sinks runs the db and queue writes of one emission side by side
	sinks pond.Pool

	mu      sync.Mutex
	st      *state.ProtocolState
	lastSeq int64
}

func New(ctx context.Context, cfg *config.Config, globalParams *types.GlobalParams, publisher EventPublisher) (*Services, error) {
	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while creating db client")
		return nil, err
	}
	protocolClients, err := clients.New(cfg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while creating protocol clients")
		return nil, err
	}
	return NewWithDependencies(cfg, globalParams, dbClient, publisher, protocolClients, time.Now)
}

// NewWithDependencies builds the genesis protocol state on top of already
// constructed collaborators. publisher may be nil, in which case events are
// only persisted.
func NewWithDependencies(
	cfg *config.Config, globalParams *types.GlobalParams, dbClient db.DBClient,
	publisher EventPublisher, protocolClients *clients.Clients, now func() time.Time,
) (*Services, error) {
	catalog := regulator.NewCatalog(globalParams)
	if _, ok := catalog.Get(globalParams.ActiveVersion); !ok {
		return nil, fmt.Errorf("active version %s is not declared", globalParams.ActiveVersion)
	}

	dao := types.AccountID(cfg.Protocol.DaoAccount)
	s := &Services{
		DbClient:  dbClient,
		Publisher: publisher,
		cfg:       cfg,
		params:    globalParams,
		clients:   protocolClients,
		clock:     epoch.NewClock(globalParams.EpochStart, globalParams.EpochPeriod, now),
		catalog:   catalog,
		pools:     map[types.PoolID]*pool.Engine{},
		dao:       dao,
		treasury:  types.AccountID(cfg.Protocol.TreasuryAccount),
		sinks:     pond.NewPool(2, pond.WithQueueSize(16)),
	}

	var pools []*state.Pool
	for _, layout := range pool.Layout(globalParams, dao) {
		e := pool.New(layout, globalParams, dao, protocolClients, protocolClients.Venue)
		s.pools[layout.ID] = e
		pools = append(pools, e.NewState())
	}
	s.st = state.New(globalParams.ActiveVersion, pools...)
	s.governor = governance.New(globalParams, catalog, s.pools[types.PoolDAO])
	return s, nil
}

// DoHealthCheck pings the database and, when configured, the queue.
func (s *Services) DoHealthCheck(ctx context.Context) error {
	if err := s.DbClient.Ping(ctx); err != nil {
		return err
	}
	if s.Publisher != nil {
		return s.Publisher.IsConnectionHealthy()
	}
	return nil
}

// Stop waits for in-flight event writes.
func (s *Services) Stop() {
	s.sinks.StopAndWait()
}

func (s *Services) protocol() *regulator.Protocol {
	return &regulator.Protocol{
		State:    s.st,
		Params:   s.params,
		Tokens:   s.clients,
		DAO:      s.dao,
		Treasury: s.treasury,
	}
}

func (s *Services) engine(id types.PoolID) (*pool.Engine, *types.Error) {
	e, ok := s.pools[id]
	if !ok {
		return nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, fmt.Sprintf("pool %s not found", id))
	}
	return e, nil
}

// recordSnapshot refreshes the protocol gauges. Callers hold s.mu.
func (s *Services) recordSnapshot() {
	snap := metrics.ProtocolSnapshot{
		Epoch:      s.st.Epoch,
		Debt:       s.st.Debt.Float64(),
		Price:      s.st.Price.Float64(),
		PriceValid: s.st.PriceValid,
		Supply:     map[string]float64{},
		Bonded:     map[string]float64{},
	}
	for asset, tk := range s.clients.Tokens {
		snap.Supply[string(asset)] = tk.TotalSupply().Float64()
	}
	for id, e := range s.pools {
		snap.Bonded[id.String()] = e.TotalBonded(s.st).Float64()
	}
	metrics.RecordProtocolSnapshot(snap)
}
