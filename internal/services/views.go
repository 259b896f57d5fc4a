package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/internal/db"
	"github.com/pegkeeper/dollar-protocol-service/internal/db/model"
	"github.com/pegkeeper/dollar-protocol-service/internal/governance"
	"github.com/pegkeeper/dollar-protocol-service/internal/observability/tracing"
	"github.com/pegkeeper/dollar-protocol-service/internal/pool"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

type EpochPublic struct {
	Epoch          uint64        `json:"epoch"`
	EpochTime      uint64        `json:"epoch_time"`
	NextEpochStart int64         `json:"next_epoch_start"`
	Bootstrapping  bool          `json:"bootstrapping"`
	ActiveVersion  string        `json:"active_version"`
	Debt           types.Amount  `json:"debt"`
	Redeemable     types.Amount  `json:"redeemable"`
	Price          types.Decimal `json:"price"`
	PriceValid     bool          `json:"price_valid"`
	TotalSupply    types.Amount  `json:"total_supply"`
	DaoTotalBonded types.Amount  `json:"dao_total_bonded"`
}

type EpochSnapshotPublic struct {
	Epoch         uint64            `json:"epoch"`
	TotalBonded   string            `json:"total_bonded"`
	TotalSupply   string            `json:"total_supply"`
	Debt          string            `json:"debt"`
	Redeemable    string            `json:"redeemable"`
	Price         string            `json:"price"`
	PriceValid    bool              `json:"price_valid"`
	ActiveVersion string            `json:"active_version"`
	PoolsBonded   map[string]string `json:"pools_bonded"`
	Timestamp     int64             `json:"timestamp"`
}

type CandidatePublic struct {
	governance.CandidateView
	Registered bool `json:"registered"`
}

type EventPublic struct {
	ID        string            `json:"id"`
	Seq       int64             `json:"seq"`
	Type      string            `json:"type"`
	Epoch     uint64            `json:"epoch"`
	Pool      string            `json:"pool,omitempty"`
	Account   string            `json:"account,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

func fromEventDocument(d model.EventDocument) EventPublic {
	return EventPublic{
		ID:        d.ID,
		Seq:       d.Seq,
		Type:      d.Type,
		Epoch:     d.Epoch,
		Pool:      d.Pool,
		Account:   d.Account,
		Fields:    d.Fields,
		Timestamp: d.Timestamp,
	}
}

func (s *Services) Epoch(ctx context.Context) *EpochPublic {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &EpochPublic{
		Epoch:          s.st.Epoch,
		EpochTime:      s.clock.EpochTime(),
		NextEpochStart: s.clock.StartOf(s.st.Epoch + 1).Unix(),
		Bootstrapping:  s.params.IsBootstrapping(s.st.Epoch),
		ActiveVersion:  s.st.ActiveVersion,
		Debt:           s.st.Debt,
		Redeemable:     s.st.Redeemable,
		Price:          s.st.Price,
		PriceValid:     s.st.PriceValid,
		TotalSupply:    s.clients.TotalSupply(types.AssetDollar),
		DaoTotalBonded: s.pools[types.PoolDAO].TotalBonded(s.st),
	}
}

// EpochSnapshot reads the snapshot recorded when epoch was advanced into.
func (s *Services) EpochSnapshot(ctx context.Context, epoch uint64) (*EpochSnapshotPublic, *types.Error) {
	d, err := tracing.WrapWithSpan(ctx, "FindEpochSnapshot", func() (*model.EpochSnapshotDocument, error) {
		return s.DbClient.FindEpochSnapshot(ctx, epoch)
	})
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewError(http.StatusNotFound, types.NotFound, err)
		}
		log.Ctx(ctx).Error().Err(err).Uint64("epoch", epoch).Msg("Failed to find epoch snapshot")
		return nil, types.NewInternalServiceError(err)
	}
	return &EpochSnapshotPublic{
		Epoch:         d.Epoch,
		TotalBonded:   d.TotalBonded,
		TotalSupply:   d.TotalSupply,
		Debt:          d.Debt,
		Redeemable:    d.Redeemable,
		Price:         d.Price,
		PriceValid:    d.PriceValid,
		ActiveVersion: d.ActiveVersion,
		PoolsBonded:   d.PoolsBonded,
		Timestamp:     d.Timestamp,
	}, nil
}

func (s *Services) Pool(ctx context.Context, id types.PoolID) (*pool.PoolView, *types.Error) {
	e, apiErr := s.engine(id)
	if apiErr != nil {
		return nil, apiErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := e.PoolView(s.st)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("pool", id.String()).Msg("failed to build pool view")
		return nil, types.AsError(err)
	}
	return view, nil
}

func (s *Services) PoolAccount(ctx context.Context, id types.PoolID, account types.AccountID) (*pool.AccountView, *types.Error) {
	e, apiErr := s.engine(id)
	if apiErr != nil {
		return nil, apiErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := e.AccountView(s.st, account)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("pool", id.String()).Msg("failed to build account view")
		return nil, types.AsError(err)
	}
	return view, nil
}

// Candidate reports the vote state of a governance candidate. Unknown ids
// that were never nominated are not found.
func (s *Services) Candidate(ctx context.Context, candidate string) (*CandidatePublic, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, registered := s.catalog.Get(candidate)
	_, nominated := s.st.LookupCandidate(candidate)
	if !registered && !nominated {
		return nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound,
			fmt.Sprintf("candidate %s not found", candidate))
	}
	return &CandidatePublic{
		CandidateView: s.governor.CandidateView(s.st, candidate),
		Registered:    registered,
	}, nil
}

// Balances returns account's balance of every protocol asset.
func (s *Services) Balances(account types.AccountID) map[types.AssetID]types.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()

	balances := make(map[types.AssetID]types.Amount, len(s.clients.Tokens))
	for asset, tk := range s.clients.Tokens {
		balances[asset] = tk.BalanceOf(account)
	}
	return balances
}

func (s *Services) Events(ctx context.Context, filter db.EventFilter, pageToken string) ([]EventPublic, string, *types.Error) {
	resultMap, err := tracing.WrapWithSpan(ctx, "FindEvents", func() (*db.DbResultMap[model.EventDocument], error) {
		return s.DbClient.FindEvents(ctx, filter, pageToken)
	})
	if err != nil {
		if db.IsInvalidPaginationTokenError(err) {
			log.Ctx(ctx).Warn().Err(err).Msg("Invalid pagination token when fetching events")
			return nil, "", types.NewError(http.StatusBadRequest, types.BadRequest, err)
		}
		log.Ctx(ctx).Error().Err(err).Msg("Failed to find events")
		return nil, "", types.NewInternalServiceError(err)
	}
	events := make([]EventPublic, 0, len(resultMap.Data))
	for _, d := range resultMap.Data {
		events = append(events, fromEventDocument(d))
	}
	return events, resultMap.PaginationToken, nil
}
