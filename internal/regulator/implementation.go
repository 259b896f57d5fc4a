package regulator

import (
	"context"
	"sort"

	"github.com/pegkeeper/dollar-protocol-service/internal/pool"
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Protocol is everything an implementation may read or mutate during a step.
type Protocol struct {
	State    *state.ProtocolState
	Params   *types.GlobalParams
	Tokens   pool.TokenSource
	DAO      types.AccountID
	Treasury types.AccountID
}

func (p *Protocol) poolAddress(id types.PoolID) types.AccountID {
	return types.PoolAddress(p.DAO, id)
}

// Implementation is the governance-swappable protocol logic. The active one
// is named by ProtocolState.ActiveVersion.
type Implementation interface {
	Version() string
	// Initialize runs once, when governance commits this implementation.
	Initialize(ctx context.Context, p *Protocol) error
	// Step runs the supply rebase for the epoch that was just entered.
	Step(ctx context.Context, p *Protocol, price types.Decimal, valid bool) (*types.Event, error)
}

// Catalog holds every implementation governance may switch to.
type Catalog struct {
	impls map[string]Implementation
}

// NewCatalog registers a Standard implementation for every declared version.
func NewCatalog(params *types.GlobalParams) *Catalog {
	c := &Catalog{impls: map[string]Implementation{}}
	for _, v := range params.Versions {
		c.Register(NewStandard(v))
	}
	return c
}

func (c *Catalog) Register(impl Implementation) {
	c.impls[impl.Version()] = impl
}

func (c *Catalog) Get(version string) (Implementation, bool) {
	impl, ok := c.impls[version]
	return impl, ok
}

func (c *Catalog) Versions() []string {
	versions := make([]string, 0, len(c.impls))
	for v := range c.impls {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}
