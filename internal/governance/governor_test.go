package governance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pegkeeper/dollar-protocol-service/internal/clients/token"
	"github.com/pegkeeper/dollar-protocol-service/internal/epoch"
	"github.com/pegkeeper/dollar-protocol-service/internal/pool"
	"github.com/pegkeeper/dollar-protocol-service/internal/regulator"
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

const (
	dao   types.AccountID = "dao"
	user1 types.AccountID = "user1"
	user2 types.AccountID = "user2"
	user3 types.AccountID = "user3"

	candidate = "v2"
)

type ledgers map[types.AssetID]*token.Ledger

func (l ledgers) Token(asset types.AssetID) (token.Token, error) {
	tk, ok := l[asset]
	if !ok {
		return nil, fmt.Errorf("unknown asset %s", asset)
	}
	return tk, nil
}

type failingImpl struct{}

func (failingImpl) Version() string { return "broken" }

func (failingImpl) Initialize(ctx context.Context, p *regulator.Protocol) error {
	return errors.New("initialize failed")
}

func (failingImpl) Step(ctx context.Context, p *regulator.Protocol, price types.Decimal, valid bool) (*types.Event, error) {
	return nil, nil
}

type fixture struct {
	ctx      context.Context
	params   *types.GlobalParams
	dollar   *token.Ledger
	daoPool  *pool.Engine
	governor *Governor
	protocol *regulator.Protocol
	st       *state.ProtocolState
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	params := types.DefaultGlobalParams()
	v2 := *params.Versions[0]
	v2.Version = candidate
	params.Versions = append(params.Versions, &v2)

	dollar := token.NewLedger(types.AssetDollar, dao)
	tokens := ledgers{types.AssetDollar: dollar, types.AssetGovernance: token.NewLedger(types.AssetGovernance, dao)}

	var daoCfg pool.Config
	for _, cfg := range pool.Layout(params, dao) {
		if cfg.ID == types.PoolDAO {
			daoCfg = cfg
		}
	}
	daoPool := pool.New(daoCfg, params, dao, tokens, nil)
	catalog := regulator.NewCatalog(params)
	catalog.Register(failingImpl{})

	st := state.New(params.ActiveVersion, daoPool.NewState())
	st.Epoch = params.BootstrappingPeriod + 8

	return &fixture{
		ctx:      context.Background(),
		params:   params,
		dollar:   dollar,
		daoPool:  daoPool,
		governor: New(params, catalog, daoPool),
		protocol: &regulator.Protocol{State: st, Params: params, Tokens: tokens, DAO: dao, Treasury: "treasury"},
		st:       st,
	}
}

func (f *fixture) bond(t *testing.T, account types.AccountID, amount uint64) {
	t.Helper()
	f.dollar.Faucet(account, types.NewAmount(amount))
	require.NoError(t, f.dollar.Approve(f.ctx, account, f.daoPool.Address(), types.MaxAmount()))
	_, err := f.daoPool.Deposit(f.ctx, f.st, account, types.NewAmount(amount))
	require.NoError(t, err)
	_, err = f.daoPool.Bond(f.ctx, f.st, account, types.NewAmount(amount))
	require.NoError(t, err)
}

// snapshot records the DAO total bonded for the current epoch the way advance does.
func (f *fixture) snapshot() {
	f.st.Snapshots[f.st.Epoch] = state.EpochSnapshot{Epoch: f.st.Epoch, TotalBonded: f.daoPool.TotalBonded(f.st)}
}

func (f *fixture) advance(n int) []*types.Event {
	var events []*types.Event
	for i := 0; i < n; i++ {
		epoch.Increment(f.st, f.daoPool.TotalBonded(f.st), f.dollar.TotalSupply())
		events = append(events, f.governor.ResolveDue(f.st)...)
	}
	return events
}

func (f *fixture) vote(t *testing.T, account types.AccountID, choice types.VoteChoice) {
	t.Helper()
	_, err := f.governor.Vote(f.ctx, f.st, account, candidate, choice)
	require.NoError(t, err)
}

func TestGovernanceRoundTripApproved(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 600)
	f.bond(t, user2, 400)
	f.snapshot()

	f.vote(t, user1, types.Approve)
	f.vote(t, user2, types.Reject)
	start := f.st.Epoch

	view := f.governor.CandidateView(f.st, candidate)
	assert.True(t, view.Nominated)
	assert.Equal(t, start, view.Start)
	assert.Equal(t, f.params.Governance.VotePeriod, view.Period)
	assert.Equal(t, types.NewAmount(600), view.Approve)
	assert.Equal(t, types.NewAmount(400), view.Reject)

	events := f.advance(int(f.params.Governance.VotePeriod))
	assert.Empty(t, events)
	_, err := f.governor.Commit(f.ctx, f.protocol, user1, candidate)
	assert.ErrorIs(t, err, types.ErrNotEnded)

	events = f.advance(1)
	require.Len(t, events, 1)
	assert.Equal(t, types.EventProposalResolved, events[0].Type)
	assert.Equal(t, "approved", events[0].Fields["outcome"])
	// resolution alone never switches the implementation
	assert.Equal(t, "v1", f.st.ActiveVersion)

	evt, err := f.governor.Commit(f.ctx, f.protocol, user1, candidate)
	require.NoError(t, err)
	assert.Equal(t, types.EventCommit, evt.Type)
	assert.Equal(t, "v1", evt.Fields["previous"])
	assert.Equal(t, candidate, f.st.ActiveVersion)
	assert.True(t, f.st.Initialized[candidate])
	assert.Equal(t, types.OutcomeCommitted, f.governor.CandidateView(f.st, candidate).Outcome)

	_, err = f.governor.Commit(f.ctx, f.protocol, user1, candidate)
	assert.ErrorIs(t, err, types.ErrAlreadyInitialized)
}

func TestGovernanceNotApproved(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 600)
	f.bond(t, user2, 400)
	f.snapshot()

	f.vote(t, user1, types.Reject)
	f.vote(t, user2, types.Approve)

	events := f.advance(int(f.params.Governance.VotePeriod) + 1)
	require.Len(t, events, 1)
	assert.Equal(t, "rejected", events[0].Fields["outcome"])

	_, err := f.governor.Commit(f.ctx, f.protocol, user2, candidate)
	assert.ErrorIs(t, err, types.ErrNotApproved)
	assert.Equal(t, "v1", f.st.ActiveVersion)
}

func TestGovernanceTieIsNotApproved(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 500)
	f.bond(t, user2, 500)
	f.snapshot()

	f.vote(t, user1, types.Approve)
	f.vote(t, user2, types.Reject)
	f.advance(int(f.params.Governance.VotePeriod) + 1)

	_, err := f.governor.Commit(f.ctx, f.protocol, user1, candidate)
	assert.ErrorIs(t, err, types.ErrNotApproved)
}

func TestGovernanceNoQuorum(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 200)
	f.bond(t, user2, 800)
	f.snapshot()

	f.vote(t, user1, types.Approve)
	events := f.advance(int(f.params.Governance.VotePeriod) + 1)
	require.Len(t, events, 1)
	assert.Equal(t, "no_quorum", events[0].Fields["outcome"])

	_, err := f.governor.Commit(f.ctx, f.protocol, user1, candidate)
	assert.ErrorIs(t, err, types.ErrNoQuorum)
}

func TestGovernanceQuorumUsesStartSnapshot(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 400)
	f.bond(t, user2, 600)
	f.snapshot()

	f.vote(t, user1, types.Approve)
	// bonding after the start does not raise the quorum bar
	f.bond(t, user3, 5000)
	f.advance(int(f.params.Governance.VotePeriod) + 1)

	_, err := f.governor.Commit(f.ctx, f.protocol, user1, candidate)
	require.NoError(t, err)
}

func TestGovernanceExpired(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 1000)
	f.snapshot()
	f.vote(t, user1, types.Approve)

	events := f.advance(int(f.params.Governance.VotePeriod + f.params.Governance.Expiration + 2))
	require.Len(t, events, 2)
	assert.Equal(t, "approved", events[0].Fields["outcome"])
	assert.Equal(t, "expired", events[1].Fields["outcome"])

	_, err := f.governor.Commit(f.ctx, f.protocol, user1, candidate)
	assert.ErrorIs(t, err, types.ErrExpired)
}

func TestVotePreconditions(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 1000)
	f.bond(t, user3, 1)
	f.snapshot()

	_, err := f.governor.Vote(f.ctx, f.st, user2, candidate, types.Approve)
	assert.ErrorIs(t, err, types.ErrNoStake)

	_, err = f.governor.Vote(f.ctx, f.st, user3, candidate, types.Approve)
	assert.ErrorIs(t, err, types.ErrInsufficientStake)

	_, err = f.governor.Vote(f.ctx, f.st, user1, "v9", types.Approve)
	assert.ErrorIs(t, err, types.ErrUnknownImplementation)

	_, err = f.governor.Commit(f.ctx, f.protocol, user1, candidate)
	assert.ErrorIs(t, err, types.ErrNotNominated)

	// once nominated, small stakes may vote
	f.vote(t, user1, types.Approve)
	f.vote(t, user3, types.Reject)
	assert.Equal(t, types.NewAmount(1), f.governor.CandidateView(f.st, candidate).Reject)

	f.advance(int(f.params.Governance.VotePeriod) + 1)
	_, err = f.governor.Vote(f.ctx, f.st, user1, candidate, types.Reject)
	assert.ErrorIs(t, err, types.ErrVotingEnded)
}

func TestVoteRejectsUnknownChoice(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 1000)
	f.snapshot()
	before := f.st.Clone()

	_, err := f.governor.Vote(f.ctx, f.st, user1, candidate, types.VoteChoice(3))
	require.Error(t, err)
	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, http.StatusBadRequest, typed.StatusCode)
	assert.Equal(t, types.BadRequest, typed.ErrorCode)
	assert.Equal(t, before, f.st)
	assert.False(t, f.governor.CandidateView(f.st, candidate).Nominated)
}

func TestNoGovernanceDuringBootstrapping(t *testing.T) {
	f := newFixture(t)
	f.st.Epoch = 10
	f.bond(t, user1, 1000)

	_, err := f.governor.Vote(f.ctx, f.st, user1, candidate, types.Approve)
	assert.ErrorIs(t, err, types.ErrNoGovernBootstrapping)
	_, err = f.governor.Commit(f.ctx, f.protocol, user1, candidate)
	assert.ErrorIs(t, err, types.ErrNoGovernBootstrapping)
	_, err = f.governor.EmergencyCommit(f.ctx, f.protocol, user1, candidate, 100)
	assert.ErrorIs(t, err, types.ErrNoGovernBootstrapping)
}

func TestRevoteMovesWeight(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 600)
	f.bond(t, user2, 400)
	f.snapshot()

	f.vote(t, user1, types.Approve)
	f.vote(t, user1, types.Reject)
	view := f.governor.CandidateView(f.st, candidate)
	assert.True(t, view.Approve.IsZero())
	assert.Equal(t, types.NewAmount(600), view.Reject)
	assert.Equal(t, types.Reject, f.governor.VoteOf(f.st, user1, candidate))

	f.vote(t, user1, types.Undecided)
	view = f.governor.CandidateView(f.st, candidate)
	assert.True(t, view.Approve.IsZero())
	assert.True(t, view.Reject.IsZero())
}

func TestVoteLocksAccount(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 1000)
	f.snapshot()
	f.advance(1)

	f.vote(t, user1, types.Approve)
	first := f.st.Epoch + f.params.Governance.VotePeriod + 1
	p, _ := f.st.Pool(types.PoolDAO)
	assert.Equal(t, first, p.Lookup(user1).LockedUntil)
	assert.Equal(t, types.StatusLocked, f.daoPool.StatusOf(f.st, user1))

	_, err := f.daoPool.Unbond(f.ctx, f.st, user1, types.NewAmount(1))
	assert.ErrorIs(t, err, types.ErrLocked)

	// a later vote on another candidate extends the lock
	f.advance(3)
	_, err = f.governor.Vote(f.ctx, f.st, user1, "v1", types.Approve)
	require.NoError(t, err)
	assert.Equal(t, first+3, p.Lookup(user1).LockedUntil)

	f.advance(int(f.params.Governance.VotePeriod) + 1)
	assert.NotEqual(t, types.StatusLocked, f.daoPool.StatusOf(f.st, user1))
}

func TestEmergencyCommit(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 750)
	f.bond(t, user2, 250)
	f.snapshot()

	f.vote(t, user1, types.Approve)
	epochTime := f.st.Epoch + f.params.Governance.EmergencyCommitPeriod

	_, err := f.governor.EmergencyCommit(f.ctx, f.protocol, user1, candidate, epochTime-1)
	assert.ErrorIs(t, err, types.ErrEpochSynced)

	evt, err := f.governor.EmergencyCommit(f.ctx, f.protocol, user1, candidate, epochTime)
	require.NoError(t, err)
	assert.Equal(t, "true", evt.Fields["emergency"])
	assert.Equal(t, candidate, f.st.ActiveVersion)

	_, err = f.governor.EmergencyCommit(f.ctx, f.protocol, user1, candidate, epochTime)
	assert.ErrorIs(t, err, types.ErrAlreadyInitialized)
}

func TestEmergencyCommitNeedsSuperMajority(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 600)
	f.bond(t, user2, 400)
	f.snapshot()

	f.vote(t, user1, types.Approve)
	_, err := f.governor.EmergencyCommit(f.ctx, f.protocol, user1, candidate, f.st.Epoch+100)
	assert.ErrorIs(t, err, types.ErrMustHaveSuperMajority)
}

func TestFailedInitializeLeavesImplementation(t *testing.T) {
	f := newFixture(t)
	f.bond(t, user1, 1000)
	f.snapshot()

	_, err := f.governor.Vote(f.ctx, f.st, user1, "broken", types.Approve)
	require.NoError(t, err)
	f.advance(int(f.params.Governance.VotePeriod) + 1)

	_, err = f.governor.Commit(f.ctx, f.protocol, user1, "broken")
	require.Error(t, err)
	assert.Equal(t, "v1", f.st.ActiveVersion)
	assert.False(t, f.st.Initialized["broken"])
}
