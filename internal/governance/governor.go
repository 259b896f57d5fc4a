package governance

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/internal/pool"
	"github.com/pegkeeper/dollar-protocol-service/internal/regulator"
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Governor runs stake-weighted votes on regulator implementations. Stake is
// the voter's bonded balance in the DAO pool.
type Governor struct {
	params  *types.GlobalParams
	catalog *regulator.Catalog
	daoPool *pool.Engine
}

func New(params *types.GlobalParams, catalog *regulator.Catalog, daoPool *pool.Engine) *Governor {
	return &Governor{params: params, catalog: catalog, daoPool: daoPool}
}

// Vote records caller's choice on candidate, nominating the candidate on its
// first vote. Revoting moves the caller's weight between tallies.
func (g *Governor) Vote(ctx context.Context, st *state.ProtocolState, caller types.AccountID, candidate string, choice types.VoteChoice) (*types.Event, error) {
	if !choice.Valid() {
		return nil, types.ErrInvalidVoteChoice
	}
	if g.params.IsBootstrapping(st.Epoch) {
		return nil, types.ErrNoGovernBootstrapping
	}
	weight := g.daoPool.BalanceOfBonded(st, caller)
	if weight.IsZero() {
		return nil, types.ErrNoStake
	}

	cand, _ := st.LookupCandidate(candidate)
	if !cand.Nominated {
		threshold := g.daoPool.TotalBonded(st).MulDecimal(g.params.Governance.ProposalThreshold)
		if weight.Lt(threshold) {
			return nil, types.ErrInsufficientStake
		}
		if _, ok := g.catalog.Get(candidate); !ok {
			return nil, types.ErrUnknownImplementation
		}
	} else if st.Epoch > cand.End() {
		return nil, types.ErrVotingEnded
	}

	daoState, ok := st.Pool(types.PoolDAO)
	if !ok {
		return nil, types.NewErrorWithMsg(0, types.InternalServiceError, "dao pool is not registered")
	}

	c := st.Candidate(candidate)
	if !c.Nominated {
		c.Nominated = true
		c.Start = st.Epoch
		c.Period = g.params.Governance.VotePeriod
		log.Ctx(ctx).Info().Str("candidate", candidate).Uint64("start", c.Start).Msg("candidate nominated")
	}

	acct := daoState.Account(caller)
	prev := acct.Votes[candidate]
	switch prev.Choice {
	case types.Approve:
		c.Approve = c.Approve.Sub(prev.Weight)
	case types.Reject:
		c.Reject = c.Reject.Sub(prev.Weight)
	}
	recorded := state.Vote{Choice: choice}
	switch choice {
	case types.Approve:
		c.Approve = c.Approve.Add(weight)
		recorded.Weight = weight
	case types.Reject:
		c.Reject = c.Reject.Add(weight)
		recorded.Weight = weight
	}
	acct.Votes[candidate] = recorded
	acct.LockUntil(st.Epoch + c.Period + 1)

	return types.NewEvent(types.EventVote, st.Epoch).
		WithPool(types.PoolDAO).
		WithAccount(caller).
		WithString("candidate", candidate).
		With("choice", choice).
		With("weight", weight).
		With("approve", c.Approve).
		With("reject", c.Reject), nil
}

// Commit switches the active implementation to candidate once its vote has
// ended with quorum and approval.
func (g *Governor) Commit(ctx context.Context, p *regulator.Protocol, caller types.AccountID, candidate string) (*types.Event, error) {
	st := p.State
	if g.params.IsBootstrapping(st.Epoch) {
		return nil, types.ErrNoGovernBootstrapping
	}
	c, _ := st.LookupCandidate(candidate)
	if !c.Nominated {
		return nil, types.ErrNotNominated
	}
	if st.Epoch <= c.End() {
		return nil, types.ErrNotEnded
	}
	if st.Epoch > c.End()+g.params.Governance.Expiration {
		return nil, types.ErrExpired
	}
	if !g.hasQuorum(st, c) {
		return nil, types.ErrNoQuorum
	}
	if !c.Approve.Gt(c.Reject) {
		return nil, types.ErrNotApproved
	}
	return g.initialize(ctx, p, caller, candidate, types.EventCommit)
}

// EmergencyCommit skips the voting window when the epoch clock has fallen
// behind wall-clock time and a supermajority approves.
func (g *Governor) EmergencyCommit(ctx context.Context, p *regulator.Protocol, caller types.AccountID, candidate string, epochTime uint64) (*types.Event, error) {
	st := p.State
	if g.params.IsBootstrapping(st.Epoch) {
		return nil, types.ErrNoGovernBootstrapping
	}
	c, _ := st.LookupCandidate(candidate)
	if !c.Nominated {
		return nil, types.ErrNotNominated
	}
	if epochTime < st.Epoch+g.params.Governance.EmergencyCommitPeriod {
		return nil, types.ErrEpochSynced
	}
	required := st.TotalBondedAt(c.Start).MulDecimal(g.params.Governance.SuperMajority)
	if c.Approve.Lt(required) {
		return nil, types.ErrMustHaveSuperMajority
	}
	evt, err := g.initialize(ctx, p, caller, candidate, types.EventCommit)
	if err != nil {
		return nil, err
	}
	return evt.WithString("emergency", "true"), nil
}

func (g *Governor) initialize(ctx context.Context, p *regulator.Protocol, caller types.AccountID, candidate string, eventType types.EventType) (*types.Event, error) {
	st := p.State
	if st.Initialized[candidate] {
		return nil, types.ErrAlreadyInitialized
	}
	impl, ok := g.catalog.Get(candidate)
	if !ok {
		return nil, types.ErrUnknownImplementation
	}
	if err := impl.Initialize(ctx, p); err != nil {
		return nil, err
	}

	previous := st.ActiveVersion
	st.ActiveVersion = candidate
	st.Initialized[candidate] = true
	c := st.Candidate(candidate)
	c.Initialized = true
	c.Outcome = types.OutcomeCommitted

	log.Ctx(ctx).Info().
		Str("candidate", candidate).
		Str("previous", previous).
		Uint64("epoch", st.Epoch).
		Msg("implementation committed")

	return types.NewEvent(eventType, st.Epoch).
		WithAccount(caller).
		WithString("candidate", candidate).
		WithString("previous", previous).
		With("approve", c.Approve).
		With("reject", c.Reject), nil
}

func (g *Governor) hasQuorum(st *state.ProtocolState, c state.Candidate) bool {
	required := st.TotalBondedAt(c.Start).MulDecimal(g.params.Governance.Quorum)
	return !c.Approve.Add(c.Reject).Lt(required)
}

// ResolveDue records the outcome of candidates whose window closed this
// epoch and expires the ones left uncommitted past the grace period. It never
// commits.
func (g *Governor) ResolveDue(st *state.ProtocolState) []*types.Event {
	var events []*types.Event
	for _, id := range st.CandidateIDs() {
		c := st.Candidates[id]
		if !c.Nominated || c.Initialized {
			continue
		}
		switch {
		case st.Epoch == c.End()+1 && c.Outcome == types.OutcomePending:
			switch {
			case !g.hasQuorum(st, *c):
				c.Outcome = types.OutcomeNoQuorum
			case c.Approve.Gt(c.Reject):
				c.Outcome = types.OutcomeApproved
			default:
				c.Outcome = types.OutcomeRejected
			}
		case st.Epoch > c.End()+g.params.Governance.Expiration && c.Outcome != types.OutcomeExpired:
			c.Outcome = types.OutcomeExpired
		default:
			continue
		}
		events = append(events, types.NewEvent(types.EventProposalResolved, st.Epoch).
			WithString("candidate", id).
			With("outcome", c.Outcome).
			With("approve", c.Approve).
			With("reject", c.Reject))
	}
	return events
}
