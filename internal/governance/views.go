package governance

import (
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

type CandidateView struct {
	Candidate   string                 `json:"candidate"`
	Start       uint64                 `json:"start"`
	Period      uint64                 `json:"period"`
	Approve     types.Amount           `json:"approve"`
	Reject      types.Amount           `json:"reject"`
	Nominated   bool                   `json:"nominated"`
	Initialized bool                   `json:"initialized"`
	Outcome     types.CandidateOutcome `json:"outcome"`
	Quorum      types.Amount           `json:"quorum"`
	Active      bool                   `json:"active"`
}

func (g *Governor) CandidateView(st *state.ProtocolState, candidate string) CandidateView {
	c, _ := st.LookupCandidate(candidate)
	view := CandidateView{
		Candidate:   candidate,
		Start:       c.Start,
		Period:      c.Period,
		Approve:     c.Approve,
		Reject:      c.Reject,
		Nominated:   c.Nominated,
		Initialized: st.Initialized[candidate],
		Outcome:     c.Outcome,
		Active:      st.ActiveVersion == candidate,
	}
	if c.Nominated {
		view.Quorum = st.TotalBondedAt(c.Start).MulDecimal(g.params.Governance.Quorum)
	}
	return view
}

// VoteOf returns the live vote of account on candidate.
func (g *Governor) VoteOf(st *state.ProtocolState, account types.AccountID, candidate string) types.VoteChoice {
	p, ok := st.Pool(types.PoolDAO)
	if !ok {
		return types.Undecided
	}
	return p.Lookup(account).Votes[candidate].Choice
}
