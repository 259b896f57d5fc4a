package state

import (
	"sort"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// EpochSnapshot is taken once per advance, before the regulator runs.
type EpochSnapshot struct {
	Epoch       uint64
	TotalBonded types.Amount
	TotalSupply types.Amount
}

// Candidate is a governance proposal to switch the active implementation.
type Candidate struct {
	ID          string
	Start       uint64
	Period      uint64
	Approve     types.Amount
	Reject      types.Amount
	Nominated   bool
	Initialized bool
	Outcome     types.CandidateOutcome
}

// End is the last epoch in which votes are accepted.
func (c *Candidate) End() uint64 {
	return c.Start + c.Period
}

// ProtocolState is the single mutable state of the protocol. Every operation
// receives it explicitly; nothing else holds protocol data.
type ProtocolState struct {
	Epoch         uint64
	ActiveVersion string

	Debt       types.Amount
	Redeemable types.Amount

	// last valid oracle capture
	Price      types.Decimal
	PriceValid bool

	Snapshots   map[uint64]EpochSnapshot
	Candidates  map[string]*Candidate
	Initialized map[string]bool
	Pools       map[types.PoolID]*Pool
}

// New builds the genesis state. The starting implementation counts as
// initialized so it can never be committed again.
func New(activeVersion string, pools ...*Pool) *ProtocolState {
	st := &ProtocolState{
		ActiveVersion: activeVersion,
		Snapshots:     map[uint64]EpochSnapshot{},
		Candidates:    map[string]*Candidate{},
		Initialized:   map[string]bool{activeVersion: true},
		Pools:         map[types.PoolID]*Pool{},
	}
	for _, p := range pools {
		st.Pools[p.ID] = p
	}
	return st
}

func (s *ProtocolState) Pool(id types.PoolID) (*Pool, bool) {
	p, ok := s.Pools[id]
	return p, ok
}

// Candidate returns the candidate, creating an un-nominated record on first use.
func (s *ProtocolState) Candidate(id string) *Candidate {
	c, ok := s.Candidates[id]
	if !ok {
		c = &Candidate{ID: id, Outcome: types.OutcomePending}
		s.Candidates[id] = c
	}
	return c
}

// LookupCandidate never creates.
func (s *ProtocolState) LookupCandidate(id string) (Candidate, bool) {
	c, ok := s.Candidates[id]
	if !ok {
		return Candidate{ID: id, Outcome: types.OutcomePending}, false
	}
	return *c, true
}

// CandidateIDs returns candidate ids in sorted order.
func (s *ProtocolState) CandidateIDs() []string {
	ids := make([]string, 0, len(s.Candidates))
	for id := range s.Candidates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *ProtocolState) TotalBondedAt(epoch uint64) types.Amount {
	return s.Snapshots[epoch].TotalBonded
}

// Clone deep-copies the state.
func (s *ProtocolState) Clone() *ProtocolState {
	c := *s
	c.Snapshots = make(map[uint64]EpochSnapshot, len(s.Snapshots))
	for k, v := range s.Snapshots {
		c.Snapshots[k] = v
	}
	c.Candidates = make(map[string]*Candidate, len(s.Candidates))
	for k, v := range s.Candidates {
		cc := *v
		c.Candidates[k] = &cc
	}
	c.Initialized = make(map[string]bool, len(s.Initialized))
	for k, v := range s.Initialized {
		c.Initialized[k] = v
	}
	c.Pools = make(map[types.PoolID]*Pool, len(s.Pools))
	for k, v := range s.Pools {
		c.Pools[k] = v.clone()
	}
	return &c
}
