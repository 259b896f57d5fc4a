package types

import "fmt"

type VoteChoice uint8

const (
	Undecided VoteChoice = 0
	Approve   VoteChoice = 1
	Reject    VoteChoice = 2
)

func (v VoteChoice) String() string {
	switch v {
	case Undecided:
		return "undecided"
	case Approve:
		return "approve"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

func (v VoteChoice) Valid() bool {
	return v <= Reject
}

func ParseVoteChoice(s string) (VoteChoice, error) {
	switch s {
	case "undecided", "0":
		return Undecided, nil
	case "approve", "1":
		return Approve, nil
	case "reject", "2":
		return Reject, nil
	}
	return Undecided, fmt.Errorf("invalid vote choice: %s", s)
}

type CandidateOutcome string

const (
	OutcomePending   CandidateOutcome = "pending"
	OutcomeApproved  CandidateOutcome = "approved"
	OutcomeRejected  CandidateOutcome = "rejected"
	OutcomeNoQuorum  CandidateOutcome = "no_quorum"
	OutcomeExpired   CandidateOutcome = "expired"
	OutcomeCommitted CandidateOutcome = "committed"
)

func (o CandidateOutcome) String() string {
	return string(o)
}
