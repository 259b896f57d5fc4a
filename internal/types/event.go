package types

type EventType string

const (
	EventDeposit           EventType = "deposit"
	EventWithdraw          EventType = "withdraw"
	EventBond              EventType = "bond"
	EventUnbond            EventType = "unbond"
	EventClaim             EventType = "claim"
	EventProvide           EventType = "provide"
	EventRewardsPoked      EventType = "rewards_poked"
	EventEmergencyPause    EventType = "emergency_pause"
	EventEmergencyWithdraw EventType = "emergency_withdraw"
	EventAdvance           EventType = "advance"
	EventSupplyIncrease    EventType = "supply_increase"
	EventSupplyDecrease    EventType = "supply_decrease"
	EventSupplyNeutral     EventType = "supply_neutral"
	EventVote              EventType = "vote"
	EventCommit            EventType = "commit"
	EventProposalResolved  EventType = "proposal_resolved"
	EventTreasuryDisburse  EventType = "treasury_disburse"
)

func (t EventType) String() string {
	return string(t)
}

// Event is the structured record every state mutation emits.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Epoch     uint64            `json:"epoch"`
	Pool      PoolID            `json:"pool,omitempty"`
	Account   AccountID         `json:"account,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

func NewEvent(eventType EventType, epoch uint64) *Event {
	return &Event{
		Type:   eventType,
		Epoch:  epoch,
		Fields: map[string]string{},
	}
}

func (e *Event) WithPool(pool PoolID) *Event {
	e.Pool = pool
	return e
}

func (e *Event) WithAccount(account AccountID) *Event {
	e.Account = account
	return e
}

func (e *Event) With(key string, value interface{ String() string }) *Event {
	e.Fields[key] = value.String()
	return e
}

func (e *Event) WithString(key, value string) *Event {
	e.Fields[key] = value
	return e
}
