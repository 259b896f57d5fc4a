package model

import "github.com/pegkeeper/dollar-protocol-service/internal/types"

type EventDocument struct {
	ID        string            `bson:"_id"`
	Seq       int64             `bson:"seq"`
	Type      string            `bson:"type"`
	Epoch     uint64            `bson:"epoch"`
	Pool      string            `bson:"pool,omitempty"`
	Account   string            `bson:"account,omitempty"`
	Fields    map[string]string `bson:"fields,omitempty"`
	Timestamp int64             `bson:"timestamp"`
}

func NewEventDocument(seq int64, evt *types.Event) *EventDocument {
	return &EventDocument{
		ID:        evt.ID,
		Seq:       seq,
		Type:      evt.Type.String(),
		Epoch:     evt.Epoch,
		Pool:      evt.Pool.String(),
		Account:   evt.Account.String(),
		Fields:    evt.Fields,
		Timestamp: evt.Timestamp,
	}
}

type EventPagination struct {
	Seq int64 `json:"seq"`
}

func BuildEventPaginationToken(d EventDocument) (string, error) {
	return GetPaginationToken(EventPagination{Seq: d.Seq})
}
