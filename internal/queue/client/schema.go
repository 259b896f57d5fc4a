package client

import "github.com/pegkeeper/dollar-protocol-service/internal/types"

const EventsSchemaVersion = 1

// ProtocolEventMessage is the JSON body published for every protocol event.
type ProtocolEventMessage struct {
	SchemaVersion int               `json:"schema_version"`
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Epoch         uint64            `json:"epoch"`
	Pool          string            `json:"pool,omitempty"`
	Account       string            `json:"account,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
	Timestamp     int64             `json:"timestamp"`
}

func NewProtocolEventMessage(evt *types.Event) ProtocolEventMessage {
	return ProtocolEventMessage{
		SchemaVersion: EventsSchemaVersion,
		EventID:       evt.ID,
		EventType:     evt.Type.String(),
		Epoch:         evt.Epoch,
		Pool:          evt.Pool.String(),
		Account:       evt.Account.String(),
		Fields:        evt.Fields,
		Timestamp:     evt.Timestamp,
	}
}
