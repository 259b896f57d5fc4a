package db

import (
	"context"

	"github.com/pegkeeper/dollar-protocol-service/internal/db/model"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// EventFilter narrows an event listing. Empty fields match everything.
type EventFilter struct {
	Type    string
	Pool    string
	Account string
}

type DBClient interface {
	Ping(ctx context.Context) error
	// SaveEvents inserts events in order. seq must be strictly increasing.
	SaveEvents(ctx context.Context, firstSeq int64, events []*types.Event) error
	// SaveAdvance writes the epoch snapshot and its events in one transaction.
	SaveAdvance(ctx context.Context, snapshot *model.EpochSnapshotDocument, firstSeq int64, events []*types.Event) error
	FindEvents(ctx context.Context, filter EventFilter, paginationToken string) (*DbResultMap[model.EventDocument], error)
	FindEpochSnapshot(ctx context.Context, epoch uint64) (*model.EpochSnapshotDocument, error)
	SaveUnpublishedEvent(ctx context.Context, eventID string, seq int64, messageBody string) error
	FindUnpublishedEvents(ctx context.Context) ([]model.UnpublishedEventDocument, error)
	DeleteUnpublishedEvent(ctx context.Context, eventID string) error
}

var _ DBClient = (*Database)(nil)
