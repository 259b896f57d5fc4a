package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pegkeeper/dollar-protocol-service/internal/db"
	"github.com/pegkeeper/dollar-protocol-service/internal/db/model"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// DBClient is a testify mock of db.DBClient.
type DBClient struct {
	mock.Mock
}

var _ db.DBClient = (*DBClient)(nil)

func (_m *DBClient) Ping(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

func (_m *DBClient) SaveEvents(ctx context.Context, firstSeq int64, events []*types.Event) error {
	return _m.Called(ctx, firstSeq, events).Error(0)
}

func (_m *DBClient) SaveAdvance(ctx context.Context, snapshot *model.EpochSnapshotDocument, firstSeq int64, events []*types.Event) error {
	return _m.Called(ctx, snapshot, firstSeq, events).Error(0)
}

func (_m *DBClient) FindEvents(ctx context.Context, filter db.EventFilter, paginationToken string) (*db.DbResultMap[model.EventDocument], error) {
	ret := _m.Called(ctx, filter, paginationToken)
	r0, _ := ret.Get(0).(*db.DbResultMap[model.EventDocument])
	return r0, ret.Error(1)
}

func (_m *DBClient) FindEpochSnapshot(ctx context.Context, epoch uint64) (*model.EpochSnapshotDocument, error) {
	ret := _m.Called(ctx, epoch)
	r0, _ := ret.Get(0).(*model.EpochSnapshotDocument)
	return r0, ret.Error(1)
}

func (_m *DBClient) SaveUnpublishedEvent(ctx context.Context, eventID string, seq int64, messageBody string) error {
	return _m.Called(ctx, eventID, seq, messageBody).Error(0)
}

func (_m *DBClient) FindUnpublishedEvents(ctx context.Context) ([]model.UnpublishedEventDocument, error) {
	ret := _m.Called(ctx)
	r0, _ := ret.Get(0).([]model.UnpublishedEventDocument)
	return r0, ret.Error(1)
}

func (_m *DBClient) DeleteUnpublishedEvent(ctx context.Context, eventID string) error {
	return _m.Called(ctx, eventID).Error(0)
}
