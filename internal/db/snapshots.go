package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pegkeeper/dollar-protocol-service/internal/db/model"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// SaveAdvance upserts the snapshot and inserts the events of one advance
// atomically.
func (db *Database) SaveAdvance(ctx context.Context, snapshot *model.EpochSnapshotDocument, firstSeq int64, events []*types.Event) error {
	snapshots := db.collection(model.EpochSnapshotCollection)
	eventsCollection := db.collection(model.EventCollection)

	txnFunc := func(sessCtx mongo.SessionContext) (interface{}, error) {
		_, err := snapshots.ReplaceOne(
			sessCtx,
			bson.M{"_id": snapshot.Epoch},
			snapshot,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			return nil, err
		}
		if len(events) == 0 {
			return nil, nil
		}
		return nil, db.insertEvents(sessCtx, eventsCollection, firstSeq, events)
	}

	_, err := TxWithRetries(ctx, &dbTransactionClient{db.Client}, txnFunc)
	return err
}

func (db *Database) FindEpochSnapshot(ctx context.Context, epoch uint64) (*model.EpochSnapshotDocument, error) {
	var snapshot model.EpochSnapshotDocument
	err := db.collection(model.EpochSnapshotCollection).FindOne(ctx, bson.M{"_id": epoch}).Decode(&snapshot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     fmt.Sprintf("%d", epoch),
				Message: "Epoch snapshot not found",
			}
		}
		return nil, err
	}
	return &snapshot, nil
}
