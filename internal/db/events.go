package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pegkeeper/dollar-protocol-service/internal/db/model"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

func eventDocuments(firstSeq int64, events []*types.Event) []interface{} {
	docs := make([]interface{}, len(events))
	for i, evt := range events {
		docs[i] = model.NewEventDocument(firstSeq+int64(i), evt)
	}
	return docs
}

func (db *Database) SaveEvents(ctx context.Context, firstSeq int64, events []*types.Event) error {
	if len(events) == 0 {
		return nil
	}
	return db.insertEvents(ctx, db.collection(model.EventCollection), firstSeq, events)
}

func (db *Database) insertEvents(ctx context.Context, client *mongo.Collection, firstSeq int64, events []*types.Event) error {
	docs := eventDocuments(firstSeq, events)
	batch := int(db.cfg.DbBatchSizeLimit)
	if batch <= 0 {
		batch = len(docs)
	}
	for start := 0; start < len(docs); start += batch {
		end := start + batch
		if end > len(docs) {
			end = len(docs)
		}
		if _, err := client.InsertMany(ctx, docs[start:end], options.InsertMany().SetOrdered(true)); err != nil {
			if isMongoDuplicateKey(err) {
				return &DuplicateKeyError{
					Key:     events[start].ID,
					Message: "Event already exists",
				}
			}
			return err
		}
	}
	return nil
}

func (db *Database) FindEvents(ctx context.Context, filter EventFilter, paginationToken string) (*DbResultMap[model.EventDocument], error) {
	client := db.collection(model.EventCollection)

	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Pool != "" {
		query["pool"] = filter.Pool
	}
	if filter.Account != "" {
		query["account"] = filter.Account
	}
	// Decode the pagination token first if it exist
	if paginationToken != "" {
		decodedToken, err := model.DecodePaginationToken[model.EventPagination](paginationToken)
		if err != nil {
			return nil, &InvalidPaginationTokenError{
				Message: "Invalid pagination token",
			}
		}
		query["seq"] = bson.M{"$lt": decodedToken.Seq}
	}

	opts := options.Find().SetSort(bson.M{"seq": -1}).SetLimit(db.cfg.MaxPaginationLimit)
	cursor, err := client.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []model.EventDocument
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return toResultMapWithPaginationToken(db.cfg.MaxPaginationLimit, events, model.BuildEventPaginationToken)
}
