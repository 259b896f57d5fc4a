package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pegkeeper/dollar-protocol-service/internal/db/model"
)

func (db *Database) SaveUnpublishedEvent(ctx context.Context, eventID string, seq int64, messageBody string) error {
	_, err := db.collection(model.UnpublishedEventCollection).InsertOne(
		ctx, model.NewUnpublishedEventDocument(eventID, seq, messageBody),
	)
	if err != nil && isMongoDuplicateKey(err) {
		return &DuplicateKeyError{Key: eventID, Message: "Unpublished event already exists"}
	}
	return err
}

// FindUnpublishedEvents returns the stored events in emission order.
func (db *Database) FindUnpublishedEvents(ctx context.Context) ([]model.UnpublishedEventDocument, error) {
	opts := options.Find().SetSort(bson.M{"seq": 1})
	cursor, err := db.collection(model.UnpublishedEventCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.UnpublishedEventDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (db *Database) DeleteUnpublishedEvent(ctx context.Context, eventID string) error {
	_, err := db.collection(model.UnpublishedEventCollection).DeleteOne(ctx, bson.M{"_id": eventID})
	return err
}
