package storage

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type storedValue struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// MongoMedium keeps one document per key in the "storage" collection.
type MongoMedium struct {
	collection *mongo.Collection
}

func NewMongoMedium(db *mongo.Database) *MongoMedium {
	return &MongoMedium{collection: db.Collection("storage")}
}

func (m *MongoMedium) Get(ctx context.Context, key string) (string, bool, error) {
	var doc storedValue
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "failed to read stored value")
	}
	return doc.Value, true, nil
}

func (m *MongoMedium) Set(ctx context.Context, key, value string) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"value": value}}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.Wrap(err, "failed to upsert stored value")
	}
	return nil
}
