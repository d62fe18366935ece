package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/alc-backend/internal/domain/repository"
)

type sequenceDoc struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"value"`
}

// SequenceAllocator increments counters with findAndModify, which is atomic
// per document, and creates missing counters through upsert.
type SequenceAllocator struct {
	coll *mongo.Collection
}

func NewSequenceAllocator(db *mongo.Database) *SequenceAllocator {
	return &SequenceAllocator{coll: db.Collection(sequencesCollection)}
}

func (a *SequenceAllocator) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var d sequenceDoc
	err := a.coll.FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"value": int64(1)}}, opts).Decode(&d)
	if err != nil {
		return 0, err
	}
	return d.Value, nil
}

func (a *SequenceAllocator) Peek(ctx context.Context, name string) (int64, error) {
	var d sequenceDoc
	err := a.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	return d.Value, err
}

var _ repository.SequenceAllocator = (*SequenceAllocator)(nil)
