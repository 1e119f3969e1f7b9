package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CountersCollection stores one {_id: name, seq: n} document per sequence.
const CountersCollection = "counters"

type counter struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

// NextSequence atomically increments and returns the named counter, starting at 1.
func NextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := db.Collection(CountersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %q: %w", name, err)
	}
	return c.Seq, nil
}

// SetSequenceAtLeast raises the named counter to min when it is lower. Seeding uses it
// after inserting documents with explicit ids.
func SetSequenceAtLeast(ctx context.Context, db *mongo.Database, name string, min int64) error {
	_, err := db.Collection(CountersCollection).UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": min}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to raise sequence %q: %w", name, err)
	}
	return nil
}

// WithTimeout bounds ctx by timeout unless ctx belongs to a session. A session context
// cannot be wrapped without leaving the transaction, so it is returned unchanged.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
