package repository

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes behind the owner listing and the
// per-form submission queries. Failures are logged, not fatal.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	forms := db.Collection("forms")
	submissions := db.Collection("submissions")

	createIndex(ctx, forms, bson.D{
		{Key: "ownerId", Value: 1},
		{Key: "updatedAt", Value: -1},
	}, false)

	createIndex(ctx, submissions, bson.D{
		{Key: "formId", Value: 1},
		{Key: "submittedAt", Value: -1},
	}, false)
	// one submission per fill session
	createIndex(ctx, submissions, bson.D{{Key: "sessionId", Value: 1}}, true)

	log.Println("MongoDB indexes ensured")
}

func createIndex(ctx context.Context, coll *mongo.Collection, keys bson.D, unique bool) {
	opts := options.Index().SetUnique(unique)
	if unique {
		opts.SetSparse(true)
	}
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts})
	if err != nil {
		log.Printf("Warning: failed to create index on %s: %v", coll.Name(), err)
	}
}
