package repository

import (
	"context"

	"github.com/paperdesk/paperdesk-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ProgressRepo interface {
	UpsertEntry(ctx context.Context, entry *types.ProgressEntry) error
	ListByUser(ctx context.Context, userID string) ([]*types.ProgressEntry, error)
	ListRecent(ctx context.Context, userID string, limit int64) ([]*types.ProgressEntry, error)
}

type progressRepo struct {
	collection *mongo.Collection
}

func NewProgressRepo(collection *mongo.Collection) ProgressRepo {
	return &progressRepo{
		collection: collection,
	}
}

// UpsertEntry keeps one entry per (user, paper); time spent accumulates
// across updates and status only ever moves forward to solved.
func (r *progressRepo) UpsertEntry(ctx context.Context, entry *types.ProgressEntry) error {
	filter := bson.M{"user_id": entry.UserID, "paper_id": entry.PaperID}
	update := bson.M{
		"$set": bson.M{
			"subject":    entry.Subject,
			"updated_at": entry.UpdateAt,
		},
		// "attempted" sorts before "solved", so $max keeps a solved entry
		// solved when a later update only attempts the paper again.
		"$max": bson.M{"status": entry.Status},
		"$inc": bson.M{"time_spent_min": entry.TimeSpentMin},
		"$setOnInsert": bson.M{
			"user_id":    entry.UserID,
			"paper_id":   entry.PaperID,
			"created_at": entry.CreateAt,
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	return err
}

func (r *progressRepo) ListByUser(ctx context.Context, userID string) ([]*types.ProgressEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeProgressEntries(ctx, cursor)
}

func (r *progressRepo) ListRecent(ctx context.Context, userID string, limit int64) ([]*types.ProgressEntry, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	opts := options.Find().SetSort(bson.M{"updated_at": -1}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeProgressEntries(ctx, cursor)
}

func decodeProgressEntries(ctx context.Context, cursor *mongo.Cursor) ([]*types.ProgressEntry, error) {
	var entries []*types.ProgressEntry
	for cursor.Next(ctx) {
		var entry types.ProgressEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}
