package repository

import (
	"context"

	"github.com/paperdesk/paperdesk-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type RatingRepo interface {
	UpsertRating(ctx context.Context, rating *types.Rating) error
	ListByPaper(ctx context.Context, paperID string) ([]*types.Rating, error)
}

type ratingRepo struct {
	collection *mongo.Collection
}

func NewRatingRepo(collection *mongo.Collection) RatingRepo {
	return &ratingRepo{
		collection: collection,
	}
}

// UpsertRating keeps one score per (user, paper) pair, replacing any earlier
// score for the same pair.
func (r *ratingRepo) UpsertRating(ctx context.Context, rating *types.Rating) error {
	filter := bson.M{"user_id": rating.UserID, "paper_id": rating.PaperID}
	update := bson.M{"$set": bson.M{
		"user_id":    rating.UserID,
		"paper_id":   rating.PaperID,
		"score":      rating.Score,
		"created_at": rating.CreateAt,
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	return err
}

func (r *ratingRepo) ListByPaper(ctx context.Context, paperID string) ([]*types.Rating, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"paper_id": paperID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []*types.Rating
	for cursor.Next(ctx) {
		var rating types.Rating
		if err := cursor.Decode(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, &rating)
	}
	return ratings, nil
}
