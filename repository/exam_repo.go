package repository

import (
	"context"

	"github.com/paperdesk/paperdesk-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ExamRepo interface {
	CreateEvent(ctx context.Context, event *types.ExamEvent) error
	GetEvent(ctx context.Context, id string) (*types.ExamEvent, error)
	ListUpcoming(ctx context.Context, userID string, after int64) ([]*types.ExamEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

type examRepo struct {
	collection *mongo.Collection
}

func NewExamRepo(collection *mongo.Collection) ExamRepo {
	return &examRepo{
		collection: collection,
	}
}

func (r *examRepo) CreateEvent(ctx context.Context, event *types.ExamEvent) error {
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

func (r *examRepo) GetEvent(ctx context.Context, id string) (*types.ExamEvent, error) {
	var event types.ExamEvent
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *examRepo) ListUpcoming(ctx context.Context, userID string, after int64) ([]*types.ExamEvent, error) {
	opts := options.Find().SetSort(bson.M{"date": 1})
	filter := bson.M{"user_id": userID, "date": bson.M{"$gte": after}}
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*types.ExamEvent
	for cursor.Next(ctx) {
		var event types.ExamEvent
		if err := cursor.Decode(&event); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	return events, nil
}

func (r *examRepo) DeleteEvent(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
