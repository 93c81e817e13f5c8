package repository

import (
	"context"
	"time"

	"github.com/paperdesk/paperdesk-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type RequestRepo interface {
	CreateRequest(ctx context.Context, request *types.PaperRequest) error
	GetRequest(ctx context.Context, id string) (*types.PaperRequest, error)
	ListOpenRequests(ctx context.Context) ([]*types.PaperRequest, error)
	FulfillRequest(ctx context.Context, id, paperID string) error
	DeleteRequest(ctx context.Context, id string) error
}

type requestRepo struct {
	collection *mongo.Collection
}

func NewRequestRepo(collection *mongo.Collection) RequestRepo {
	return &requestRepo{
		collection: collection,
	}
}

func (r *requestRepo) CreateRequest(ctx context.Context, request *types.PaperRequest) error {
	_, err := r.collection.InsertOne(ctx, request)
	return err
}

func (r *requestRepo) GetRequest(ctx context.Context, id string) (*types.PaperRequest, error) {
	var request types.PaperRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) ListOpenRequests(ctx context.Context) ([]*types.PaperRequest, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"status": types.REQUEST_STATUS_OPEN}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []*types.PaperRequest
	for cursor.Next(ctx) {
		var request types.PaperRequest
		if err := cursor.Decode(&request); err != nil {
			return nil, err
		}
		requests = append(requests, &request)
	}
	return requests, nil
}

func (r *requestRepo) FulfillRequest(ctx context.Context, id, paperID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":     types.REQUEST_STATUS_FULFILLED,
			"paper_id":   paperID,
			"updated_at": time.Now().Unix(),
		}})
	return err
}

func (r *requestRepo) DeleteRequest(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
