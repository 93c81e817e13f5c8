package repository

import (
	"context"

	"github.com/paperdesk/paperdesk-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *types.Comment) error
	GetComment(ctx context.Context, id string) (*types.Comment, error)
	ListByPaper(ctx context.Context, paperID string) ([]*types.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	DeleteByPaper(ctx context.Context, paperID string) error
}

type commentRepo struct {
	collection *mongo.Collection
}

func NewCommentRepo(collection *mongo.Collection) CommentRepo {
	return &commentRepo{
		collection: collection,
	}
}

func (r *commentRepo) CreateComment(ctx context.Context, comment *types.Comment) error {
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

func (r *commentRepo) GetComment(ctx context.Context, id string) (*types.Comment, error) {
	var comment types.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepo) ListByPaper(ctx context.Context, paperID string) ([]*types.Comment, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"paper_id": paperID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []*types.Comment
	for cursor.Next(ctx) {
		var comment types.Comment
		if err := cursor.Decode(&comment); err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}
	return comments, nil
}

func (r *commentRepo) DeleteComment(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *commentRepo) DeleteByPaper(ctx context.Context, paperID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"paper_id": paperID})
	return err
}
