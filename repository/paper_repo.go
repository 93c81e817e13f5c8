package repository

import (
	"context"

	"github.com/paperdesk/paperdesk-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PaperRepo interface {
	CreatePaper(ctx context.Context, paper *types.Paper) error
	GetPaper(ctx context.Context, id string) (*types.Paper, error)
	ListPapers(ctx context.Context, filter types.PaperFilter) ([]*types.Paper, int64, error)
	ListAllPapers(ctx context.Context) ([]*types.Paper, error)
	DeletePaper(ctx context.Context, id string) error
	AddUpvote(ctx context.Context, paperID, userID string) error
	RemoveUpvote(ctx context.Context, paperID, userID string) error
}

type paperRepo struct {
	collection *mongo.Collection
}

func NewPaperRepo(collection *mongo.Collection) PaperRepo {
	return &paperRepo{
		collection: collection,
	}
}

func (r *paperRepo) CreatePaper(ctx context.Context, paper *types.Paper) error {
	_, err := r.collection.InsertOne(ctx, paper)
	return err
}

func (r *paperRepo) GetPaper(ctx context.Context, id string) (*types.Paper, error) {
	var paper types.Paper
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&paper)
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func buildPaperFilter(f types.PaperFilter) bson.M {
	filter := bson.M{}
	if f.Board != "" {
		filter["board"] = f.Board
	}
	if f.Class != "" {
		filter["class"] = f.Class
	}
	if f.Subject != "" {
		filter["subject"] = f.Subject
	}
	if f.Year != 0 {
		filter["year"] = f.Year
	}
	if f.ExamType != "" {
		filter["exam_type"] = f.ExamType
	}
	return filter
}

func (r *paperRepo) ListPapers(ctx context.Context, f types.PaperFilter) ([]*types.Paper, int64, error) {
	filter := buildPaperFilter(f)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var papers []*types.Paper
	for cursor.Next(ctx) {
		var paper types.Paper
		if err := cursor.Decode(&paper); err != nil {
			return nil, 0, err
		}
		papers = append(papers, &paper)
	}
	return papers, total, nil
}

func (r *paperRepo) ListAllPapers(ctx context.Context) ([]*types.Paper, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var papers []*types.Paper
	for cursor.Next(ctx) {
		var paper types.Paper
		if err := cursor.Decode(&paper); err != nil {
			return nil, err
		}
		papers = append(papers, &paper)
	}
	return papers, nil
}

func (r *paperRepo) DeletePaper(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *paperRepo) AddUpvote(ctx context.Context, paperID, userID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": paperID},
		bson.M{"$addToSet": bson.M{"upvotes": userID}})
	return err
}

func (r *paperRepo) RemoveUpvote(ctx context.Context, paperID, userID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": paperID},
		bson.M{"$pull": bson.M{"upvotes": userID}})
	return err
}
