package repository

import (
	"context"

	"github.com/paperdesk/paperdesk-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type BookmarkRepo interface {
	CreateBookmark(ctx context.Context, bookmark *types.Bookmark) error
	GetBookmark(ctx context.Context, userID, paperID string) (*types.Bookmark, error)
	ListByUser(ctx context.Context, userID string) ([]*types.Bookmark, error)
	DeleteBookmark(ctx context.Context, userID, paperID string) error
}

type bookmarkRepo struct {
	collection *mongo.Collection
}

func NewBookmarkRepo(collection *mongo.Collection) BookmarkRepo {
	return &bookmarkRepo{
		collection: collection,
	}
}

func (r *bookmarkRepo) CreateBookmark(ctx context.Context, bookmark *types.Bookmark) error {
	_, err := r.collection.InsertOne(ctx, bookmark)
	return err
}

func (r *bookmarkRepo) GetBookmark(ctx context.Context, userID, paperID string) (*types.Bookmark, error) {
	var bookmark types.Bookmark
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "paper_id": paperID}).Decode(&bookmark)
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *bookmarkRepo) ListByUser(ctx context.Context, userID string) ([]*types.Bookmark, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookmarks []*types.Bookmark
	for cursor.Next(ctx) {
		var bookmark types.Bookmark
		if err := cursor.Decode(&bookmark); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, &bookmark)
	}
	return bookmarks, nil
}

func (r *bookmarkRepo) DeleteBookmark(ctx context.Context, userID, paperID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "paper_id": paperID})
	return err
}
