package repository

import (
	"context"

	"github.com/paperdesk/paperdesk-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type GroupRepo interface {
	CreateGroup(ctx context.Context, group *types.StudyGroup) error
	GetGroup(ctx context.Context, id string) (*types.StudyGroup, error)
	GetGroupByInviteCode(ctx context.Context, code string) (*types.StudyGroup, error)
	ListByMember(ctx context.Context, userID string) ([]*types.StudyGroup, error)
	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	SetInviteCode(ctx context.Context, groupID, code string) error
	DeleteGroup(ctx context.Context, id string) error

	CreateMessage(ctx context.Context, message *types.GroupMessage) error
	ListMessages(ctx context.Context, groupID string, limit int64) ([]*types.GroupMessage, error)
}

type groupRepo struct {
	groups   *mongo.Collection
	messages *mongo.Collection
}

func NewGroupRepo(groups, messages *mongo.Collection) GroupRepo {
	return &groupRepo{
		groups:   groups,
		messages: messages,
	}
}

func (r *groupRepo) CreateGroup(ctx context.Context, group *types.StudyGroup) error {
	_, err := r.groups.InsertOne(ctx, group)
	return err
}

func (r *groupRepo) GetGroup(ctx context.Context, id string) (*types.StudyGroup, error) {
	var group types.StudyGroup
	err := r.groups.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) GetGroupByInviteCode(ctx context.Context, code string) (*types.StudyGroup, error) {
	var group types.StudyGroup
	err := r.groups.FindOne(ctx, bson.M{"invite_code": code}).Decode(&group)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) ListByMember(ctx context.Context, userID string) ([]*types.StudyGroup, error) {
	cursor, err := r.groups.Find(ctx, bson.M{"members": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []*types.StudyGroup
	for cursor.Next(ctx) {
		var group types.StudyGroup
		if err := cursor.Decode(&group); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}
	return groups, nil
}

func (r *groupRepo) AddMember(ctx context.Context, groupID, userID string) error {
	_, err := r.groups.UpdateOne(ctx,
		bson.M{"_id": groupID},
		bson.M{"$addToSet": bson.M{"members": userID}})
	return err
}

func (r *groupRepo) RemoveMember(ctx context.Context, groupID, userID string) error {
	_, err := r.groups.UpdateOne(ctx,
		bson.M{"_id": groupID},
		bson.M{"$pull": bson.M{"members": userID}})
	return err
}

func (r *groupRepo) SetInviteCode(ctx context.Context, groupID, code string) error {
	_, err := r.groups.UpdateOne(ctx,
		bson.M{"_id": groupID},
		bson.M{"$set": bson.M{"invite_code": code}})
	return err
}

func (r *groupRepo) DeleteGroup(ctx context.Context, id string) error {
	if _, err := r.messages.DeleteMany(ctx, bson.M{"group_id": id}); err != nil {
		return err
	}
	_, err := r.groups.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *groupRepo) CreateMessage(ctx context.Context, message *types.GroupMessage) error {
	_, err := r.messages.InsertOne(ctx, message)
	return err
}

// ListMessages returns the latest messages in chronological order.
func (r *groupRepo) ListMessages(ctx context.Context, groupID string, limit int64) ([]*types.GroupMessage, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cursor, err := r.messages.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*types.GroupMessage
	for cursor.Next(ctx) {
		var message types.GroupMessage
		if err := cursor.Decode(&message); err != nil {
			return nil, err
		}
		messages = append(messages, &message)
	}
	// Reverse newest-first into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
