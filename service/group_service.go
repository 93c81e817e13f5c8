package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paperdesk/paperdesk-be/repository"
	"github.com/paperdesk/paperdesk-be/types"
)

var (
	ErrNotMember     = errors.New("not a member of this group")
	ErrNotGroupOwner = errors.New("only the group owner can do that")
)

type GroupService struct {
	groupRepo repository.GroupRepo
}

func NewGroupService(groupRepo repository.GroupRepo) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
	}
}

func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *GroupService) CreateGroup(ctx context.Context, ownerID string, req *types.CreateGroupRequest) (*types.StudyGroup, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("group name is required")
	}

	group := &types.StudyGroup{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Subject:     req.Subject,
		Description: req.Description,
		OwnerID:     ownerID,
		InviteCode:  newInviteCode(),
		Members:     []string{ownerID},
		CreateAt:    time.Now().Unix(),
	}
	if err := s.groupRepo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroup returns the group if the user is a member. The invite code is
// only visible to the owner.
func (s *GroupService) GetGroup(ctx context.Context, userID, groupID string) (*types.StudyGroup, error) {
	group, err := s.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !isMember(group, userID) {
		return nil, ErrNotMember
	}
	if group.OwnerID != userID {
		group.InviteCode = ""
	}
	return group, nil
}

func (s *GroupService) ListMyGroups(ctx context.Context, userID string) ([]*types.StudyGroup, error) {
	groups, err := s.groupRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, group := range groups {
		if group.OwnerID != userID {
			group.InviteCode = ""
		}
	}
	return groups, nil
}

func (s *GroupService) JoinByInviteCode(ctx context.Context, userID, code string) (*types.StudyGroup, error) {
	group, err := s.groupRepo.GetGroupByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, errors.New("invalid invite code")
	}
	if err := s.groupRepo.AddMember(ctx, group.ID, userID); err != nil {
		return nil, err
	}
	return s.groupRepo.GetGroup(ctx, group.ID)
}

func (s *GroupService) LeaveGroup(ctx context.Context, userID, groupID string) error {
	group, err := s.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !isMember(group, userID) {
		return ErrNotMember
	}
	return s.groupRepo.RemoveMember(ctx, groupID, userID)
}

// RegenerateInviteCode invalidates the previous code.
func (s *GroupService) RegenerateInviteCode(ctx context.Context, userID, groupID string) (string, error) {
	group, err := s.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return "", err
	}
	if group.OwnerID != userID {
		return "", ErrNotGroupOwner
	}
	code := newInviteCode()
	if err := s.groupRepo.SetInviteCode(ctx, groupID, code); err != nil {
		return "", err
	}
	return code, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, userID, groupID string) error {
	group, err := s.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerID != userID {
		return ErrNotGroupOwner
	}
	return s.groupRepo.DeleteGroup(ctx, groupID)
}

// IsMember reports whether the user belongs to the group; used by the chat
// hub before upgrading a connection.
func (s *GroupService) IsMember(ctx context.Context, userID, groupID string) (bool, error) {
	group, err := s.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	return isMember(group, userID), nil
}

func (s *GroupService) SaveMessage(ctx context.Context, groupID, userID, username, content string) (*types.GroupMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("message content is required")
	}
	message := &types.GroupMessage{
		ID:       uuid.NewString(),
		GroupID:  groupID,
		UserID:   userID,
		Username: username,
		Content:  content,
		CreateAt: time.Now().Unix(),
	}
	if err := s.groupRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *GroupService) ListMessages(ctx context.Context, userID, groupID string, limit int64) ([]*types.GroupMessage, error) {
	group, err := s.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !isMember(group, userID) {
		return nil, ErrNotMember
	}
	return s.groupRepo.ListMessages(ctx, groupID, limit)
}

func isMember(group *types.StudyGroup, userID string) bool {
	for _, id := range group.Members {
		if id == userID {
			return true
		}
	}
	return false
}
