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

type ExamService struct {
	examRepo repository.ExamRepo
}

func NewExamService(examRepo repository.ExamRepo) *ExamService {
	return &ExamService{
		examRepo: examRepo,
	}
}

func (s *ExamService) CreateEvent(ctx context.Context, userID string, req *types.CreateExamEventRequest) (*types.ExamEvent, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("title is required")
	}
	if req.Date <= 0 {
		return nil, errors.New("date is required")
	}
	event := &types.ExamEvent{
		ID:       uuid.New().String(),
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		Subject:  req.Subject,
		Date:     req.Date,
		Note:     req.Note,
		CreateAt: time.Now().Unix(),
	}
	if err := s.examRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListUpcoming returns the user's events from the start of today onward,
// soonest first.
func (s *ExamService) ListUpcoming(ctx context.Context, userID string) ([]*types.ExamEvent, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.examRepo.ListUpcoming(ctx, userID, startOfDay.Unix())
}

func (s *ExamService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	event, err := s.examRepo.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.UserID != userID {
		return ErrNotOwner
	}
	return s.examRepo.DeleteEvent(ctx, eventID)
}
