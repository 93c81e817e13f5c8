package service

import (
	"context"
	"errors"
	"time"

	"github.com/paperdesk/paperdesk-be/repository"
	"github.com/paperdesk/paperdesk-be/types"
)

var ErrInvalidProgressStatus = errors.New("status must be attempted or solved")

type ProgressService struct {
	progressRepo repository.ProgressRepo
	paperRepo    repository.PaperRepo
}

func NewProgressService(progressRepo repository.ProgressRepo, paperRepo repository.PaperRepo) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		paperRepo:    paperRepo,
	}
}

func (s *ProgressService) UpdateProgress(ctx context.Context, userID string, req *types.UpdateProgressRequest) error {
	if req.Status != types.PROGRESS_STATUS_ATTEMPTED && req.Status != types.PROGRESS_STATUS_SOLVED {
		return ErrInvalidProgressStatus
	}
	if req.TimeSpentMin < 0 {
		return errors.New("time spent cannot be negative")
	}
	paper, err := s.paperRepo.GetPaper(ctx, req.PaperID)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	return s.progressRepo.UpsertEntry(ctx, &types.ProgressEntry{
		UserID:       userID,
		PaperID:      paper.ID,
		Subject:      paper.Subject,
		Status:       req.Status,
		TimeSpentMin: req.TimeSpentMin,
		CreateAt:     now,
		UpdateAt:     now,
	})
}

func (s *ProgressService) ListProgress(ctx context.Context, userID string) ([]*types.ProgressEntry, error) {
	return s.progressRepo.ListByUser(ctx, userID)
}

// GetStats aggregates a user's progress entries into dashboard totals.
func (s *ProgressService) GetStats(ctx context.Context, userID string) (*types.ProgressStats, error) {
	entries, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := &types.ProgressStats{
		SolvedBySubject: make(map[string]int),
	}
	for _, entry := range entries {
		stats.TotalAttempted++
		stats.TotalTimeMin += entry.TimeSpentMin
		if entry.Status == types.PROGRESS_STATUS_SOLVED {
			stats.TotalSolved++
			stats.SolvedBySubject[entry.Subject]++
		}
	}
	recent, err := s.progressRepo.ListRecent(ctx, userID, 10)
	if err != nil {
		return nil, err
	}
	stats.Recent = recent
	return stats, nil
}
