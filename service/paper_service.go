package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paperdesk/paperdesk-be/repository"
	"github.com/paperdesk/paperdesk-be/types"
)

var (
	ErrNotOwner     = errors.New("not the owner of this resource")
	ErrInvalidScore = errors.New("score must be between 1 and 5")
)

// PaperService owns the paper metadata lifecycle and the social features
// hanging off a paper. The search index is updated best-effort: a failed
// index write is logged but never fails the metadata operation.
type PaperService struct {
	paperRepo    repository.PaperRepo
	commentRepo  repository.CommentRepo
	bookmarkRepo repository.BookmarkRepo
	ratingRepo   repository.RatingRepo
	search       *SearchService
}

func NewPaperService(
	paperRepo repository.PaperRepo,
	commentRepo repository.CommentRepo,
	bookmarkRepo repository.BookmarkRepo,
	ratingRepo repository.RatingRepo,
	search *SearchService,
) *PaperService {
	return &PaperService{
		paperRepo:    paperRepo,
		commentRepo:  commentRepo,
		bookmarkRepo: bookmarkRepo,
		ratingRepo:   ratingRepo,
		search:       search,
	}
}

func (s *PaperService) CreatePaper(ctx context.Context, userID string, req *types.CreatePaperRequest) (*types.Paper, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Subject) == "" {
		return nil, errors.New("title and subject are required")
	}
	if len(req.Files) == 0 {
		return nil, errors.New("a paper needs at least one uploaded file")
	}

	now := time.Now().Unix()
	paper := &types.Paper{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Board:       req.Board,
		Class:       req.Class,
		Subject:     req.Subject,
		Year:        req.Year,
		ExamType:    req.ExamType,
		Description: req.Description,
		Tags:        req.Tags,
		Files:       req.Files,
		UploaderID:  userID,
		Upvotes:     []string{},
		CreateAt:    now,
		UpdateAt:    now,
	}

	if err := s.paperRepo.CreatePaper(ctx, paper); err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.IndexPaper(ctx, paper); err != nil {
			log.Printf("failed to index paper %s: %v", paper.ID, err)
		}
	}
	return paper, nil
}

func (s *PaperService) GetPaper(ctx context.Context, id string) (*types.PaperSummary, error) {
	paper, err := s.paperRepo.GetPaper(ctx, id)
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.ListByPaper(ctx, id)
	if err != nil {
		return nil, err
	}
	var avg float64
	for _, r := range ratings {
		avg += float64(r.Score)
	}
	if len(ratings) > 0 {
		avg /= float64(len(ratings))
	}

	return &types.PaperSummary{
		Paper:       paper,
		UpvoteCount: len(paper.Upvotes),
		AvgRating:   avg,
		RatingCount: len(ratings),
	}, nil
}

func (s *PaperService) ListPapers(ctx context.Context, filter types.PaperFilter) ([]*types.Paper, int64, error) {
	return s.paperRepo.ListPapers(ctx, filter)
}

func (s *PaperService) DeletePaper(ctx context.Context, userID, id string) error {
	paper, err := s.paperRepo.GetPaper(ctx, id)
	if err != nil {
		return err
	}
	if paper.UploaderID != userID {
		return ErrNotOwner
	}

	if err := s.commentRepo.DeleteByPaper(ctx, id); err != nil {
		return err
	}
	if err := s.paperRepo.DeletePaper(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeindexPaper(ctx, id); err != nil {
			log.Printf("failed to deindex paper %s: %v", id, err)
		}
	}
	return nil
}

// ToggleUpvote flips the user's upvote and reports whether it is now set.
func (s *PaperService) ToggleUpvote(ctx context.Context, userID, paperID string) (bool, error) {
	paper, err := s.paperRepo.GetPaper(ctx, paperID)
	if err != nil {
		return false, err
	}

	for _, id := range paper.Upvotes {
		if id == userID {
			return false, s.paperRepo.RemoveUpvote(ctx, paperID, userID)
		}
	}
	return true, s.paperRepo.AddUpvote(ctx, paperID, userID)
}

// ToggleBookmark flips the user's bookmark and reports whether it is now set.
func (s *PaperService) ToggleBookmark(ctx context.Context, userID, paperID string) (bool, error) {
	if _, err := s.paperRepo.GetPaper(ctx, paperID); err != nil {
		return false, err
	}

	if _, err := s.bookmarkRepo.GetBookmark(ctx, userID, paperID); err == nil {
		return false, s.bookmarkRepo.DeleteBookmark(ctx, userID, paperID)
	}

	bookmark := &types.Bookmark{
		ID:       uuid.NewString(),
		PaperID:  paperID,
		UserID:   userID,
		CreateAt: time.Now().Unix(),
	}
	return true, s.bookmarkRepo.CreateBookmark(ctx, bookmark)
}

func (s *PaperService) ListBookmarkedPapers(ctx context.Context, userID string) ([]*types.Paper, error) {
	bookmarks, err := s.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	papers := make([]*types.Paper, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		paper, err := s.paperRepo.GetPaper(ctx, bookmark.PaperID)
		if err != nil {
			continue // paper deleted since it was bookmarked
		}
		papers = append(papers, paper)
	}
	return papers, nil
}

func (s *PaperService) RatePaper(ctx context.Context, userID, paperID string, score int) error {
	if score < 1 || score > 5 {
		return ErrInvalidScore
	}
	if _, err := s.paperRepo.GetPaper(ctx, paperID); err != nil {
		return err
	}

	rating := &types.Rating{
		PaperID:  paperID,
		UserID:   userID,
		Score:    score,
		CreateAt: time.Now().Unix(),
	}
	return s.ratingRepo.UpsertRating(ctx, rating)
}

func (s *PaperService) AddComment(ctx context.Context, userID, username, paperID, content string) (*types.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("comment content is required")
	}
	if _, err := s.paperRepo.GetPaper(ctx, paperID); err != nil {
		return nil, err
	}

	comment := &types.Comment{
		ID:       uuid.NewString(),
		PaperID:  paperID,
		UserID:   userID,
		Username: username,
		Content:  strings.TrimSpace(content),
		CreateAt: time.Now().Unix(),
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PaperService) ListComments(ctx context.Context, paperID string) ([]*types.Comment, error) {
	return s.commentRepo.ListByPaper(ctx, paperID)
}

func (s *PaperService) DeleteComment(ctx context.Context, userID, commentID string) error {
	comment, err := s.commentRepo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return ErrNotOwner
	}
	return s.commentRepo.DeleteComment(ctx, commentID)
}
