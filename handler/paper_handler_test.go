package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/paperdesk/paperdesk-be/middleware"
	"github.com/paperdesk/paperdesk-be/repository"
	"github.com/paperdesk/paperdesk-be/service"
	"github.com/paperdesk/paperdesk-be/types"
	"github.com/paperdesk/paperdesk-be/utils"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type memPaperRepo struct {
	papers map[string]*types.Paper
}

func (m *memPaperRepo) CreatePaper(ctx context.Context, paper *types.Paper) error {
	m.papers[paper.ID] = paper
	return nil
}

func (m *memPaperRepo) GetPaper(ctx context.Context, id string) (*types.Paper, error) {
	paper, ok := m.papers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return paper, nil
}

func (m *memPaperRepo) ListPapers(ctx context.Context, filter types.PaperFilter) ([]*types.Paper, int64, error) {
	return nil, 0, nil
}

func (m *memPaperRepo) ListAllPapers(ctx context.Context) ([]*types.Paper, error) { return nil, nil }

func (m *memPaperRepo) DeletePaper(ctx context.Context, id string) error {
	delete(m.papers, id)
	return nil
}

func (m *memPaperRepo) AddUpvote(ctx context.Context, paperID, userID string) error { return nil }

func (m *memPaperRepo) RemoveUpvote(ctx context.Context, paperID, userID string) error { return nil }

type memCommentRepo struct {
	comments map[string]*types.Comment
}

func (m *memCommentRepo) CreateComment(ctx context.Context, comment *types.Comment) error {
	m.comments[comment.ID] = comment
	return nil
}

func (m *memCommentRepo) GetComment(ctx context.Context, id string) (*types.Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return comment, nil
}

func (m *memCommentRepo) ListByPaper(ctx context.Context, paperID string) ([]*types.Comment, error) {
	return nil, nil
}

func (m *memCommentRepo) DeleteComment(ctx context.Context, id string) error {
	delete(m.comments, id)
	return nil
}

func (m *memCommentRepo) DeleteByPaper(ctx context.Context, paperID string) error { return nil }

type memBookmarkRepo struct{}

func (memBookmarkRepo) CreateBookmark(ctx context.Context, bookmark *types.Bookmark) error {
	return nil
}

func (memBookmarkRepo) GetBookmark(ctx context.Context, userID, paperID string) (*types.Bookmark, error) {
	return nil, mongo.ErrNoDocuments
}

func (memBookmarkRepo) ListByUser(ctx context.Context, userID string) ([]*types.Bookmark, error) {
	return nil, nil
}

func (memBookmarkRepo) DeleteBookmark(ctx context.Context, userID, paperID string) error {
	return nil
}

type memRatingRepo struct{}

func (memRatingRepo) UpsertRating(ctx context.Context, rating *types.Rating) error { return nil }

func (memRatingRepo) ListByPaper(ctx context.Context, paperID string) ([]*types.Rating, error) {
	return nil, nil
}

var _ repository.PaperRepo = (*memPaperRepo)(nil)
var _ repository.CommentRepo = (*memCommentRepo)(nil)

// paperRouter registers the paper routes exactly as the server does, with the
// auth middleware replaced by a shim that injects the given user.
func paperRouter(t *testing.T, commentRepo *memCommentRepo, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	paperRepo := &memPaperRepo{papers: make(map[string]*types.Paper)}
	svc := service.NewPaperService(paperRepo, commentRepo, memBookmarkRepo{}, memRatingRepo{}, nil)
	h := NewPaperHandler(svc)

	router := gin.New()
	userRoutes := router.Group("/api/v1")
	userRoutes.Use(func(c *gin.Context) {
		c.Set(middleware.UserContextKey, &utils.UserClaims{ID: userID, Username: "asha"})
	})
	userRoutes.DELETE("/comments/:id", h.HandleDeleteComment)
	return router
}

func TestHandleDeleteCommentRemovesOwnComment(t *testing.T) {
	commentRepo := &memCommentRepo{comments: map[string]*types.Comment{
		"c1": {ID: "c1", PaperID: "p1", UserID: "user-1", Content: "nice paper"},
	}}
	router := paperRouter(t, commentRepo, "user-1")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/c1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if _, ok := commentRepo.comments["c1"]; ok {
		t.Fatal("comment still present after delete")
	}
}

func TestHandleDeleteCommentForeignComment(t *testing.T) {
	commentRepo := &memCommentRepo{comments: map[string]*types.Comment{
		"c1": {ID: "c1", PaperID: "p1", UserID: "user-2", Content: "nice paper"},
	}}
	router := paperRouter(t, commentRepo, "user-1")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/c1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if _, ok := commentRepo.comments["c1"]; !ok {
		t.Fatal("foreign comment must not be deleted")
	}
}

func TestHandleDeleteCommentMissing(t *testing.T) {
	commentRepo := &memCommentRepo{comments: make(map[string]*types.Comment)}
	router := paperRouter(t, commentRepo, "user-1")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
