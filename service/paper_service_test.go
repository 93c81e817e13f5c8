package service

import (
	"context"
	"errors"
	"testing"

	"github.com/paperdesk/paperdesk-be/types"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type fakeCommentRepo struct {
	comments map[string]*types.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*types.Comment)}
}

func (f *fakeCommentRepo) CreateComment(ctx context.Context, comment *types.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) GetComment(ctx context.Context, id string) (*types.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return comment, nil
}

func (f *fakeCommentRepo) ListByPaper(ctx context.Context, paperID string) ([]*types.Comment, error) {
	var out []*types.Comment
	for _, c := range f.comments {
		if c.PaperID == paperID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) DeleteComment(ctx context.Context, id string) error {
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteByPaper(ctx context.Context, paperID string) error {
	for id, c := range f.comments {
		if c.PaperID == paperID {
			delete(f.comments, id)
		}
	}
	return nil
}

type fakeBookmarkRepo struct {
	bookmarks map[string]*types.Bookmark
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{bookmarks: make(map[string]*types.Bookmark)}
}

func (f *fakeBookmarkRepo) CreateBookmark(ctx context.Context, bookmark *types.Bookmark) error {
	f.bookmarks[bookmark.UserID+"/"+bookmark.PaperID] = bookmark
	return nil
}

func (f *fakeBookmarkRepo) GetBookmark(ctx context.Context, userID, paperID string) (*types.Bookmark, error) {
	bookmark, ok := f.bookmarks[userID+"/"+paperID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return bookmark, nil
}

func (f *fakeBookmarkRepo) ListByUser(ctx context.Context, userID string) ([]*types.Bookmark, error) {
	var out []*types.Bookmark
	for _, b := range f.bookmarks {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookmarkRepo) DeleteBookmark(ctx context.Context, userID, paperID string) error {
	delete(f.bookmarks, userID+"/"+paperID)
	return nil
}

type fakeRatingRepo struct {
	ratings map[string]*types.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[string]*types.Rating)}
}

func (f *fakeRatingRepo) UpsertRating(ctx context.Context, rating *types.Rating) error {
	f.ratings[rating.UserID+"/"+rating.PaperID] = rating
	return nil
}

func (f *fakeRatingRepo) ListByPaper(ctx context.Context, paperID string) ([]*types.Rating, error) {
	var out []*types.Rating
	for _, r := range f.ratings {
		if r.PaperID == paperID {
			out = append(out, r)
		}
	}
	return out, nil
}

func paperServiceFixture(papers ...*types.Paper) (*PaperService, *fakePaperRepo, *fakeCommentRepo) {
	paperRepo := newFakePaperRepo(papers...)
	commentRepo := newFakeCommentRepo()
	svc := NewPaperService(paperRepo, commentRepo, newFakeBookmarkRepo(), newFakeRatingRepo(), nil)
	return svc, paperRepo, commentRepo
}

func TestCreatePaperValidation(t *testing.T) {
	svc, _, _ := paperServiceFixture()

	file := types.StoredFile{FileName: "u/1.pdf", PublicURL: "http://files.test/files/u/1.pdf"}
	tests := []struct {
		name string
		req  types.CreatePaperRequest
	}{
		{"missing title", types.CreatePaperRequest{Subject: "Physics", Files: []types.StoredFile{file}}},
		{"missing subject", types.CreatePaperRequest{Title: "Final", Files: []types.StoredFile{file}}},
		{"no files", types.CreatePaperRequest{Title: "Final", Subject: "Physics"}},
	}
	for _, tc := range tests {
		if _, err := svc.CreatePaper(context.Background(), "user-1", &tc.req); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}

	paper, err := svc.CreatePaper(context.Background(), "user-1", &types.CreatePaperRequest{
		Title: "Final", Subject: "Physics", Files: []types.StoredFile{file},
	})
	if err != nil {
		t.Fatalf("CreatePaper: %v", err)
	}
	if paper.UploaderID != "user-1" || paper.ID == "" {
		t.Fatalf("unexpected paper: %+v", paper)
	}
}

func TestToggleUpvote(t *testing.T) {
	svc, _, _ := paperServiceFixture(&types.Paper{ID: "p1", UploaderID: "user-1"})

	set, err := svc.ToggleUpvote(context.Background(), "user-2", "p1")
	if err != nil || !set {
		t.Fatalf("first toggle: set=%v err=%v", set, err)
	}
	set, err = svc.ToggleUpvote(context.Background(), "user-2", "p1")
	if err != nil || set {
		t.Fatalf("second toggle: set=%v err=%v", set, err)
	}

	if _, err := svc.ToggleUpvote(context.Background(), "user-2", "missing"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("missing paper err = %v", err)
	}
}

func TestToggleBookmarkAndList(t *testing.T) {
	paperRepo := newFakePaperRepo(
		&types.Paper{ID: "p1", UploaderID: "user-1"},
		&types.Paper{ID: "p2", UploaderID: "user-1"},
	)
	svc := NewPaperService(paperRepo, newFakeCommentRepo(), newFakeBookmarkRepo(), newFakeRatingRepo(), nil)

	for _, id := range []string{"p1", "p2"} {
		if set, err := svc.ToggleBookmark(context.Background(), "user-2", id); err != nil || !set {
			t.Fatalf("bookmark %s: set=%v err=%v", id, set, err)
		}
	}

	// A deleted paper drops out of the bookmark list instead of erroring.
	if err := paperRepo.DeletePaper(context.Background(), "p2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	papers, err := svc.ListBookmarkedPapers(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("ListBookmarkedPapers: %v", err)
	}
	if len(papers) != 1 || papers[0].ID != "p1" {
		t.Fatalf("papers = %+v", papers)
	}

	if set, err := svc.ToggleBookmark(context.Background(), "user-2", "p1"); err != nil || set {
		t.Fatalf("unbookmark: set=%v err=%v", set, err)
	}
}

func TestRatePaper(t *testing.T) {
	svc, _, _ := paperServiceFixture(&types.Paper{ID: "p1", UploaderID: "user-1"})

	for _, score := range []int{0, 6, -1} {
		if err := svc.RatePaper(context.Background(), "user-2", "p1", score); !errors.Is(err, ErrInvalidScore) {
			t.Fatalf("score %d err = %v", score, err)
		}
	}

	if err := svc.RatePaper(context.Background(), "user-2", "p1", 4); err != nil {
		t.Fatalf("RatePaper: %v", err)
	}
	// Re-rating replaces, it does not add a second vote.
	if err := svc.RatePaper(context.Background(), "user-2", "p1", 2); err != nil {
		t.Fatalf("RatePaper: %v", err)
	}
	if err := svc.RatePaper(context.Background(), "user-3", "p1", 5); err != nil {
		t.Fatalf("RatePaper: %v", err)
	}

	summary, err := svc.GetPaper(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetPaper: %v", err)
	}
	if summary.RatingCount != 2 || summary.AvgRating != 3.5 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestDeletePaperOwnerOnly(t *testing.T) {
	svc, paperRepo, commentRepo := paperServiceFixture(&types.Paper{ID: "p1", UploaderID: "user-1"})

	if _, err := svc.AddComment(context.Background(), "user-2", "bina", "p1", "nice paper"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	if err := svc.DeletePaper(context.Background(), "user-2", "p1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("stranger delete err = %v", err)
	}
	if err := svc.DeletePaper(context.Background(), "user-1", "p1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(paperRepo.papers) != 0 {
		t.Fatal("paper not removed")
	}
	if len(commentRepo.comments) != 0 {
		t.Fatal("comments must be deleted with the paper")
	}
}

func TestDeleteCommentOwnerOnly(t *testing.T) {
	svc, _, _ := paperServiceFixture(&types.Paper{ID: "p1", UploaderID: "user-1"})

	comment, err := svc.AddComment(context.Background(), "user-2", "bina", "p1", "  spaced out  ")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.Content != "spaced out" {
		t.Fatalf("content not trimmed: %q", comment.Content)
	}

	if err := svc.DeleteComment(context.Background(), "user-3", comment.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("stranger delete err = %v", err)
	}
	if err := svc.DeleteComment(context.Background(), "user-2", comment.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
}
