package service

import (
	"context"
	"log"
	"strings"

	"github.com/paperdesk/paperdesk-be/database"
	"github.com/paperdesk/paperdesk-be/repository"
	"github.com/paperdesk/paperdesk-be/types"
)

// SearchService maintains the paper search index and resolves query hits
// back to full paper records.
type SearchService struct {
	store      *database.WeaviateStore
	paperRepo  repository.PaperRepo
	pdfService *PDFService
	storage    Storage
}

func NewSearchService(
	store *database.WeaviateStore,
	paperRepo repository.PaperRepo,
	pdfService *PDFService,
	storage Storage,
) *SearchService {
	return &SearchService{
		store:      store,
		paperRepo:  paperRepo,
		pdfService: pdfService,
		storage:    storage,
	}
}

func (s *SearchService) buildIndexDoc(paper *types.Paper) *types.PaperIndexDoc {
	doc := &types.PaperIndexDoc{
		PaperID:     paper.ID,
		Title:       paper.Title,
		Subject:     paper.Subject,
		Board:       paper.Board,
		Class:       paper.Class,
		Year:        paper.Year,
		ExamType:    paper.ExamType,
		Description: paper.Description,
	}

	// Pull the text layer of any stored PDFs into the index content. Papers
	// whose files are missing or image-only are still matchable by metadata.
	var parts []string
	for _, file := range paper.Files {
		if !strings.HasSuffix(file.FileName, ".pdf") {
			continue
		}
		path, err := s.storage.Path(file.FileName)
		if err != nil {
			continue
		}
		text, err := s.pdfService.ExtractText(path)
		if err != nil {
			log.Printf("pdf text extraction failed for %s: %v", file.FileName, err)
			continue
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	doc.Content = strings.Join(parts, "\n")
	return doc
}

func (s *SearchService) IndexPaper(ctx context.Context, paper *types.Paper) error {
	return s.store.IndexPaper(ctx, s.buildIndexDoc(paper))
}

func (s *SearchService) DeindexPaper(ctx context.Context, paperID string) error {
	return s.store.DeletePaper(ctx, paperID)
}

// Search resolves index hits against Mongo, dropping hits whose paper has
// been deleted since it was indexed.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]types.SearchHit, error) {
	hits, err := s.store.SearchPapers(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	resolved := make([]types.SearchHit, 0, len(hits))
	for _, hit := range hits {
		paper, err := s.paperRepo.GetPaper(ctx, hit.PaperID)
		if err != nil {
			continue
		}
		hit.Paper = paper
		resolved = append(resolved, hit)
	}
	return resolved, nil
}

// Reindex rebuilds the whole index from Mongo. Used by the reindex command.
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	if err := s.store.ReInit(); err != nil {
		return 0, err
	}

	papers, err := s.paperRepo.ListAllPapers(ctx)
	if err != nil {
		return 0, err
	}

	docs := make([]types.PaperIndexDoc, 0, len(papers))
	for _, paper := range papers {
		docs = append(docs, *s.buildIndexDoc(paper))
	}
	if err := s.store.BatchIndexPapers(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}
