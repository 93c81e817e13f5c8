package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/paperdesk/paperdesk-be/config"
	"github.com/paperdesk/paperdesk-be/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

var (
	PAPER_CLASS        = "Paper"
	PAPER_CLASS_OBJECT = &models.Class{
		Class: PAPER_CLASS,
		Properties: []*models.Property{
			{Name: "paperId", DataType: []string{"text"}},
			{Name: "title", DataType: []string{"text"}},
			{Name: "subject", DataType: []string{"text"}},
			{Name: "board", DataType: []string{"text"}},
			{Name: "class", DataType: []string{"text"}},
			{Name: "year", DataType: []string{"int"}},
			{Name: "examType", DataType: []string{"text"}},
			{Name: "description", DataType: []string{"text"}},
			{Name: "content", DataType: []string{"text"}},
		},
		VectorIndexType: "hnsw",
	}
)

type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(config config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(config.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(config.Host, scheme+"://")
	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if config.APIKey != "" {
		cfg.AuthConfig = auth.ApiKey{
			Value: config.APIKey,
		}
		cfg.Headers = map[string]string{
			"X-Weaviate-Api-Key":     config.APIKey,
			"X-Weaviate-Cluster-Url": fmt.Sprintf("%s://%s", scheme, host),
		}
	}
	PAPER_CLASS_OBJECT.Vectorizer = config.Text2Vec
	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	schema, err := client.Schema().Getter().Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %v", err)
	}

	hasPaperClass := false
	for _, class := range schema.Classes {
		if class.Class == PAPER_CLASS {
			hasPaperClass = true
			break
		}
	}
	if !hasPaperClass {
		err = client.Schema().ClassCreator().WithClass(PAPER_CLASS_OBJECT).Do(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create Paper class: %v", err)
		}
	}
	return &WeaviateStore{
		client: client,
	}, nil
}

// ReInit drops and recreates the Paper class. Used by the reindex command.
func (s *WeaviateStore) ReInit() error {
	err := s.client.Schema().ClassDeleter().WithClassName(PAPER_CLASS).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to delete Paper class: %v", err)
	}

	err = s.client.Schema().ClassCreator().WithClass(PAPER_CLASS_OBJECT).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create Paper class: %v", err)
	}
	return nil
}

func paperProperties(doc *types.PaperIndexDoc) map[string]interface{} {
	return map[string]interface{}{
		"paperId":     doc.PaperID,
		"title":       doc.Title,
		"subject":     doc.Subject,
		"board":       doc.Board,
		"class":       doc.Class,
		"year":        doc.Year,
		"examType":    doc.ExamType,
		"description": doc.Description,
		"content":     doc.Content,
	}
}

func (s *WeaviateStore) IndexPaper(ctx context.Context, doc *types.PaperIndexDoc) error {
	_, err := s.client.Data().Creator().
		WithClassName(PAPER_CLASS).
		WithProperties(paperProperties(doc)).
		Do(ctx)
	return err
}

func (s *WeaviateStore) BatchIndexPapers(ctx context.Context, docs []types.PaperIndexDoc) error {
	if len(docs) == 0 {
		return nil
	}
	batcher := s.client.Batch().ObjectsBatcher()
	for i := range docs {
		batcher = batcher.WithObjects(&models.Object{
			Class:      PAPER_CLASS,
			Properties: paperProperties(&docs[i]),
		})
	}
	if _, err := batcher.Do(ctx); err != nil {
		return fmt.Errorf("failed to index batch of %d papers: %v", len(docs), err)
	}
	return nil
}

// DeletePaper removes every index object carrying the given paper id.
func (s *WeaviateStore) DeletePaper(ctx context.Context, paperID string) error {
	where := filters.Where().
		WithPath([]string{"paperId"}).
		WithOperator(filters.Equal).
		WithValueString(paperID)
	_, err := s.client.Batch().ObjectsBatchDeleter().
		WithClassName(PAPER_CLASS).
		WithWhere(where).
		Do(ctx)
	return err
}

// SearchPapers runs a BM25 keyword query over title, subject, description and
// extracted content and returns paper ids with their relevance scores.
func (s *WeaviateStore) SearchPapers(ctx context.Context, query string, limit int) ([]types.SearchHit, error) {
	fields := []graphql.Field{
		{Name: "paperId"},
		{Name: "title"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "score"}}},
	}

	bm25 := s.client.GraphQL().Bm25ArgBuilder().
		WithQuery(query).
		WithProperties("title", "subject", "description", "content")

	getBuilder := s.client.GraphQL().Get().
		WithClassName(PAPER_CLASS).
		WithFields(fields...).
		WithBM25(bm25)
	if limit > 0 {
		getBuilder = getBuilder.WithLimit(limit)
	}

	result, err := getBuilder.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %v", err)
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("search failed: %v", result.Errors[0].Message)
	}

	var hits []types.SearchHit
	get, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return hits, nil
	}
	if data, ok := get[PAPER_CLASS].([]interface{}); ok {
		for _, item := range data {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			hit := types.SearchHit{}
			if id, ok := obj["paperId"].(string); ok {
				hit.PaperID = id
			}
			if additional, ok := obj["_additional"].(map[string]interface{}); ok {
				switch v := additional["score"].(type) {
				case float64:
					hit.Score = v
				case string:
					fmt.Sscanf(v, "%f", &hit.Score)
				}
			}
			hits = append(hits, hit)
		}
	}
	return hits, nil
}
