package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/paperdesk/paperdesk-be/types"
	"google.golang.org/api/option"
)

// GeminiService is the alternate chat provider. Several API keys can be
// supplied; on an upstream error it rotates to the next key once and retries.
type GeminiService struct {
	apiKeys    []string
	currentKey int
	modelName  string
	client     *genai.Client
	mu         sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiService{
		apiKeys:   apiKeys,
		modelName: modelName,
	}
	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.initClient()
}

func (s *GeminiService) newModel() *genai.GenerativeModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.GenerativeModel(s.modelName)
}

func (s *GeminiService) Chat(ctx context.Context, req *types.ChatRequest) (string, error) {
	send := func() (*genai.GenerateContentResponse, error) {
		model := s.newModel()
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(buildSystemPrompt(req.PaperContext))},
		}
		maxTokens := int32(chatMaxTokens)
		temperature := float32(chatTemperature)
		model.MaxOutputTokens = &maxTokens
		model.Temperature = &temperature

		chat := model.StartChat()
		history := make([]*genai.Content, 0, maxHistoryTurns)
		for _, msg := range boundHistory(req.ConversationHistory) {
			role := "user"
			if msg.Role == "assistant" {
				role = "model"
			}
			history = append(history, &genai.Content{
				Parts: []genai.Part{genai.Text(msg.Content)},
				Role:  role,
			})
		}
		chat.History = history
		return chat.SendMessage(ctx, genai.Text(req.Message))
	}

	resp, err := send()
	if err != nil {
		// Try the next API key before giving up.
		if err := s.rotateAPIKey(); err != nil {
			return "", err
		}
		resp, err = send()
		if err != nil {
			return "", err
		}
	}

	if len(resp.Candidates) == 0 {
		return noAnswerFallback, nil
	}
	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	if content == "" {
		return noAnswerFallback, nil
	}
	return content, nil
}
