package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paperdesk/paperdesk-be/types"
	"github.com/sashabaranov/go-openai"
)

// fakeOpenAI captures the chat completion request and returns a canned answer.
func fakeOpenAI(t *testing.T, answer string, captured *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: answer}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIChatRelaysPromptAndHistory(t *testing.T) {
	var captured openai.ChatCompletionRequest
	ts := fakeOpenAI(t, "The answer is 42.", &captured)
	defer ts.Close()

	svc := NewOpenAIService(ts.URL, "test-key", "gpt-4o-mini")

	answer, err := svc.Chat(context.Background(), &types.ChatRequest{
		Message: "Explain question 3",
		PaperContext: &types.PaperContext{
			Title:    "Physics Midterm",
			Subject:  "Physics",
			ExamType: "Midterm",
		},
		ConversationHistory: []types.ChatMessage{
			{Role: "user", Content: "Hi"},
			{Role: "assistant", Content: "Hello! How can I help?"},
		},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if answer != "The answer is 42." {
		t.Fatalf("answer = %q", answer)
	}

	if captured.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", captured.Model)
	}
	if captured.MaxTokens != chatMaxTokens || captured.Temperature != chatTemperature {
		t.Fatalf("limits not applied: %+v", captured)
	}

	// system prompt + 2 history turns + the new question
	if len(captured.Messages) != 4 {
		t.Fatalf("messages = %d, want 4", len(captured.Messages))
	}
	system := captured.Messages[0]
	if system.Role != openai.ChatMessageRoleSystem {
		t.Fatalf("first message role = %q", system.Role)
	}
	if !strings.Contains(system.Content, "Physics Midterm") {
		t.Fatal("system prompt must carry the paper context")
	}
	if captured.Messages[1].Role != openai.ChatMessageRoleUser ||
		captured.Messages[2].Role != openai.ChatMessageRoleAssistant {
		t.Fatalf("history roles not mapped: %+v", captured.Messages[1:3])
	}
	last := captured.Messages[len(captured.Messages)-1]
	if last.Role != openai.ChatMessageRoleUser || last.Content != "Explain question 3" {
		t.Fatalf("question not last: %+v", last)
	}
}

func TestOpenAIChatBoundsHistory(t *testing.T) {
	var captured openai.ChatCompletionRequest
	ts := fakeOpenAI(t, "ok", &captured)
	defer ts.Close()

	svc := NewOpenAIService(ts.URL, "test-key", "gpt-4o-mini")

	var history []types.ChatMessage
	for i := 0; i < 30; i++ {
		history = append(history, types.ChatMessage{Role: "user", Content: "old turn"})
	}
	if _, err := svc.Chat(context.Background(), &types.ChatRequest{
		Message:             "new question",
		ConversationHistory: history,
	}); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	// system + capped history + question
	if len(captured.Messages) != maxHistoryTurns+2 {
		t.Fatalf("messages = %d, want %d", len(captured.Messages), maxHistoryTurns+2)
	}
}

func TestOpenAIChatEmptyAnswerFallsBack(t *testing.T) {
	var captured openai.ChatCompletionRequest
	ts := fakeOpenAI(t, "", &captured)
	defer ts.Close()

	svc := NewOpenAIService(ts.URL, "test-key", "gpt-4o-mini")

	answer, err := svc.Chat(context.Background(), &types.ChatRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if answer != noAnswerFallback {
		t.Fatalf("answer = %q, want fallback", answer)
	}
}

func TestOpenAIChatUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	svc := NewOpenAIService(ts.URL, "test-key", "gpt-4o-mini")
	if _, err := svc.Chat(context.Background(), &types.ChatRequest{Message: "hello"}); err == nil {
		t.Fatal("upstream failure must surface as an error")
	}
}
