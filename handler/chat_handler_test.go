package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/paperdesk/paperdesk-be/types"
)

type stubAIService struct {
	answer  string
	err     error
	calls   int
	lastReq *types.ChatRequest
}

func (s *stubAIService) Chat(ctx context.Context, req *types.ChatRequest) (string, error) {
	s.calls++
	s.lastReq = req
	return s.answer, s.err
}

func chatRouter(t *testing.T, h *ChatHandler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/chat", h.HandleChat)
	return router
}

func postChat(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleChatSuccess(t *testing.T) {
	stub := &stubAIService{answer: "Start with conservation of energy."}
	router := chatRouter(t, NewChatHandler(stub))

	w := postChat(t, router, `{
		"message": "How do I solve question 2?",
		"paperContext": {"title": "Physics Midterm", "subject": "Physics"},
		"conversationHistory": [{"role": "user", "content": "hi"}]
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp types.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != stub.answer {
		t.Fatalf("message = %q", resp.Message)
	}
	if stub.lastReq.PaperContext == nil || stub.lastReq.PaperContext.Title != "Physics Midterm" {
		t.Fatalf("paper context not forwarded: %+v", stub.lastReq)
	}
}

func TestHandleChatEmptyMessage(t *testing.T) {
	stub := &stubAIService{answer: "never"}
	router := chatRouter(t, NewChatHandler(stub))

	for _, body := range []string{`{}`, `{"message": "   "}`, `not json`} {
		w := postChat(t, router, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, w.Code)
		}
	}
	if stub.calls != 0 {
		t.Fatalf("provider called %d times for invalid input", stub.calls)
	}
}

func TestHandleChatUnconfigured(t *testing.T) {
	router := chatRouter(t, NewChatHandler(nil))

	w := postChat(t, router, `{"message": "hello"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "AI service not configured") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestHandleChatUpstreamFailure(t *testing.T) {
	stub := &stubAIService{err: errors.New("connection refused: upstream.internal:443")}
	router := chatRouter(t, NewChatHandler(stub))

	w := postChat(t, router, `{"message": "hello"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	// Upstream details must not leak to the client.
	if strings.Contains(w.Body.String(), "upstream.internal") {
		t.Fatalf("body leaks upstream error: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Failed to get AI response") {
		t.Fatalf("body = %s", w.Body.String())
	}
}
