package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/paperdesk/paperdesk-be/middleware"
	"github.com/paperdesk/paperdesk-be/service"
	"github.com/paperdesk/paperdesk-be/types"
	"github.com/paperdesk/paperdesk-be/utils"
)

type memStorage struct {
	puts map[string][]byte
}

func (m *memStorage) Put(key string, data []byte, contentType string) error {
	if m.puts == nil {
		m.puts = make(map[string][]byte)
	}
	m.puts[key] = data
	return nil
}

func (m *memStorage) PublicURL(key string) string { return "http://files.test/files/" + key }

func (m *memStorage) Path(key string) (string, error) { return "/tmp/" + key, nil }

func uploadRouter(t *testing.T, authed bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewUploadHandler(service.NewUploadService(&memStorage{}))
	router := gin.New()
	router.POST("/api/v1/papers/upload", func(c *gin.Context) {
		if authed {
			c.Set(middleware.UserContextKey, &utils.UserClaims{ID: "user-1", Username: "asha"})
		}
		h.HandleUpload(c)
	})
	return router
}

func uploadBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, data := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, name))
		h.Set("Content-Type", "application/octet-stream")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func validPDF() []byte {
	return append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), 256)...)
}

func TestHandleUploadRequiresAuth(t *testing.T) {
	router := uploadRouter(t, false)

	body, contentType := uploadBody(t, map[string][]byte{"paper.pdf": validPDF()})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/papers/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestHandleUploadNoFiles(t *testing.T) {
	router := uploadRouter(t, true)

	body, contentType := uploadBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/papers/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleUploadMixedBatch(t *testing.T) {
	router := uploadRouter(t, true)

	body, contentType := uploadBody(t, map[string][]byte{
		"paper.pdf": validPDF(),
		"notes.txt": bytes.Repeat([]byte("just text "), 30),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/papers/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp types.UploadBatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || len(resp.Files) != 1 || len(resp.Errors) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Errors[0].FileName != "notes.txt" || resp.Errors[0].Error != "unsupported file type" {
		t.Fatalf("unexpected error entry: %+v", resp.Errors[0])
	}
	// Legacy single-file fields mirror the first stored file.
	if resp.PublicURL != resp.Files[0].PublicURL || resp.FileName != resp.Files[0].FileName {
		t.Fatalf("legacy fields out of sync: %+v", resp)
	}
}

func TestHandleUploadAllRejected(t *testing.T) {
	router := uploadRouter(t, true)

	body, contentType := uploadBody(t, map[string][]byte{
		"notes.txt": bytes.Repeat([]byte("just text "), 30),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/papers/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp types.UploadBatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Error == "" || len(resp.Errors) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
