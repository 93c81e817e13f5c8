package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperdesk/paperdesk-be/middleware"
	"github.com/paperdesk/paperdesk-be/service"
	"github.com/paperdesk/paperdesk-be/types"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// HandleUpload accepts a batch of files under the "files" form field. Files
// are processed one at a time in payload order; a response is successful as
// long as at least one file was stored, with per-file errors reported
// alongside.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	stored, uploadErrors := h.uploadService.UploadBatch(user.ID, files)

	if len(stored) == 0 {
		c.JSON(http.StatusBadRequest, types.UploadBatchResponse{
			Success: false,
			Error:   uploadErrors[0].Error,
			Errors:  uploadErrors,
		})
		return
	}

	// publicUrl and fileName repeat the first stored file for older clients.
	c.JSON(http.StatusOK, types.UploadBatchResponse{
		Success:   true,
		Files:     stored,
		Errors:    uploadErrors,
		PublicURL: stored[0].PublicURL,
		FileName:  stored[0].FileName,
	})
}
