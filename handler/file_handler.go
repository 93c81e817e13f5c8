package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paperdesk/paperdesk-be/service"
)

// FileHandler serves stored uploads back from the disk storage root.
type FileHandler struct {
	storage *service.DiskStorage
}

func NewFileHandler(storage *service.DiskStorage) *FileHandler {
	return &FileHandler{
		storage: storage,
	}
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	path, err := h.storage.Path(key)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file key"})
		return
	}
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	c.File(path)
}
