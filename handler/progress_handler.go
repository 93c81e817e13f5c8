package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperdesk/paperdesk-be/middleware"
	"github.com/paperdesk/paperdesk-be/service"
	"github.com/paperdesk/paperdesk-be/types"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

func (h *ProgressHandler) HandleUpdateProgress(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req types.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaperID == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "paper_id is required",
		})
		return
	}

	err := h.progressService.UpdateProgress(c.Request.Context(), user.ID, &req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrInvalidProgressStatus):
			status = http.StatusBadRequest
		}
		c.JSON(status, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}

func (h *ProgressHandler) HandleListProgress(c *gin.Context) {
	user := middleware.CurrentUser(c)

	entries, err := h.progressService.ListProgress(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   entries,
	})
}

func (h *ProgressHandler) HandleGetStats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	stats, err := h.progressService.GetStats(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   stats,
	})
}
