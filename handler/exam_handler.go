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

type ExamHandler struct {
	examService *service.ExamService
}

func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{
		examService: examService,
	}
}

func (h *ExamHandler) HandleCreateEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req types.CreateExamEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	event, err := h.examService.CreateEvent(c.Request.Context(), user.ID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, types.DataResponse{
		Status: true,
		Data:   event,
	})
}

func (h *ExamHandler) HandleListUpcoming(c *gin.Context) {
	user := middleware.CurrentUser(c)

	events, err := h.examService.ListUpcoming(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   events,
	})
}

func (h *ExamHandler) HandleDeleteEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.examService.DeleteEvent(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrNotOwner):
			status = http.StatusForbidden
		}
		c.JSON(status, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}
