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

type RequestHandler struct {
	requestService *service.RequestService
}

func NewRequestHandler(requestService *service.RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
	}
}

func (h *RequestHandler) HandleCreateRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req types.CreatePaperRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), user.ID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, types.DataResponse{
		Status: true,
		Data:   request,
	})
}

func (h *RequestHandler) HandleListOpenRequests(c *gin.Context) {
	requests, err := h.requestService.ListOpenRequests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   requests,
	})
}

func (h *RequestHandler) HandleFulfillRequest(c *gin.Context) {
	var req types.FulfillPaperRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaperID == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "paper_id is required",
		})
		return
	}

	request, err := h.requestService.FulfillRequest(c.Request.Context(), c.Param("id"), req.PaperID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   request,
	})
}

func (h *RequestHandler) HandleDeleteRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.requestService.DeleteRequest(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}

func (h *RequestHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrRequestClosed):
		status = http.StatusConflict
	}
	c.JSON(status, types.DataResponse{
		Status:  false,
		Message: err.Error(),
	})
}
