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

type PaperHandler struct {
	paperService *service.PaperService
}

func NewPaperHandler(paperService *service.PaperService) *PaperHandler {
	return &PaperHandler{
		paperService: paperService,
	}
}

func (h *PaperHandler) HandleCreatePaper(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req types.CreatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	paper, err := h.paperService.CreatePaper(c.Request.Context(), user.ID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, types.DataResponse{
		Status: true,
		Data:   paper,
	})
}

func (h *PaperHandler) HandleListPapers(c *gin.Context) {
	var filter types.PaperFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid query parameters",
		})
		return
	}

	papers, total, err := h.paperService.ListPapers(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: gin.H{
			"papers": papers,
			"total":  total,
		},
	})
}

func (h *PaperHandler) HandleGetPaper(c *gin.Context) {
	summary, err := h.paperService.GetPaper(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   summary,
	})
}

func (h *PaperHandler) HandleDeletePaper(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.paperService.DeletePaper(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}

func (h *PaperHandler) HandleToggleUpvote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	upvoted, err := h.paperService.ToggleUpvote(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   gin.H{"upvoted": upvoted},
	})
}

func (h *PaperHandler) HandleToggleBookmark(c *gin.Context) {
	user := middleware.CurrentUser(c)

	bookmarked, err := h.paperService.ToggleBookmark(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   gin.H{"bookmarked": bookmarked},
	})
}

func (h *PaperHandler) HandleListBookmarks(c *gin.Context) {
	user := middleware.CurrentUser(c)

	papers, err := h.paperService.ListBookmarkedPapers(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   papers,
	})
}

func (h *PaperHandler) HandleRatePaper(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req types.RatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	if err := h.paperService.RatePaper(c.Request.Context(), user.ID, c.Param("id"), req.Score); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}

func (h *PaperHandler) HandleAddComment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req types.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	name := user.DisplayName
	if name == "" {
		name = user.Username
	}
	comment, err := h.paperService.AddComment(c.Request.Context(), user.ID, name, c.Param("id"), req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.DataResponse{
		Status: true,
		Data:   comment,
	})
}

func (h *PaperHandler) HandleListComments(c *gin.Context) {
	comments, err := h.paperService.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   comments,
	})
}

func (h *PaperHandler) HandleDeleteComment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.paperService.DeleteComment(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}

func (h *PaperHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidScore):
		status = http.StatusBadRequest
	}
	c.JSON(status, types.DataResponse{
		Status:  false,
		Message: err.Error(),
	})
}
