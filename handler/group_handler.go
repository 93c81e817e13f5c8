package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paperdesk/paperdesk-be/middleware"
	"github.com/paperdesk/paperdesk-be/service"
	"github.com/paperdesk/paperdesk-be/types"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type GroupHandler struct {
	groupService *service.GroupService
	chatService  *service.GroupChatService
}

func NewGroupHandler(groupService *service.GroupService, chatService *service.GroupChatService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		chatService:  chatService,
	}
}

func (h *GroupHandler) HandleCreateGroup(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req types.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), user.ID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, types.DataResponse{
		Status: true,
		Data:   group,
	})
}

func (h *GroupHandler) HandleListMyGroups(c *gin.Context) {
	user := middleware.CurrentUser(c)

	groups, err := h.groupService.ListMyGroups(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   groups,
	})
}

func (h *GroupHandler) HandleGetGroup(c *gin.Context) {
	user := middleware.CurrentUser(c)

	group, err := h.groupService.GetGroup(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   group,
	})
}

func (h *GroupHandler) HandleJoinGroup(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req types.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	group, err := h.groupService.JoinByInviteCode(c.Request.Context(), user.ID, req.InviteCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   group,
	})
}

func (h *GroupHandler) HandleLeaveGroup(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.groupService.LeaveGroup(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}

func (h *GroupHandler) HandleRegenerateInvite(c *gin.Context) {
	user := middleware.CurrentUser(c)

	code, err := h.groupService.RegenerateInviteCode(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   gin.H{"invite_code": code},
	})
}

func (h *GroupHandler) HandleDeleteGroup(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.groupService.DeleteGroup(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}

func (h *GroupHandler) HandleListMessages(c *gin.Context) {
	user := middleware.CurrentUser(c)

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	messages, err := h.groupService.ListMessages(c.Request.Context(), user.ID, c.Param("id"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   messages,
	})
}

// HandleChatSocket upgrades members to the group's live chat room.
func (h *GroupHandler) HandleChatSocket(c *gin.Context) {
	user := middleware.CurrentUser(c)
	groupID := c.Param("id")

	member, err := h.groupService.IsMember(c.Request.Context(), user.ID, groupID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, types.DataResponse{
			Status:  false,
			Message: service.ErrNotMember.Error(),
		})
		return
	}

	h.chatService.HandleConnection(c.Writer, c.Request, groupID, user)
}

func (h *GroupHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotGroupOwner):
		status = http.StatusForbidden
	}
	c.JSON(status, types.DataResponse{
		Status:  false,
		Message: err.Error(),
	})
}
