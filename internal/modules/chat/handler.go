package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communew/internal/middleware"
	"communew/internal/pkg/response"
)

// Handler handles HTTP requests for conversations and messages.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	conv := rg.Group("/conversations")
	{
		conv.POST("", h.EnsureConversation)
		conv.GET("", h.ListConversations)
		conv.GET("/:id/messages", h.GetMessages)
		conv.POST("/:id/messages", h.SendMessage)
	}
}

type ensureConversationRequest struct {
	OtherUserID string `json:"other_user_id" binding:"required"`
}

// EnsureConversation resolves or creates the single conversation between the
// caller and another user. Used by "Contact host" and "Request to host".
func (h *Handler) EnsureConversation(c *gin.Context) {
	userID := middleware.UserID(c)

	var req ensureConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	conv, err := h.service.EnsureConversation(c.Request.Context(), userID, req.OtherUserID)
	if err != nil {
		handleChatError(c, err)
		return
	}
	response.Success(c, http.StatusOK, conv)
}

func (h *Handler) ListConversations(c *gin.Context) {
	userID := middleware.UserID(c)

	convs, err := h.service.ListConversations(c.Request.Context(), userID)
	if err != nil {
		handleChatError(c, err)
		return
	}
	response.Success(c, http.StatusOK, convs)
}

func (h *Handler) GetMessages(c *gin.Context) {
	userID := middleware.UserID(c)

	msgs, err := h.service.GetMessages(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleChatError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msgs)
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	userID := middleware.UserID(c)

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		handleChatError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

func handleChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrConversationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrCannotMessageSelf), errors.Is(err, ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, "INVALID_OPERATION", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "STORAGE_FAILURE", "internal error")
	}
}
