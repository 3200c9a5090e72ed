package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"communew/internal/middleware"
	"communew/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	notif := rg.Group("/notifications")
	{
		notif.GET("", h.List)
		notif.GET("/unread-count", h.UnreadCount)
		notif.PATCH("/:id/read", h.MarkAsRead)
		notif.POST("/read-all", h.MarkAllAsRead)
		notif.POST("/test", h.CreateTest)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	limit := 0
	if l, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = l
	}

	list, unread, err := h.service.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items":        list,
		"unread_count": unread,
	})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	unread, err := h.service.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to count notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread_count": unread})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	err := h.service.MarkAsRead(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to mark as read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "marked as read"})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	if err := h.service.MarkAllAsRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to mark all as read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "all marked as read"})
}

func (h *Handler) CreateTest(c *gin.Context) {
	n, err := h.service.CreateTest(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to create test notification")
		return
	}
	response.Success(c, http.StatusCreated, n)
}
