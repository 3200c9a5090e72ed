package catalog

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

// RegisterPublicRoutes exposes discovery endpoints without authentication.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.ListEvents)
	rg.GET("/events/:id", h.GetEvent)
	rg.GET("/studios", h.ListStudios)
	rg.GET("/studios/:id", h.GetStudio)
}

// RegisterProtectedRoutes exposes host-side management endpoints.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/events", h.CreateEvent)
	rg.GET("/host/events", h.ListHostEvents)
	rg.POST("/studios", h.CreateStudio)
	rg.GET("/host/studios", h.ListOwnerStudios)
}

func (h *Handler) ListEvents(c *gin.Context) {
	limit, offset := pagination(c)
	events, err := h.service.ListEvents(c.Request.Context(), c.Query("city"), c.Query("category"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list events")
		return
	}
	response.Success(c, http.StatusOK, events)
}

func (h *Handler) GetEvent(c *gin.Context) {
	e, err := h.service.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	e, err := h.service.CreateEvent(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

func (h *Handler) ListHostEvents(c *gin.Context) {
	events, err := h.service.ListHostEvents(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list events")
		return
	}
	response.Success(c, http.StatusOK, events)
}

func (h *Handler) ListStudios(c *gin.Context) {
	limit, offset := pagination(c)
	studios, err := h.service.ListStudios(c.Request.Context(), c.Query("city"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list studios")
		return
	}
	response.Success(c, http.StatusOK, studios)
}

func (h *Handler) GetStudio(c *gin.Context) {
	st, err := h.service.GetStudio(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

func (h *Handler) CreateStudio(c *gin.Context) {
	var req CreateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	st, err := h.service.CreateStudio(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, st)
}

func (h *Handler) ListOwnerStudios(c *gin.Context) {
	studios, err := h.service.ListOwnerStudios(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list studios")
		return
	}
	response.Success(c, http.StatusOK, studios)
}

func handleCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrStudioNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func pagination(c *gin.Context) (int, int) {
	limit := 20
	offset := 0
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o >= 0 {
		offset = o
	}
	return limit, offset
}
