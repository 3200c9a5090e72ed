package inquiry

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"communew/internal/domain"
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
	inq := rg.Group("/inquiries")
	{
		inq.POST("", h.CreateInquiry)
		inq.GET("", h.ListMyInquiries)
		inq.GET("/received", h.ListReceivedInquiries)
		inq.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) CreateInquiry(c *gin.Context) {
	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inq, err := h.service.CreateInquiry(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		handleInquiryError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, inq)
}

func (h *Handler) ListMyInquiries(c *gin.Context) {
	inqs, err := h.service.ListForRequester(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list inquiries")
		return
	}
	response.Success(c, http.StatusOK, inqs)
}

func (h *Handler) ListReceivedInquiries(c *gin.Context) {
	inqs, err := h.service.ListForOwner(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list inquiries")
		return
	}
	response.Success(c, http.StatusOK, inqs)
}

type updateStatusRequest struct {
	Status domain.InquiryStatus `json:"status" binding:"required"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inq, err := h.service.UpdateStatus(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Status)
	if err != nil {
		handleInquiryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inq)
}

func handleInquiryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInquiryNotFound), errors.Is(err, ErrStudioNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrInvalidTimeRange), errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_OPERATION", err.Error())
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "STORAGE_FAILURE", "internal error")
	}
}
