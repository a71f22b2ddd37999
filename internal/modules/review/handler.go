package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/middleware"
	"apartmentbooking/internal/pkg/pagination"
	"apartmentbooking/internal/pkg/response"
	"apartmentbooking/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/reviews", middleware.RequireRole(domain.RoleTenant), h.Create)
	protected.GET("/apartments/:id/reviews", h.ListForApartment)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	rv, err := h.service.AddReview(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) ListForApartment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return
	}

	ctx := c.Request.Context()
	page, err := h.service.ListForApartment(ctx, id, pagination.FromQuery(c, ReviewsPerPage))
	if err != nil {
		response.Fail(c, err)
		return
	}
	summary, err := h.service.Summary(ctx, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, ApartmentReviews{Summary: summary, Reviews: page})
}
