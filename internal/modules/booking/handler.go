package booking

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
	tenant := protected.Group("/bookings")
	{
		tenant.POST("", middleware.RequireRole(domain.RoleTenant), h.Create)
		tenant.GET("", middleware.RequireRole(domain.RoleTenant), h.ListMine)
		tenant.GET("/:id", h.Get)
		tenant.PUT("/:id", middleware.RequireRole(domain.RoleTenant), h.Modify)
		tenant.PATCH("/:id/cancel", middleware.RequireRole(domain.RoleTenant), h.Cancel)
	}

	owner := protected.Group("/owner/bookings", middleware.RequireRole(domain.RoleOwner))
	{
		owner.GET("", h.ListOwner)
		owner.PATCH("/:id/approve", h.Approve)
		owner.PATCH("/:id/reject", h.Reject)
	}

	protected.GET("/apartments/:id/availability", h.Availability)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	stay, err := ParseStay(req.CheckIn, req.CheckOut, req.Guests, req.Request)
	if err != nil {
		response.Fail(c, err)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), middleware.ActorFrom(c), req.ApartmentID, stay)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, NewBookingView(b))
}

func (h *Handler) Modify(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ModifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	stay, err := ParseStay(req.CheckIn, req.CheckOut, req.Guests, req.Request)
	if err != nil {
		response.Fail(c, err)
		return
	}

	b, err := h.service.ModifyBooking(c.Request.Context(), middleware.ActorFrom(c), id, stay)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewBookingView(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.CancelBooking(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewBookingView(b))
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.ApproveBooking(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewBookingView(b))
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.RejectBooking(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewBookingView(b))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.service.GetBooking(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) ListMine(c *gin.Context) {
	page, err := h.service.ListTenantBookings(c.Request.Context(), middleware.ActorFrom(c), pagination.FromQuery(c, BookingsPerPage))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) ListOwner(c *gin.Context) {
	status := domain.BookingStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown booking status")
		return
	}

	page, err := h.service.ListOwnerBookings(c.Request.Context(), middleware.ActorFrom(c), status, pagination.FromQuery(c, BookingsPerPage))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) Availability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in and check_out are required", validator.Details(err))
		return
	}
	stay, err := ParseStay(q.CheckIn, q.CheckOut, 1, "")
	if err != nil {
		response.Fail(c, err)
		return
	}

	available, err := h.service.IsAvailable(c.Request.Context(), id, stay.CheckIn, stay.CheckOut, 0)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"apartment_id": id,
		"check_in":     q.CheckIn,
		"check_out":    q.CheckOut,
		"available":    available,
	})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
