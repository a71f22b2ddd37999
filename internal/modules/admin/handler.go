package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/middleware"
	"apartmentbooking/internal/modules/auth"
	"apartmentbooking/internal/pkg/blobstore"
	"apartmentbooking/internal/pkg/pagination"
	"apartmentbooking/internal/pkg/response"
)

type Handler struct {
	service *Service
	blobs   blobstore.Store
}

func NewHandler(service *Service, blobs blobstore.Store) *Handler {
	return &Handler{service: service, blobs: blobs}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/admin/registrations", middleware.RequireRole(domain.RoleAdmin))
	{
		g.GET("", h.ListPending)
		g.POST("/:id/approve", h.Approve)
		g.POST("/:id/reject", h.Reject)
	}
}

func (h *Handler) ListPending(c *gin.Context) {
	page, err := h.service.ListPendingRegistrations(
		c.Request.Context(),
		middleware.ActorFrom(c),
		pagination.FromQuery(c, RegistrationsPerPage),
	)
	if err != nil {
		response.Fail(c, err)
		return
	}

	items := make([]auth.UserResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, auth.NewUserResponse(&page.Items[i], h.blobs))
	}
	response.Success(c, http.StatusOK, pagination.Page[auth.UserResponse]{
		Items:    items,
		Total:    page.Total,
		Page:     page.Page,
		PerPage:  page.PerPage,
		LastPage: page.LastPage,
	})
}

func (h *Handler) Approve(c *gin.Context) {
	userID, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.service.ApproveRegistration(c.Request.Context(), middleware.ActorFrom(c), userID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth.NewUserResponse(user, h.blobs))
}

func (h *Handler) Reject(c *gin.Context) {
	userID, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.service.RejectRegistration(c.Request.Context(), middleware.ActorFrom(c), userID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth.NewUserResponse(user, h.blobs))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return 0, false
	}
	return id, true
}
