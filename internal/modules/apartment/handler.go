package apartment

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
	apartments := protected.Group("/apartments")
	{
		apartments.GET("", h.ListAll)
		apartments.GET("/search", middleware.RequireRole(domain.RoleTenant), h.Search)
		apartments.GET("/:id", h.Get)
		apartments.POST("", middleware.RequireRole(domain.RoleOwner), h.Create)
		apartments.PUT("/:id", middleware.RequireRole(domain.RoleOwner), h.Update)
	}

	protected.GET("/owner/apartments", middleware.RequireRole(domain.RoleOwner), h.ListOwned)
}

func (h *Handler) Create(c *gin.Context) {
	var req ApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	apt, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, apt)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	apt, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, apt)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) ListAll(c *gin.Context) {
	page, err := h.service.ListAll(c.Request.Context(), pagination.FromQuery(c, ListPerPage))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) ListOwned(c *gin.Context) {
	page, err := h.service.ListOwned(c.Request.Context(), middleware.ActorFrom(c), pagination.FromQuery(c, ListPerPage))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) Search(c *gin.Context) {
	var f SearchFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid search filter", validator.Details(err))
		return
	}

	page, err := h.service.Search(c.Request.Context(), middleware.ActorFrom(c), f, pagination.FromQuery(c, SearchPerPage))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid apartment ID")
		return 0, false
	}
	return id, true
}
