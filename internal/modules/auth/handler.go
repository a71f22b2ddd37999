package auth

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"apartmentbooking/internal/middleware"
	"apartmentbooking/internal/pkg/response"
	"apartmentbooking/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.Me)
	protected.POST("/auth/logout", h.Logout)
	protected.PUT("/profile", h.UpdateProfile)
}

// Register accepts JSON or multipart form data; photos are only read from multipart.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req, photosFrom(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, NewUserResponse(user, h.service.Blobs()))
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{
		Token: res.Token,
		User:  NewUserResponse(res.User, h.service.Blobs()),
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), middleware.ActorFrom(c).UserID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewUserResponse(user, h.service.Blobs()))
}

func (h *Handler) Logout(c *gin.Context) {
	tokenID, expiresAt := middleware.TokenFrom(c)
	if err := h.service.Logout(c.Request.Context(), middleware.ActorFrom(c), tokenID, expiresAt); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.ActorFrom(c), req, photosFrom(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewUserResponse(user, h.service.Blobs()))
}

func photosFrom(c *gin.Context) Photos {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return Photos{}
	}
	return Photos{
		Personal: formFile(c, "personal_photo"),
		Identity: formFile(c, "id_photo"),
	}
}

func formFile(c *gin.Context, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}
