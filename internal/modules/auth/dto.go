package auth

import (
	"mime/multipart"
	"time"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/pkg/blobstore"
	"apartmentbooking/internal/pkg/clock"
)

// RegisterRequest binds from JSON or multipart form fields.
type RegisterRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,max=100"`
	Phone     string `json:"phone" form:"phone" binding:"required,max=32"`
	BirthDate string `json:"birth_date" form:"birth_date" binding:"required"`
	Password  string `json:"password" form:"password" binding:"required,min=8"`
	Role      string `json:"role" form:"role" binding:"required"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"omitempty,max=100"`
	LastName  string `json:"last_name" form:"last_name" binding:"omitempty,max=100"`
	BirthDate string `json:"birth_date" form:"birth_date"`
}

// Photos holds the optional identity images of a registration or profile update.
type Photos struct {
	Personal *multipart.FileHeader
	Identity *multipart.FileHeader
}

type UserResponse struct {
	ID               int64                 `json:"id"`
	FirstName        string                `json:"first_name"`
	LastName         string                `json:"last_name"`
	Phone            string                `json:"phone"`
	BirthDate        string                `json:"birth_date"`
	Role             domain.UserRole       `json:"role"`
	Status           domain.ApprovalStatus `json:"status"`
	PersonalPhotoURL string                `json:"personal_photo_url,omitempty"`
	IDPhotoURL       string                `json:"id_photo_url,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

func NewUserResponse(u *domain.User, blobs blobstore.Store) UserResponse {
	out := UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
	if !u.BirthDate.IsZero() {
		out.BirthDate = clock.FormatDate(u.BirthDate)
	}
	if blobs != nil {
		out.PersonalPhotoURL = blobs.URL(u.PersonalPhoto)
		out.IDPhotoURL = blobs.URL(u.IDPhoto)
	}
	return out
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
