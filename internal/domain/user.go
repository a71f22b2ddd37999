package domain

import "time"

type UserRole string

const (
	RoleTenant UserRole = "tenant"
	RoleOwner  UserRole = "owner"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleTenant || r == RoleOwner || r == RoleAdmin
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type User struct {
	ID            int64          `json:"id" gorm:"primaryKey"`
	FirstName     string         `json:"first_name" gorm:"size:100;not null"`
	LastName      string         `json:"last_name" gorm:"size:100;not null"`
	Phone         string         `json:"phone" gorm:"size:32;uniqueIndex;not null"`
	BirthDate     time.Time      `json:"birth_date"`
	PasswordHash  string         `json:"-" gorm:"not null"`
	Role          UserRole       `json:"role" gorm:"size:16;index;not null"`
	Status        ApprovalStatus `json:"status" gorm:"size:16;index;not null"`
	PersonalPhoto string         `json:"personal_photo,omitempty"`
	IDPhoto       string         `json:"id_photo,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Actor is the authenticated caller passed explicitly into every service call.
type Actor struct {
	UserID int64
	Role   UserRole
}

func (a Actor) Is(role UserRole) bool {
	return a.UserID > 0 && a.Role == role
}
