package domain

import "time"

// RevokedToken blocks an access token (by jti) until it would have expired
// anyway.
type RevokedToken struct {
	TokenID   string    `json:"token_id" gorm:"primaryKey;size:64"`
	UserID    int64     `json:"user_id" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}
