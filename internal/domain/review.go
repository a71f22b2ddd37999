package domain

import "time"

type Review struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	BookingID   int64     `json:"booking_id" gorm:"uniqueIndex;not null"`
	TenantID    int64     `json:"tenant_id" gorm:"index;not null"`
	ApartmentID int64     `json:"apartment_id" gorm:"index;not null"`
	Rating      int       `json:"rating" gorm:"not null"`
	Comment     string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
