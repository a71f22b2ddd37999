package domain

import "time"

type Apartment struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	OwnerID       int64     `json:"owner_id" gorm:"index;not null"`
	Province      string    `json:"province" gorm:"size:100;index"`
	City          string    `json:"city" gorm:"size:100;index"`
	Address       string    `json:"address" gorm:"size:255"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	MaxGuests     int       `json:"max_guests"`
	PricePerNight float64   `json:"price_per_night" gorm:"type:decimal(10,2)"`
	HasWifi       bool      `json:"has_wifi"`
	HasParking    bool      `json:"has_parking"`
	IsAvailable   bool      `json:"is_available" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
