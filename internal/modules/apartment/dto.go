package apartment

import (
	"fmt"

	"apartmentbooking/internal/domain"
)

type ApartmentRequest struct {
	Province      string   `json:"province" binding:"required,max=100"`
	City          string   `json:"city" binding:"required,max=100"`
	Address       string   `json:"address" binding:"required,max=255"`
	Bedrooms      int      `json:"bedrooms" binding:"required,min=1"`
	Bathrooms     int      `json:"bathrooms" binding:"required,min=1"`
	MaxGuests     int      `json:"max_guests" binding:"required,min=1"`
	PricePerNight *float64 `json:"price_per_night" binding:"required,gte=0"`
	HasWifi       bool     `json:"has_wifi"`
	HasParking    bool     `json:"has_parking"`
	IsAvailable   *bool    `json:"is_available"`
}

// SearchFilter binds from the query string. Unset fields do not filter.
type SearchFilter struct {
	Province   string   `form:"province"`
	City       string   `form:"city"`
	MinPrice   *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice   *float64 `form:"max_price" binding:"omitempty,gte=0"`
	Bedrooms   *int     `form:"bedrooms" binding:"omitempty,min=1"`
	HasWifi    *bool    `form:"has_wifi"`
	HasParking *bool    `form:"has_parking"`
}

func (f SearchFilter) cacheKey(page, perPage int) string {
	return fmt.Sprintf("province=%s|city=%s|min=%s|max=%s|bedrooms=%s|wifi=%s|parking=%s|page=%d|per=%d",
		f.Province, f.City, ptr(f.MinPrice), ptr(f.MaxPrice), ptr(f.Bedrooms), ptr(f.HasWifi), ptr(f.HasParking), page, perPage)
}

func ptr[T any](v *T) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

type ApartmentDetail struct {
	domain.Apartment
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}
