package review

import (
	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/pkg/pagination"
)

const MaxCommentLength = 1000

type CreateReviewRequest struct {
	BookingID int64  `json:"booking_id" binding:"required,min=1"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

type ApartmentReviews struct {
	Summary domain.RatingSummary           `json:"summary"`
	Reviews pagination.Page[domain.Review] `json:"reviews"`
}
