package review

import (
	"context"

	"apartmentbooking/internal/domain"
)

type ReviewRepository interface {
	CreateUnique(ctx context.Context, rv *domain.Review) error
	ListByApartment(ctx context.Context, apartmentID int64, offset, limit int) ([]domain.Review, int64, error)
	Summary(ctx context.Context, apartmentID int64) (domain.RatingSummary, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
