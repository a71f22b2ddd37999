package apartment

import (
	"context"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/repository"
)

type ApartmentRepository interface {
	Create(ctx context.Context, a *domain.Apartment) error
	GetByID(ctx context.Context, id int64) (*domain.Apartment, error)
	Update(ctx context.Context, a *domain.Apartment) error
	List(ctx context.Context, f repository.ApartmentFilter, offset, limit int) ([]domain.Apartment, int64, error)
}

// RatingReader supplies review aggregates for apartment detail pages.
type RatingReader interface {
	Summary(ctx context.Context, apartmentID int64) (domain.RatingSummary, error)
}
