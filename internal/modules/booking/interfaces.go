package booking

import (
	"context"
	"time"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/repository"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListActiveForApartment(ctx context.Context, apartmentID, excludeID int64) ([]domain.Booking, error)
	ListByTenant(ctx context.Context, tenantID int64, offset, limit int) ([]domain.Booking, int64, error)
	ListByOwner(ctx context.Context, ownerID int64, status domain.BookingStatus, offset, limit int) ([]domain.Booking, int64, error)
	TransitionStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) (bool, error)
	CompleteFinished(ctx context.Context, today time.Time) (int64, error)
	WithApartmentLock(ctx context.Context, apartmentID int64, fn func(tx *repository.BookingTx, apt *domain.Apartment) error) error
}

// ApartmentReader is the listing store lookup the engine relies on.
type ApartmentReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Apartment, error)
	MapByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Apartment, error)
}

type UserReader interface {
	MapByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error)
}
