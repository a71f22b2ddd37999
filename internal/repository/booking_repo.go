package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"apartmentbooking/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func activeForApartment(db *gorm.DB, apartmentID, excludeID int64) ([]domain.Booking, error) {
	q := db.Where("apartment_id = ? AND status IN ?", apartmentID, statusStrings(domain.ActiveBookingStatuses))
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var items []domain.Booking
	err := q.Order("check_in ASC").Find(&items).Error
	return items, err
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// ListActiveForApartment returns pending and approved bookings of an
// apartment, skipping excludeID when it is positive.
func (r *BookingRepository) ListActiveForApartment(ctx context.Context, apartmentID, excludeID int64) ([]domain.Booking, error) {
	return activeForApartment(r.db.WithContext(ctx), apartmentID, excludeID)
}

func (r *BookingRepository) ListByTenant(ctx context.Context, tenantID int64, offset, limit int) ([]domain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Booking
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// ListByOwner returns bookings on any apartment the owner holds. An empty
// status lists every status.
func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64, status domain.BookingStatus, offset, limit int) ([]domain.Booking, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		owned := r.db.WithContext(ctx).Model(&domain.Apartment{}).Select("id").Where("owner_id = ?", ownerID)
		db = db.Where("apartment_id IN (?)", owned)
		if status != "" {
			db = db.Where("status = ?", string(status))
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Booking{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Booking
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// TransitionStatus moves a booking to `to` only while its status is one of
// `from`. It reports false when the row was not in an expected status.
func (r *BookingRepository) TransitionStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id, statusStrings(from)).
		Updates(map[string]any{"status": string(to), "updated_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CompleteFinished marks approved bookings whose check-out is on or before
// today as completed.
func (r *BookingRepository) CompleteFinished(ctx context.Context, today time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("status = ? AND check_out <= ?", string(domain.BookingApproved), today).
		Updates(map[string]any{"status": string(domain.BookingCompleted), "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

// WithApartmentLock runs fn in a transaction holding a row lock on the
// apartment, so read-check-write sequences on its calendar are serialized.
// gorm.ErrRecordNotFound is returned when the apartment does not exist.
func (r *BookingRepository) WithApartmentLock(ctx context.Context, apartmentID int64, fn func(tx *BookingTx, apt *domain.Apartment) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var apt domain.Apartment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&apt, apartmentID).Error; err != nil {
			return err
		}
		return fn(&BookingTx{db: tx}, &apt)
	})
}

// BookingTx is the booking view of an open apartment-locked transaction.
type BookingTx struct {
	db *gorm.DB
}

func (t *BookingTx) ActiveForApartment(apartmentID, excludeID int64) ([]domain.Booking, error) {
	return activeForApartment(t.db, apartmentID, excludeID)
}

func (t *BookingTx) Create(b *domain.Booking) error {
	return t.db.Create(b).Error
}

// UpdatePending overwrites the stay of a booking that is still pending and
// keeps it pending. It reports false when the booking has left pending.
func (t *BookingTx) UpdatePending(b *domain.Booking) (bool, error) {
	now := time.Now()
	res := t.db.Model(&domain.Booking{}).
		Where("id = ? AND status = ?", b.ID, string(domain.BookingPending)).
		Updates(map[string]any{
			"check_in":    b.CheckIn,
			"check_out":   b.CheckOut,
			"guests":      b.Guests,
			"total_price": b.TotalPrice,
			"request":     b.Request,
			"status":      string(domain.BookingPending),
			"updated_at":  now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected != 1 {
		return false, nil
	}
	b.Status = domain.BookingPending
	b.UpdatedAt = now
	return true, nil
}
