package repository

import (
	"context"

	"gorm.io/gorm"

	"apartmentbooking/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateUnique inserts the review unless its booking already has one, in
// which case ErrDuplicate is returned. The check and the insert share a
// transaction and the booking_id unique index backs it up.
func (r *ReviewRepository) CreateUnique(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Review{}).Where("booking_id = ?", rv.BookingID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicate
		}
		return mapCreateErr(tx.Create(rv).Error)
	})
}

func (r *ReviewRepository) GetByBooking(ctx context.Context, bookingID int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) ListByApartment(ctx context.Context, apartmentID int64, offset, limit int) ([]domain.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Review{}).Where("apartment_id = ?", apartmentID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Review
	err := r.db.WithContext(ctx).
		Where("apartment_id = ?", apartmentID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *ReviewRepository) Summary(ctx context.Context, apartmentID int64) (domain.RatingSummary, error) {
	var s domain.RatingSummary
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("apartment_id = ?", apartmentID).
		Scan(&s).Error
	return s, err
}
