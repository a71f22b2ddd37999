package repository

import (
	"context"

	"gorm.io/gorm"

	"apartmentbooking/internal/domain"
)

type ApartmentRepository struct {
	db *gorm.DB
}

func NewApartmentRepository(db *gorm.DB) *ApartmentRepository {
	return &ApartmentRepository{db: db}
}

// ApartmentFilter narrows apartment listings. Nil fields are not applied.
type ApartmentFilter struct {
	OwnerID       *int64
	Province      string
	City          string
	MinPrice      *float64
	MaxPrice      *float64
	Bedrooms      *int
	HasWifi       *bool
	HasParking    *bool
	OnlyAvailable bool
}

func (f ApartmentFilter) apply(q *gorm.DB) *gorm.DB {
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.Province != "" {
		q = q.Where("province = ?", f.Province)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.MinPrice != nil {
		q = q.Where("price_per_night >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price_per_night <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		q = q.Where("bedrooms = ?", *f.Bedrooms)
	}
	if f.HasWifi != nil {
		q = q.Where("has_wifi = ?", *f.HasWifi)
	}
	if f.HasParking != nil {
		q = q.Where("has_parking = ?", *f.HasParking)
	}
	if f.OnlyAvailable {
		q = q.Where("is_available = ?", true)
	}
	return q
}

func (r *ApartmentRepository) Create(ctx context.Context, a *domain.Apartment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApartmentRepository) GetByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	var a domain.Apartment
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Update saves every column, including zero-valued flags.
func (r *ApartmentRepository) Update(ctx context.Context, a *domain.Apartment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApartmentRepository) List(ctx context.Context, f ApartmentFilter, offset, limit int) ([]domain.Apartment, int64, error) {
	var total int64
	if err := f.apply(r.db.WithContext(ctx).Model(&domain.Apartment{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Apartment
	err := f.apply(r.db.WithContext(ctx)).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *ApartmentRepository) MapByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Apartment, error) {
	out := make(map[int64]*domain.Apartment, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []domain.Apartment
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		out[items[i].ID] = &items[i]
	}
	return out, nil
}
