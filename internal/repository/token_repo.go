package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"apartmentbooking/internal/domain"
)

// TokenRepository keeps the revoked access tokens.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Revoke records the token as revoked. Revoking it twice is a no-op.
func (r *TokenRepository) Revoke(ctx context.Context, t *domain.RevokedToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_id"}}, DoNothing: true}).
		Create(t).Error
}

func (r *TokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.RevokedToken{}).Where("token_id = ?", tokenID).Count(&n).Error
	return n > 0, err
}

// DeleteExpired drops entries whose token has expired by now; such tokens
// fail validation on their own.
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now.UTC()).Delete(&domain.RevokedToken{})
	return res.RowsAffected, res.Error
}
