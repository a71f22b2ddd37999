package admin

import (
	"context"

	"apartmentbooking/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListByStatus(ctx context.Context, status domain.ApprovalStatus, offset, limit int) ([]domain.User, int64, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.ApprovalStatus) (bool, error)
}
