package admin

import (
	"context"

	"go.uber.org/zap"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/pkg/logger"
	"apartmentbooking/internal/pkg/pagination"
	"apartmentbooking/internal/repository"
)

const RegistrationsPerPage = 10

// Service is the admin approval queue for new accounts.
type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) ListPendingRegistrations(ctx context.Context, actor domain.Actor, p pagination.Params) (pagination.Page[domain.User], error) {
	if !actor.Is(domain.RoleAdmin) {
		return pagination.Page[domain.User]{}, ErrAdminOnly
	}
	users, total, err := s.users.ListByStatus(ctx, domain.ApprovalPending, p.Offset(), p.PerPage)
	if err != nil {
		return pagination.Page[domain.User]{}, err
	}
	return pagination.NewPage(users, total, p), nil
}

func (s *Service) ApproveRegistration(ctx context.Context, actor domain.Actor, userID int64) (*domain.User, error) {
	return s.decide(ctx, actor, userID, domain.ApprovalApproved)
}

func (s *Service) RejectRegistration(ctx context.Context, actor domain.Actor, userID int64) (*domain.User, error) {
	return s.decide(ctx, actor, userID, domain.ApprovalRejected)
}

func (s *Service) decide(ctx context.Context, actor domain.Actor, userID int64, to domain.ApprovalStatus) (*domain.User, error) {
	if !actor.Is(domain.RoleAdmin) {
		return nil, ErrAdminOnly
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role == domain.RoleAdmin {
		return nil, ErrCannotModerateAdmin
	}
	if user.Status != domain.ApprovalPending {
		return nil, ErrNotPending
	}

	ok, err := s.users.TransitionStatus(ctx, userID, domain.ApprovalPending, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotPending
	}

	user.Status = to
	logger.FromContext(ctx).Info("registration reviewed",
		zap.Int64("user_id", userID),
		zap.Int64("admin_id", actor.UserID),
		zap.String("status", string(to)),
	)
	return user, nil
}
