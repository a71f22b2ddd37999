package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/pkg/pagination"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByStatus(ctx context.Context, status domain.ApprovalStatus, offset, limit int) ([]domain.User, int64, error) {
	args := m.Called(ctx, status, offset, limit)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.ApprovalStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

var admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}

func TestApproveRegistration_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5, Role: domain.RoleOwner, Status: domain.ApprovalPending}, nil)
	repo.On("TransitionStatus", ctx, int64(5), domain.ApprovalPending, domain.ApprovalApproved).Return(true, nil)

	user, err := svc.ApproveRegistration(ctx, admin, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, user.Status)
	repo.AssertExpectations(t)
}

func TestRejectRegistration_AlreadyReviewed(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5, Role: domain.RoleTenant, Status: domain.ApprovalApproved}, nil)

	_, err := svc.RejectRegistration(ctx, admin, 5)
	assert.ErrorIs(t, err, ErrNotPending)
	repo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveRegistration_LostRace(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5, Role: domain.RoleTenant, Status: domain.ApprovalPending}, nil)
	repo.On("TransitionStatus", ctx, int64(5), domain.ApprovalPending, domain.ApprovalApproved).Return(false, nil)

	_, err := svc.ApproveRegistration(ctx, admin, 5)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestApproveRegistration_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("non admin", func(t *testing.T) {
		svc := NewService(new(MockUserRepository))
		_, err := svc.ApproveRegistration(ctx, domain.Actor{UserID: 2, Role: domain.RoleOwner}, 5)
		assert.ErrorIs(t, err, ErrAdminOnly)
	})

	t.Run("missing user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByID", ctx, int64(9)).Return(nil, gorm.ErrRecordNotFound)
		_, err := NewService(repo).ApproveRegistration(ctx, admin, 9)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("admin target", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Role: domain.RoleAdmin, Status: domain.ApprovalPending}, nil)
		_, err := NewService(repo).ApproveRegistration(ctx, admin, 3)
		assert.ErrorIs(t, err, ErrCannotModerateAdmin)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		boom := errors.New("db down")
		repo.On("GetByID", ctx, int64(4)).Return(nil, boom)
		_, err := NewService(repo).ApproveRegistration(ctx, admin, 4)
		assert.ErrorIs(t, err, boom)
	})
}

func TestListPendingRegistrations(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("ListByStatus", ctx, domain.ApprovalPending, 10, 10).
		Return([]domain.User{{ID: 11}, {ID: 12}}, int64(12), nil)

	page, err := svc.ListPendingRegistrations(ctx, admin, pagination.New(2, 10, RegistrationsPerPage))
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.LastPage)
	repo.AssertExpectations(t)
}
