package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"apartmentbooking/internal/database/dbtest"
	"apartmentbooking/internal/domain"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func seedApartment(t *testing.T, db *gorm.DB, ownerID int64) *domain.Apartment {
	t.Helper()
	apt := &domain.Apartment{
		OwnerID: ownerID, Province: "Almaty", City: "Almaty", Address: "Abay 1",
		Bedrooms: 2, Bathrooms: 1, MaxGuests: 4, PricePerNight: 100, IsAvailable: true,
	}
	require.NoError(t, NewApartmentRepository(db).Create(context.Background(), apt))
	return apt
}

func seedBooking(t *testing.T, db *gorm.DB, aptID, tenantID int64, in, out string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		TenantID: tenantID, ApartmentID: aptID, CheckIn: day(in), CheckOut: day(out),
		Guests: 1, TotalPrice: 100, Status: status,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.phone (2067)")))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestUserRepository_DuplicatePhone(t *testing.T) {
	db := dbtest.New(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{FirstName: "A", LastName: "B", Phone: "+7700", PasswordHash: "x", Role: domain.RoleTenant, Status: domain.ApprovalPending}
	require.NoError(t, repo.Create(ctx, u))

	dup := *u
	dup.ID = 0
	assert.ErrorIs(t, repo.Create(ctx, &dup), ErrDuplicate)
}

func TestUserRepository_TransitionStatus(t *testing.T) {
	db := dbtest.New(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{FirstName: "A", LastName: "B", Phone: "1", PasswordHash: "x", Role: domain.RoleOwner, Status: domain.ApprovalPending}
	require.NoError(t, repo.Create(ctx, u))

	ok, err := repo.TransitionStatus(ctx, u.ID, domain.ApprovalPending, domain.ApprovalApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionStatus(ctx, u.ID, domain.ApprovalPending, domain.ApprovalRejected)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, got.Status)
}

func TestApartmentRepository_ListFilter(t *testing.T) {
	db := dbtest.New(t)
	repo := NewApartmentRepository(db)
	ctx := context.Background()

	seedApartment(t, db, 1)
	cheap := &domain.Apartment{OwnerID: 2, Province: "Astana", City: "Astana", Bedrooms: 1, Bathrooms: 1, MaxGuests: 2, PricePerNight: 40, HasWifi: true, IsAvailable: true}
	hidden := &domain.Apartment{OwnerID: 2, Province: "Astana", City: "Astana", Bedrooms: 1, Bathrooms: 1, MaxGuests: 2, PricePerNight: 30, HasWifi: true, IsAvailable: false}
	require.NoError(t, repo.Create(ctx, cheap))
	require.NoError(t, repo.Create(ctx, hidden))

	maxPrice := 50.0
	wifi := true
	items, total, err := repo.List(ctx, ApartmentFilter{MaxPrice: &maxPrice, HasWifi: &wifi, OnlyAvailable: true}, 0, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, cheap.ID, items[0].ID)

	owner := int64(2)
	_, total, err = repo.List(ctx, ApartmentFilter{OwnerID: &owner}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestBookingRepository_ActiveExcludesTerminalAndSelf(t *testing.T) {
	db := dbtest.New(t)
	repo := NewBookingRepository(db)
	apt := seedApartment(t, db, 1)

	keep := seedBooking(t, db, apt.ID, 10, "2024-01-10", "2024-01-13", domain.BookingPending)
	other := seedBooking(t, db, apt.ID, 11, "2024-01-20", "2024-01-22", domain.BookingApproved)
	seedBooking(t, db, apt.ID, 12, "2024-01-10", "2024-01-13", domain.BookingCancelled)
	seedBooking(t, db, apt.ID, 12, "2024-01-10", "2024-01-13", domain.BookingRejected)

	items, err := repo.ListActiveForApartment(context.Background(), apt.ID, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.ListActiveForApartment(context.Background(), apt.ID, keep.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, other.ID, items[0].ID)
	assert.True(t, items[0].CheckIn.Equal(day("2024-01-20")))
}

func TestBookingRepository_TransitionStatusGuard(t *testing.T) {
	db := dbtest.New(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()
	apt := seedApartment(t, db, 1)
	b := seedBooking(t, db, apt.ID, 10, "2024-01-10", "2024-01-13", domain.BookingPending)

	ok, err := repo.TransitionStatus(ctx, b.ID, []domain.BookingStatus{domain.BookingPending}, domain.BookingApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionStatus(ctx, b.ID, []domain.BookingStatus{domain.BookingPending}, domain.BookingRejected)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, got.Status)
}

func TestBookingRepository_ListByOwner(t *testing.T) {
	db := dbtest.New(t)
	repo := NewBookingRepository(db)
	mine := seedApartment(t, db, 1)
	theirs := seedApartment(t, db, 2)

	seedBooking(t, db, mine.ID, 10, "2024-01-10", "2024-01-13", domain.BookingPending)
	seedBooking(t, db, mine.ID, 11, "2024-02-10", "2024-02-13", domain.BookingApproved)
	seedBooking(t, db, theirs.ID, 10, "2024-01-10", "2024-01-13", domain.BookingPending)

	items, total, err := repo.ListByOwner(context.Background(), 1, "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	items, total, err = repo.ListByOwner(context.Background(), 1, domain.BookingApproved, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, int64(11), items[0].TenantID)
}

func TestBookingRepository_CompleteFinished(t *testing.T) {
	db := dbtest.New(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()
	apt := seedApartment(t, db, 1)

	done := seedBooking(t, db, apt.ID, 10, "2024-01-10", "2024-01-13", domain.BookingApproved)
	future := seedBooking(t, db, apt.ID, 10, "2024-01-20", "2024-01-25", domain.BookingApproved)
	pending := seedBooking(t, db, apt.ID, 10, "2024-01-01", "2024-01-02", domain.BookingPending)

	n, err := repo.CompleteFinished(ctx, day("2024-01-13"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	for id, want := range map[int64]domain.BookingStatus{
		done.ID:    domain.BookingCompleted,
		future.ID:  domain.BookingApproved,
		pending.ID: domain.BookingPending,
	} {
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
	}
}

func TestBookingRepository_WithApartmentLock(t *testing.T) {
	db := dbtest.New(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()
	apt := seedApartment(t, db, 1)

	err := repo.WithApartmentLock(ctx, apt.ID, func(tx *BookingTx, locked *domain.Apartment) error {
		assert.Equal(t, apt.ID, locked.ID)
		return tx.Create(&domain.Booking{
			TenantID: 10, ApartmentID: apt.ID, CheckIn: day("2024-01-10"), CheckOut: day("2024-01-13"),
			Guests: 1, TotalPrice: 300, Status: domain.BookingPending,
		})
	})
	require.NoError(t, err)

	rollback := errors.New("rollback")
	err = repo.WithApartmentLock(ctx, apt.ID, func(tx *BookingTx, _ *domain.Apartment) error {
		require.NoError(t, tx.Create(&domain.Booking{
			TenantID: 11, ApartmentID: apt.ID, CheckIn: day("2024-02-10"), CheckOut: day("2024-02-13"),
			Guests: 1, Status: domain.BookingPending,
		}))
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	items, err := repo.ListActiveForApartment(ctx, apt.ID, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	err = repo.WithApartmentLock(ctx, 999, func(*BookingTx, *domain.Apartment) error { return nil })
	assert.True(t, IsNotFound(err))
}

func TestReviewRepository_CreateUniqueAndSummary(t *testing.T) {
	db := dbtest.New(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateUnique(ctx, &domain.Review{BookingID: 1, TenantID: 10, ApartmentID: 5, Rating: 4}))
	require.NoError(t, repo.CreateUnique(ctx, &domain.Review{BookingID: 2, TenantID: 11, ApartmentID: 5, Rating: 5}))
	assert.ErrorIs(t, repo.CreateUnique(ctx, &domain.Review{BookingID: 1, TenantID: 10, ApartmentID: 5, Rating: 1}), ErrDuplicate)
	assert.ErrorIs(t, mapCreateErr(db.Create(&domain.Review{BookingID: 2, TenantID: 11, ApartmentID: 5, Rating: 1}).Error), ErrDuplicate)

	s, err := repo.Summary(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.Count)
	assert.InDelta(t, 4.5, s.Average, 0.001)

	empty, err := repo.Summary(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Count)
	assert.Zero(t, empty.Average)
}

func TestTokenRepository_RevokeAndDeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepository(dbtest.New(t))
	now := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

	revoked, err := repo.IsRevoked(ctx, "jti-live")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, &domain.RevokedToken{TokenID: "jti-live", UserID: 1, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Revoke(ctx, &domain.RevokedToken{TokenID: "jti-live", UserID: 1, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Revoke(ctx, &domain.RevokedToken{TokenID: "jti-old", UserID: 1, ExpiresAt: now.Add(-time.Hour)}))

	revoked, err = repo.IsRevoked(ctx, "jti-live")
	require.NoError(t, err)
	assert.True(t, revoked)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	revoked, err = repo.IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)
	revoked, err = repo.IsRevoked(ctx, "jti-live")
	require.NoError(t, err)
	assert.True(t, revoked)
}
