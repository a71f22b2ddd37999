package review

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartmentbooking/internal/database/dbtest"
	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/pkg/apperr"
	"apartmentbooking/internal/pkg/pagination"
	"apartmentbooking/internal/repository"
)

var (
	tenant  = domain.Actor{UserID: 10, Role: domain.RoleTenant}
	tenant2 = domain.Actor{UserID: 11, Role: domain.RoleTenant}
	owner   = domain.Actor{UserID: 1, Role: domain.RoleOwner}
)

type fixture struct {
	svc      *Service
	reviews  *repository.ReviewRepository
	bookings map[domain.BookingStatus]*domain.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)

	f := &fixture{
		reviews:  repository.NewReviewRepository(db),
		bookings: map[domain.BookingStatus]*domain.Booking{},
	}
	f.svc = NewService(f.reviews, repository.NewBookingRepository(db))

	in := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	for i, st := range []domain.BookingStatus{domain.BookingCompleted, domain.BookingApproved, domain.BookingPending} {
		b := &domain.Booking{
			TenantID:    tenant.UserID,
			ApartmentID: 5,
			CheckIn:     in.AddDate(0, i, 0),
			CheckOut:    in.AddDate(0, i, 3),
			Guests:      1,
			TotalPrice:  300,
			Status:      st,
		}
		require.NoError(t, db.Create(b).Error)
		f.bookings[st] = b
	}
	return f
}

func (f *fixture) completed() int64 { return f.bookings[domain.BookingCompleted].ID }

func TestAddReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rv, err := f.svc.AddReview(ctx, tenant, CreateReviewRequest{BookingID: f.completed(), Rating: 4, Comment: "  quiet street  "})
	require.NoError(t, err)
	assert.NotZero(t, rv.ID)
	assert.Equal(t, int64(5), rv.ApartmentID)
	assert.Equal(t, "quiet street", rv.Comment)

	stored, err := f.reviews.GetByBooking(ctx, f.completed())
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Rating)
}

func TestAddReview_SecondReviewIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddReview(ctx, tenant, CreateReviewRequest{BookingID: f.completed(), Rating: 5})
	require.NoError(t, err)

	_, err = f.svc.AddReview(ctx, tenant, CreateReviewRequest{BookingID: f.completed(), Rating: 1})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	page, err := f.svc.ListForApartment(ctx, 5, pagination.New(1, 0, ReviewsPerPage))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestAddReview_ConcurrentDuplicatesAdmitOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 6
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.AddReview(ctx, tenant, CreateReviewRequest{BookingID: f.completed(), Rating: 3})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	}
	assert.Equal(t, 1, ok)
}

func TestAddReview_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		actor   domain.Actor
		req     CreateReviewRequest
		wantErr error
	}{
		{"owner", owner, CreateReviewRequest{BookingID: f.completed(), Rating: 4}, ErrTenantOnly},
		{"rating zero", tenant, CreateReviewRequest{BookingID: f.completed(), Rating: 0}, ErrInvalidRating},
		{"rating six", tenant, CreateReviewRequest{BookingID: f.completed(), Rating: 6}, ErrInvalidRating},
		{"long comment", tenant, CreateReviewRequest{BookingID: f.completed(), Rating: 4, Comment: strings.Repeat("a", MaxCommentLength+1)}, ErrCommentTooLong},
		{"missing booking", tenant, CreateReviewRequest{BookingID: 999, Rating: 4}, ErrBookingNotFound},
		{"other tenant", tenant2, CreateReviewRequest{BookingID: f.completed(), Rating: 4}, ErrNotBookingTenant},
		{"approved stay", tenant, CreateReviewRequest{BookingID: f.bookings[domain.BookingApproved].ID, Rating: 4}, ErrStayNotCompleted},
		{"pending stay", tenant, CreateReviewRequest{BookingID: f.bookings[domain.BookingPending].ID, Rating: 4}, ErrStayNotCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.AddReview(ctx, tc.actor, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	s, err := f.svc.Summary(ctx, 5)
	require.NoError(t, err)
	assert.Zero(t, s.Count)
}

func TestAddReview_CommentAtLimit(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddReview(context.Background(), tenant, CreateReviewRequest{
		BookingID: f.completed(),
		Rating:    2,
		Comment:   strings.Repeat("ж", MaxCommentLength),
	})
	assert.NoError(t, err)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.svc.Summary(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{}, empty)

	_, err = f.svc.AddReview(ctx, tenant, CreateReviewRequest{BookingID: f.completed(), Rating: 3})
	require.NoError(t, err)

	s, err := f.svc.Summary(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Count)
	assert.InDelta(t, 3.0, s.Average, 0.001)
}
