package review

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/pkg/logger"
	"apartmentbooking/internal/pkg/pagination"
	"apartmentbooking/internal/repository"
)

const ReviewsPerPage = 10

type Service struct {
	reviews  ReviewRepository
	bookings BookingReader
}

func NewService(reviews ReviewRepository, bookings BookingReader) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// AddReview records the tenant's review of a completed stay. A booking
// carries at most one review.
func (s *Service) AddReview(ctx context.Context, actor domain.Actor, req CreateReviewRequest) (*domain.Review, error) {
	if !actor.Is(domain.RoleTenant) {
		return nil, ErrTenantOnly
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	comment := strings.TrimSpace(req.Comment)
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.TenantID != actor.UserID {
		return nil, ErrNotBookingTenant
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrStayNotCompleted
	}

	rv := &domain.Review{
		BookingID:   b.ID,
		TenantID:    actor.UserID,
		ApartmentID: b.ApartmentID,
		Rating:      req.Rating,
		Comment:     comment,
	}
	if err := s.reviews.CreateUnique(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	logger.FromContext(ctx).Info("review added",
		zap.Int64("review_id", rv.ID),
		zap.Int64("booking_id", rv.BookingID),
		zap.Int("rating", rv.Rating),
	)
	return rv, nil
}

func (s *Service) ListForApartment(ctx context.Context, apartmentID int64, p pagination.Params) (pagination.Page[domain.Review], error) {
	items, total, err := s.reviews.ListByApartment(ctx, apartmentID, p.Offset(), p.PerPage)
	if err != nil {
		return pagination.Page[domain.Review]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

func (s *Service) Summary(ctx context.Context, apartmentID int64) (domain.RatingSummary, error) {
	return s.reviews.Summary(ctx, apartmentID)
}
