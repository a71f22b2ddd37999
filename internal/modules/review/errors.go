package review

import "apartmentbooking/internal/pkg/apperr"

var (
	ErrTenantOnly       = apperr.New(apperr.KindUnauthorized, "TENANT_ONLY", "only tenants can leave reviews")
	ErrInvalidRating    = apperr.New(apperr.KindValidation, "INVALID_RATING", "rating must be between 1 and 5")
	ErrCommentTooLong   = apperr.New(apperr.KindValidation, "COMMENT_TOO_LONG", "comment must be at most 1000 characters")
	ErrBookingNotFound  = apperr.New(apperr.KindNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrNotBookingTenant = apperr.New(apperr.KindForbidden, "NOT_BOOKING_TENANT", "booking belongs to another tenant")
	ErrStayNotCompleted = apperr.New(apperr.KindConflict, "STAY_NOT_COMPLETED", "only completed stays can be reviewed")
	ErrAlreadyReviewed  = apperr.New(apperr.KindConflict, "ALREADY_REVIEWED", "booking already has a review")
)
