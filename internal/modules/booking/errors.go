package booking

import "apartmentbooking/internal/pkg/apperr"

var (
	ErrTenantOnly          = apperr.New(apperr.KindUnauthorized, "TENANT_ONLY", "only tenants can book apartments")
	ErrOwnerOnly           = apperr.New(apperr.KindUnauthorized, "OWNER_ONLY", "only owners can review bookings")
	ErrInvalidDateRange    = apperr.New(apperr.KindValidation, "INVALID_DATE_RANGE", "check_out must be after check_in")
	ErrCheckInNotFuture    = apperr.New(apperr.KindValidation, "CHECK_IN_NOT_FUTURE", "check_in must be after today")
	ErrInvalidGuests       = apperr.New(apperr.KindValidation, "INVALID_GUESTS", "guests must be at least 1")
	ErrInvalidDate         = apperr.New(apperr.KindValidation, "INVALID_DATE", "dates must use the YYYY-MM-DD format")
	ErrApartmentNotFound   = apperr.New(apperr.KindNotFound, "APARTMENT_NOT_FOUND", "apartment not found")
	ErrBookingNotFound     = apperr.New(apperr.KindNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrNotBookingTenant    = apperr.New(apperr.KindForbidden, "NOT_BOOKING_TENANT", "this booking belongs to another tenant")
	ErrNotApartmentOwner   = apperr.New(apperr.KindForbidden, "NOT_APARTMENT_OWNER", "you do not own the booked apartment")
	ErrDatesUnavailable    = apperr.New(apperr.KindConflict, "DATES_UNAVAILABLE", "the apartment is already booked for these dates")
	ErrCapacityExceeded    = apperr.New(apperr.KindConflict, "CAPACITY_EXCEEDED", "guests exceed the apartment capacity")
	ErrNotPending          = apperr.New(apperr.KindConflict, "BOOKING_NOT_PENDING", "only pending bookings can be changed")
	ErrNotCancellable      = apperr.New(apperr.KindConflict, "BOOKING_NOT_CANCELLABLE", "only pending or approved bookings can be cancelled")
	ErrCancellationTooLate = apperr.New(apperr.KindConflict, "CANCELLATION_TOO_LATE", "bookings can only be cancelled more than a day before check-in")
	ErrStatusChanged       = apperr.New(apperr.KindConflict, "BOOKING_STATUS_CHANGED", "the booking status changed, reload and retry")
)
