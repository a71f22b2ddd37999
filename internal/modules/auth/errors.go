package auth

import "apartmentbooking/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "INVALID_CREDENTIALS", "invalid phone or password")
	ErrPhoneAlreadyExists = apperr.New(apperr.KindConflict, "PHONE_EXISTS", "this phone number is already registered")
	ErrAccountNotApproved = apperr.New(apperr.KindForbidden, "ACCOUNT_NOT_APPROVED", "account is awaiting approval or was rejected")
	ErrInvalidRole        = apperr.New(apperr.KindValidation, "INVALID_ROLE", "role must be tenant or owner")
	ErrInvalidBirthDate   = apperr.New(apperr.KindValidation, "INVALID_BIRTH_DATE", "birth_date must be a past date in YYYY-MM-DD format")
	ErrUserNotFound       = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrNoSession          = apperr.New(apperr.KindUnauthorized, "NO_SESSION", "request is not bound to a session token")
)
