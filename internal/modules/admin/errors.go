package admin

import "apartmentbooking/internal/pkg/apperr"

var (
	ErrAdminOnly           = apperr.New(apperr.KindUnauthorized, "ADMIN_ONLY", "only admins can review registrations")
	ErrUserNotFound        = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrNotPending          = apperr.New(apperr.KindConflict, "REGISTRATION_NOT_PENDING", "registration has already been reviewed")
	ErrCannotModerateAdmin = apperr.New(apperr.KindConflict, "CANNOT_MODERATE_ADMIN", "admin accounts are not moderated")
)
