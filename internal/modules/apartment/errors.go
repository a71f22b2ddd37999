package apartment

import "apartmentbooking/internal/pkg/apperr"

var (
	ErrOwnerOnly         = apperr.New(apperr.KindUnauthorized, "OWNER_ONLY", "only owners can manage apartments")
	ErrTenantOnly        = apperr.New(apperr.KindUnauthorized, "TENANT_ONLY", "only tenants can search apartments")
	ErrApartmentNotFound = apperr.New(apperr.KindNotFound, "APARTMENT_NOT_FOUND", "apartment not found")
	ErrNotApartmentOwner = apperr.New(apperr.KindForbidden, "NOT_APARTMENT_OWNER", "you do not own this apartment")
	ErrInvalidPriceRange = apperr.New(apperr.KindValidation, "INVALID_PRICE_RANGE", "min_price must not exceed max_price")
	ErrInvalidApartment  = apperr.New(apperr.KindValidation, "INVALID_APARTMENT", "apartment fields are out of range")
)
