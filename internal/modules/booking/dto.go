package booking

import (
	"strings"
	"time"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/pkg/clock"
)

type CreateBookingRequest struct {
	ApartmentID int64  `json:"apartment_id" binding:"required,min=1"`
	CheckIn     string `json:"check_in" binding:"required"`
	CheckOut    string `json:"check_out" binding:"required"`
	Guests      int    `json:"guests" binding:"required,min=1"`
	Request     string `json:"request" binding:"max=1000"`
}

type ModifyBookingRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests" binding:"required,min=1"`
	Request  string `json:"request" binding:"max=1000"`
}

type AvailabilityQuery struct {
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
}

// Stay is a requested date range and party size.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Request  string
}

func ParseStay(checkIn, checkOut string, guests int, request string) (Stay, error) {
	in, err := clock.ParseDate(strings.TrimSpace(checkIn))
	if err != nil {
		return Stay{}, ErrInvalidDate
	}
	out, err := clock.ParseDate(strings.TrimSpace(checkOut))
	if err != nil {
		return Stay{}, ErrInvalidDate
	}
	return Stay{CheckIn: in, CheckOut: out, Guests: guests, Request: strings.TrimSpace(request)}, nil
}

func (s Stay) Nights() int {
	return clock.DaysBetween(s.CheckIn, s.CheckOut)
}

type ApartmentSummary struct {
	ID       int64  `json:"id"`
	OwnerID  int64  `json:"owner_id"`
	Province string `json:"province"`
	City     string `json:"city"`
	Address  string `json:"address"`
}

type TenantSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type BookingView struct {
	ID          int64                `json:"id"`
	TenantID    int64                `json:"tenant_id"`
	ApartmentID int64                `json:"apartment_id"`
	CheckIn     string               `json:"check_in"`
	CheckOut    string               `json:"check_out"`
	Nights      int                  `json:"nights"`
	Guests      int                  `json:"guests"`
	TotalPrice  float64              `json:"total_price"`
	Request     string               `json:"request,omitempty"`
	Status      domain.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Apartment   *ApartmentSummary    `json:"apartment,omitempty"`
	Tenant      *TenantSummary       `json:"tenant,omitempty"`
}

func NewBookingView(b *domain.Booking) BookingView {
	return BookingView{
		ID:          b.ID,
		TenantID:    b.TenantID,
		ApartmentID: b.ApartmentID,
		CheckIn:     clock.FormatDate(b.CheckIn),
		CheckOut:    clock.FormatDate(b.CheckOut),
		Nights:      clock.DaysBetween(b.CheckIn, b.CheckOut),
		Guests:      b.Guests,
		TotalPrice:  b.TotalPrice,
		Request:     b.Request,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (v *BookingView) withApartment(a *domain.Apartment) {
	if a == nil {
		return
	}
	v.Apartment = &ApartmentSummary{ID: a.ID, OwnerID: a.OwnerID, Province: a.Province, City: a.City, Address: a.Address}
}

func (v *BookingView) withTenant(u *domain.User) {
	if u == nil {
		return
	}
	v.Tenant = &TenantSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Phone: u.Phone}
}
