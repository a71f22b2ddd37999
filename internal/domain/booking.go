package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ActiveBookingStatuses hold a slot on the apartment calendar.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingApproved}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingApproved
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingRejected || s == BookingCancelled || s == BookingCompleted
}

// Booking dates are calendar dates at UTC midnight; CheckOut is exclusive.
type Booking struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	TenantID    int64         `json:"tenant_id" gorm:"index;not null"`
	ApartmentID int64         `json:"apartment_id" gorm:"index;not null"`
	CheckIn     time.Time     `json:"check_in" gorm:"not null"`
	CheckOut    time.Time     `json:"check_out" gorm:"not null"`
	Guests      int           `json:"guests" gorm:"not null"`
	TotalPrice  float64       `json:"total_price" gorm:"type:decimal(10,2)"`
	Request     string        `json:"request,omitempty" gorm:"type:text"`
	Status      BookingStatus `json:"status" gorm:"size:16;index;not null"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Overlaps reports whether [checkIn, checkOut) intersects the booking's stay.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return checkIn.Before(b.CheckOut) && checkOut.After(b.CheckIn)
}
