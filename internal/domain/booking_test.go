package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestBookingOverlapsHalfOpen(t *testing.T) {
	b := &Booking{CheckIn: day("2024-01-10"), CheckOut: day("2024-01-13")}

	cases := []struct {
		name     string
		in, out  string
		overlaps bool
	}{
		{"inside", "2024-01-11", "2024-01-12", true},
		{"same", "2024-01-10", "2024-01-13", true},
		{"covers", "2024-01-09", "2024-01-14", true},
		{"straddles start", "2024-01-08", "2024-01-11", true},
		{"straddles end", "2024-01-12", "2024-01-15", true},
		{"ends at check-in", "2024-01-07", "2024-01-10", false},
		{"starts at check-out", "2024-01-13", "2024-01-15", false},
		{"far away", "2024-02-01", "2024-02-03", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, b.Overlaps(day(tc.in), day(tc.out)))
		})
	}
}

func TestBookingStatusClassification(t *testing.T) {
	assert.True(t, BookingPending.IsActive())
	assert.True(t, BookingApproved.IsActive())
	for _, s := range []BookingStatus{BookingRejected, BookingCancelled, BookingCompleted} {
		assert.True(t, s.IsTerminal(), s)
		assert.False(t, s.IsActive(), s)
	}
	assert.False(t, BookingStatus("bogus").Valid())
}

func TestActorIs(t *testing.T) {
	assert.True(t, Actor{UserID: 1, Role: RoleOwner}.Is(RoleOwner))
	assert.False(t, Actor{UserID: 1, Role: RoleTenant}.Is(RoleOwner))
	assert.False(t, Actor{Role: RoleOwner}.Is(RoleOwner))
}
