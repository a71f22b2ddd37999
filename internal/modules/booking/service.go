package booking

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/pkg/clock"
	"apartmentbooking/internal/pkg/logger"
	"apartmentbooking/internal/pkg/metrics"
	"apartmentbooking/internal/pkg/pagination"
	"apartmentbooking/internal/repository"
)

const (
	BookingsPerPage = 10

	DefaultCancellationLeadTime = 24 * time.Hour
)

var cancellableStatuses = []domain.BookingStatus{domain.BookingPending, domain.BookingApproved}

// Service is the booking engine. Every call takes the caller explicitly.
type Service struct {
	bookings   BookingRepository
	apartments ApartmentReader
	users      UserReader
	clock      clock.Clock
	leadTime   time.Duration
}

type Option func(*Service)

// WithCancellationLeadTime sets how far ahead of check-in a booking must
// still be for the tenant to cancel it.
func WithCancellationLeadTime(d time.Duration) Option {
	return func(s *Service) { s.leadTime = d }
}

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func NewService(bookings BookingRepository, apartments ApartmentReader, users UserReader, opts ...Option) *Service {
	s := &Service{
		bookings:   bookings,
		apartments: apartments,
		users:      users,
		clock:      clock.System{},
		leadTime:   DefaultCancellationLeadTime,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsAvailable reports whether no pending or approved booking of the
// apartment overlaps [checkIn, checkOut). excludeID, when positive, is
// left out of the comparison.
func (s *Service) IsAvailable(ctx context.Context, apartmentID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error) {
	if !clock.Date(checkOut).After(clock.Date(checkIn)) {
		return false, ErrInvalidDateRange
	}
	if _, err := s.apartment(ctx, apartmentID); err != nil {
		return false, err
	}
	active, err := s.bookings.ListActiveForApartment(ctx, apartmentID, excludeID)
	if err != nil {
		return false, err
	}
	return !overlapsAny(active, clock.Date(checkIn), clock.Date(checkOut)), nil
}

func (s *Service) CreateBooking(ctx context.Context, actor domain.Actor, apartmentID int64, stay Stay) (*domain.Booking, error) {
	if !actor.Is(domain.RoleTenant) {
		return nil, ErrTenantOnly
	}
	stay, err := s.validateStay(stay)
	if err != nil {
		return nil, err
	}

	var created *domain.Booking
	err = s.bookings.WithApartmentLock(ctx, apartmentID, func(tx *repository.BookingTx, apt *domain.Apartment) error {
		total, err := s.checkSlot(tx, apt, stay, 0)
		if err != nil {
			return err
		}

		created = &domain.Booking{
			TenantID:    actor.UserID,
			ApartmentID: apt.ID,
			CheckIn:     stay.CheckIn,
			CheckOut:    stay.CheckOut,
			Guests:      stay.Guests,
			TotalPrice:  total,
			Request:     stay.Request,
			Status:      domain.BookingPending,
		}
		return tx.Create(created)
	})
	if err != nil {
		return nil, mapLockErr(err)
	}

	metrics.RecordTransition("created")
	logger.FromContext(ctx).Info("booking created",
		zap.Int64("booking_id", created.ID),
		zap.Int64("apartment_id", apartmentID),
		zap.Int64("tenant_id", actor.UserID),
		zap.Float64("total_price", created.TotalPrice),
	)
	return created, nil
}

// ModifyBooking replaces the stay of a pending booking. The booking's own
// slot is ignored by the availability check and the result is pending again.
func (s *Service) ModifyBooking(ctx context.Context, actor domain.Actor, bookingID int64, stay Stay) (*domain.Booking, error) {
	if !actor.Is(domain.RoleTenant) {
		return nil, ErrTenantOnly
	}

	b, err := s.tenantBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPending {
		metrics.RecordConflict("state")
		return nil, ErrNotPending
	}

	stay, err = s.validateStay(stay)
	if err != nil {
		return nil, err
	}

	err = s.bookings.WithApartmentLock(ctx, b.ApartmentID, func(tx *repository.BookingTx, apt *domain.Apartment) error {
		total, err := s.checkSlot(tx, apt, stay, b.ID)
		if err != nil {
			return err
		}

		b.CheckIn = stay.CheckIn
		b.CheckOut = stay.CheckOut
		b.Guests = stay.Guests
		b.Request = stay.Request
		b.TotalPrice = total

		ok, err := tx.UpdatePending(b)
		if err != nil {
			return err
		}
		if !ok {
			metrics.RecordConflict("state")
			return ErrNotPending
		}
		return nil
	})
	if err != nil {
		return nil, mapLockErr(err)
	}

	metrics.RecordTransition("modified")
	logger.FromContext(ctx).Info("booking modified",
		zap.Int64("booking_id", b.ID),
		zap.Float64("total_price", b.TotalPrice),
	)
	return b, nil
}

func (s *Service) CancelBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error) {
	if !actor.Is(domain.RoleTenant) {
		return nil, ErrTenantOnly
	}

	b, err := s.tenantBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Status.IsActive() {
		metrics.RecordConflict("state")
		return nil, ErrNotCancellable
	}
	if !b.CheckIn.After(s.clock.Now().Add(s.leadTime)) {
		metrics.RecordConflict("lead_time")
		return nil, ErrCancellationTooLate
	}

	if err := s.transition(ctx, b, cancellableStatuses, domain.BookingCancelled); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) ApproveBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error) {
	return s.decide(ctx, actor, bookingID, domain.BookingApproved)
}

func (s *Service) RejectBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error) {
	return s.decide(ctx, actor, bookingID, domain.BookingRejected)
}

// decide applies an owner decision. Ownership is checked before status so a
// stranger learns nothing about the booking's state.
func (s *Service) decide(ctx context.Context, actor domain.Actor, bookingID int64, to domain.BookingStatus) (*domain.Booking, error) {
	if !actor.Is(domain.RoleOwner) {
		return nil, ErrOwnerOnly
	}

	b, err := s.booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	apt, err := s.apartment(ctx, b.ApartmentID)
	if err != nil {
		return nil, err
	}
	if apt.OwnerID != actor.UserID {
		return nil, ErrNotApartmentOwner
	}
	if b.Status != domain.BookingPending {
		metrics.RecordConflict("state")
		return nil, ErrNotPending
	}

	if err := s.transition(ctx, b, []domain.BookingStatus{domain.BookingPending}, to); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBooking is visible to the booking's tenant, the apartment owner and admins.
func (s *Service) GetBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*BookingView, error) {
	b, err := s.booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	apt, err := s.apartment(ctx, b.ApartmentID)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.Is(domain.RoleTenant) && b.TenantID == actor.UserID:
	case actor.Is(domain.RoleOwner) && apt.OwnerID == actor.UserID:
	case actor.Is(domain.RoleAdmin):
	default:
		return nil, ErrNotBookingTenant
	}

	view := NewBookingView(b)
	view.withApartment(apt)
	return &view, nil
}

func (s *Service) ListTenantBookings(ctx context.Context, actor domain.Actor, p pagination.Params) (pagination.Page[BookingView], error) {
	if !actor.Is(domain.RoleTenant) {
		return pagination.Page[BookingView]{}, ErrTenantOnly
	}
	items, total, err := s.bookings.ListByTenant(ctx, actor.UserID, p.Offset(), p.PerPage)
	if err != nil {
		return pagination.Page[BookingView]{}, err
	}
	views, err := s.views(ctx, items, false)
	if err != nil {
		return pagination.Page[BookingView]{}, err
	}
	return pagination.NewPage(views, total, p), nil
}

// ListOwnerBookings lists bookings on the owner's apartments, optionally
// narrowed to one status.
func (s *Service) ListOwnerBookings(ctx context.Context, actor domain.Actor, status domain.BookingStatus, p pagination.Params) (pagination.Page[BookingView], error) {
	if !actor.Is(domain.RoleOwner) {
		return pagination.Page[BookingView]{}, ErrOwnerOnly
	}
	items, total, err := s.bookings.ListByOwner(ctx, actor.UserID, status, p.Offset(), p.PerPage)
	if err != nil {
		return pagination.Page[BookingView]{}, err
	}
	views, err := s.views(ctx, items, true)
	if err != nil {
		return pagination.Page[BookingView]{}, err
	}
	return pagination.NewPage(views, total, p), nil
}

// CompleteFinishedStays moves approved bookings whose check-out date has
// arrived to completed.
func (s *Service) CompleteFinishedStays(ctx context.Context) (int64, error) {
	n, err := s.bookings.CompleteFinished(ctx, clock.Today(s.clock))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.BookingTransitions.WithLabelValues("completed").Add(float64(n))
		logger.FromContext(ctx).Info("stays completed", zap.Int64("count", n))
	}
	return n, nil
}

func (s *Service) validateStay(stay Stay) (Stay, error) {
	stay.CheckIn = clock.Date(stay.CheckIn)
	stay.CheckOut = clock.Date(stay.CheckOut)

	if !stay.CheckIn.After(clock.Today(s.clock)) {
		return stay, ErrCheckInNotFuture
	}
	if !stay.CheckOut.After(stay.CheckIn) {
		return stay, ErrInvalidDateRange
	}
	if stay.Guests < 1 {
		return stay, ErrInvalidGuests
	}
	return stay, nil
}

// checkSlot runs availability then capacity inside the apartment lock and
// returns the stay price.
func (s *Service) checkSlot(tx *repository.BookingTx, apt *domain.Apartment, stay Stay, excludeID int64) (float64, error) {
	active, err := tx.ActiveForApartment(apt.ID, excludeID)
	if err != nil {
		return 0, err
	}
	if overlapsAny(active, stay.CheckIn, stay.CheckOut) {
		metrics.RecordConflict("overlap")
		return 0, ErrDatesUnavailable
	}
	if stay.Guests > apt.MaxGuests {
		metrics.RecordConflict("capacity")
		return 0, ErrCapacityExceeded.Withf("apartment %d hosts at most %d guests", apt.ID, apt.MaxGuests)
	}
	return totalPrice(stay.Nights(), apt.PricePerNight), nil
}

func (s *Service) transition(ctx context.Context, b *domain.Booking, from []domain.BookingStatus, to domain.BookingStatus) error {
	ok, err := s.bookings.TransitionStatus(ctx, b.ID, from, to)
	if err != nil {
		return err
	}
	if !ok {
		metrics.RecordConflict("state")
		return ErrStatusChanged
	}

	prev := b.Status
	b.Status = to
	metrics.RecordTransition(string(to))
	logger.FromContext(ctx).Info("booking status changed",
		zap.Int64("booking_id", b.ID),
		zap.String("from", string(prev)),
		zap.String("to", string(to)),
	)
	return nil
}

func (s *Service) booking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) tenantBooking(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	b, err := s.booking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.TenantID != actor.UserID {
		return nil, ErrNotBookingTenant
	}
	return b, nil
}

func (s *Service) apartment(ctx context.Context, id int64) (*domain.Apartment, error) {
	apt, err := s.apartments.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}
	return apt, nil
}

func (s *Service) views(ctx context.Context, items []domain.Booking, withTenants bool) ([]BookingView, error) {
	aptIDs := make([]int64, 0, len(items))
	tenantIDs := make([]int64, 0, len(items))
	for i := range items {
		aptIDs = append(aptIDs, items[i].ApartmentID)
		tenantIDs = append(tenantIDs, items[i].TenantID)
	}

	apts, err := s.apartments.MapByIDs(ctx, aptIDs)
	if err != nil {
		return nil, err
	}
	var tenants map[int64]*domain.User
	if withTenants && s.users != nil {
		if tenants, err = s.users.MapByIDs(ctx, tenantIDs); err != nil {
			return nil, err
		}
	}

	views := make([]BookingView, 0, len(items))
	for i := range items {
		v := NewBookingView(&items[i])
		v.withApartment(apts[items[i].ApartmentID])
		v.withTenant(tenants[items[i].TenantID])
		views = append(views, v)
	}
	return views, nil
}

func overlapsAny(bookings []domain.Booking, checkIn, checkOut time.Time) bool {
	for i := range bookings {
		if bookings[i].Overlaps(checkIn, checkOut) {
			return true
		}
	}
	return false
}

func totalPrice(nights int, perNight float64) float64 {
	return math.Round(float64(nights)*perNight*100) / 100
}

func mapLockErr(err error) error {
	if repository.IsNotFound(err) {
		return ErrApartmentNotFound
	}
	return err
}
