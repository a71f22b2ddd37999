package apartment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/pkg/cache"
	"apartmentbooking/internal/pkg/logger"
	"apartmentbooking/internal/pkg/metrics"
	"apartmentbooking/internal/pkg/pagination"
	"apartmentbooking/internal/repository"
)

const (
	SearchPerPage = 12
	ListPerPage   = 10
)

// Service is the listing store.
type Service struct {
	apartments ApartmentRepository
	ratings    RatingReader
	cache      cache.ListingCache
	cacheTTL   time.Duration
}

func NewService(apartments ApartmentRepository, ratings RatingReader, listingCache cache.ListingCache, cacheTTL time.Duration) *Service {
	if listingCache == nil {
		listingCache = cache.Noop{}
	}
	return &Service{
		apartments: apartments,
		ratings:    ratings,
		cache:      listingCache,
		cacheTTL:   cacheTTL,
	}
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, req ApartmentRequest) (*domain.Apartment, error) {
	if !actor.Is(domain.RoleOwner) {
		return nil, ErrOwnerOnly
	}

	apt := &domain.Apartment{OwnerID: actor.UserID, IsAvailable: true}
	if err := applyRequest(apt, req); err != nil {
		return nil, err
	}
	if err := s.apartments.Create(ctx, apt); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.FromContext(ctx).Info("apartment created", zap.Int64("apartment_id", apt.ID), zap.Int64("owner_id", apt.OwnerID))
	return apt, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req ApartmentRequest) (*domain.Apartment, error) {
	if !actor.Is(domain.RoleOwner) {
		return nil, ErrOwnerOnly
	}

	apt, err := s.GetApartment(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.OwnerID != actor.UserID {
		return nil, ErrNotApartmentOwner
	}

	if err := applyRequest(apt, req); err != nil {
		return nil, err
	}
	if err := s.apartments.Update(ctx, apt); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return apt, nil
}

// GetApartment is the listing lookup used by the booking engine.
func (s *Service) GetApartment(ctx context.Context, id int64) (*domain.Apartment, error) {
	apt, err := s.apartments.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}
	return apt, nil
}

// Get returns the apartment with its rating summary.
func (s *Service) Get(ctx context.Context, id int64) (*ApartmentDetail, error) {
	apt, err := s.GetApartment(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ApartmentDetail{Apartment: *apt}
	if s.ratings != nil {
		summary, err := s.ratings.Summary(ctx, id)
		if err != nil {
			return nil, err
		}
		detail.AverageRating = summary.Average
		detail.TotalReviews = summary.Count
	}
	return detail, nil
}

func (s *Service) ListAll(ctx context.Context, p pagination.Params) (pagination.Page[domain.Apartment], error) {
	return s.list(ctx, repository.ApartmentFilter{}, p)
}

func (s *Service) ListOwned(ctx context.Context, actor domain.Actor, p pagination.Params) (pagination.Page[domain.Apartment], error) {
	if !actor.Is(domain.RoleOwner) {
		return pagination.Page[domain.Apartment]{}, ErrOwnerOnly
	}
	owner := actor.UserID
	return s.list(ctx, repository.ApartmentFilter{OwnerID: &owner}, p)
}

// Search lists available apartments matching the filter. Pages are served
// from the listing cache when possible.
func (s *Service) Search(ctx context.Context, actor domain.Actor, f SearchFilter, p pagination.Params) (pagination.Page[domain.Apartment], error) {
	var empty pagination.Page[domain.Apartment]
	if !actor.Is(domain.RoleTenant) {
		return empty, ErrTenantOnly
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return empty, ErrInvalidPriceRange
	}
	f.Province = strings.TrimSpace(f.Province)
	f.City = strings.TrimSpace(f.City)

	log := logger.FromContext(ctx)
	key := ""
	if gen, err := s.cache.Generation(ctx); err != nil {
		log.Warn("listing cache unavailable", zap.Error(err))
	} else {
		key = cache.Key(gen, f.cacheKey(p.Page, p.PerPage))
		var cached pagination.Page[domain.Apartment]
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn("listing cache read failed", zap.Error(err))
		}
		metrics.RecordCacheLookup(found)
		if found {
			return cached, nil
		}
	}

	page, err := s.list(ctx, repository.ApartmentFilter{
		Province:      f.Province,
		City:          f.City,
		MinPrice:      f.MinPrice,
		MaxPrice:      f.MaxPrice,
		Bedrooms:      f.Bedrooms,
		HasWifi:       f.HasWifi,
		HasParking:    f.HasParking,
		OnlyAvailable: true,
	}, p)
	if err != nil {
		return empty, err
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, page, s.cacheTTL); err != nil {
			log.Warn("listing cache write failed", zap.Error(err))
		}
	}
	return page, nil
}

func (s *Service) list(ctx context.Context, f repository.ApartmentFilter, p pagination.Params) (pagination.Page[domain.Apartment], error) {
	items, total, err := s.apartments.List(ctx, f, p.Offset(), p.PerPage)
	if err != nil {
		return pagination.Page[domain.Apartment]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		logger.FromContext(ctx).Warn("listing cache invalidation failed", zap.Error(err))
	}
}

func applyRequest(apt *domain.Apartment, req ApartmentRequest) error {
	if req.Bedrooms < 1 || req.Bathrooms < 1 || req.MaxGuests < 1 || req.PricePerNight == nil || *req.PricePerNight < 0 {
		return ErrInvalidApartment
	}
	apt.Province = strings.TrimSpace(req.Province)
	apt.City = strings.TrimSpace(req.City)
	apt.Address = strings.TrimSpace(req.Address)
	apt.Bedrooms = req.Bedrooms
	apt.Bathrooms = req.Bathrooms
	apt.MaxGuests = req.MaxGuests
	apt.PricePerNight = *req.PricePerNight
	apt.HasWifi = req.HasWifi
	apt.HasParking = req.HasParking
	if req.IsAvailable != nil {
		apt.IsAvailable = *req.IsAvailable
	}
	return nil
}
