// Package server assembles repositories, services and handlers into the HTTP engine.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"apartmentbooking/internal/middleware"
	"apartmentbooking/internal/modules/admin"
	"apartmentbooking/internal/modules/apartment"
	"apartmentbooking/internal/modules/auth"
	"apartmentbooking/internal/modules/booking"
	"apartmentbooking/internal/modules/review"
	"apartmentbooking/internal/pkg/blobstore"
	"apartmentbooking/internal/pkg/cache"
	"apartmentbooking/internal/pkg/clock"
	"apartmentbooking/internal/pkg/jwt"
	"apartmentbooking/internal/pkg/metrics"
	"apartmentbooking/internal/pkg/response"
	"apartmentbooking/internal/repository"
)

// Deps needs DB, JWT and Blobs. ListingCache defaults to cache.Noop and the
// other fields have defaults too.
type Deps struct {
	DB                   *gorm.DB
	JWT                  *jwt.Service
	Logger               *zap.Logger
	Blobs                *blobstore.Local
	ListingCache         cache.ListingCache
	ListingCacheTTL      time.Duration
	CancellationLeadTime time.Duration
	Clock                clock.Clock
	CORSOrigins          []string
}

// Server is the wired application. Bookings and Tokens are exposed for the
// scheduled jobs.
type Server struct {
	Engine   *gin.Engine
	Bookings *booking.Service
	Tokens   *repository.TokenRepository
}

func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.ListingCache == nil {
		d.ListingCache = cache.Noop{}
	}
	if d.Clock == nil {
		d.Clock = clock.System{}
	}
	if d.CancellationLeadTime <= 0 {
		d.CancellationLeadTime = booking.DefaultCancellationLeadTime
	}

	userRepo := repository.NewUserRepository(d.DB)
	apartmentRepo := repository.NewApartmentRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)
	tokenRepo := repository.NewTokenRepository(d.DB)

	authService := auth.NewService(userRepo, d.JWT, tokenRepo, d.Blobs, d.Clock)
	adminService := admin.NewService(userRepo)
	apartmentService := apartment.NewService(apartmentRepo, reviewRepo, d.ListingCache, d.ListingCacheTTL)
	bookingService := booking.NewService(bookingRepo, apartmentRepo, userRepo,
		booking.WithClock(d.Clock),
		booking.WithCancellationLeadTime(d.CancellationLeadTime),
	)
	reviewService := review.NewService(reviewRepo, bookingRepo)

	authHandler := auth.NewHandler(authService)
	adminHandler := admin.NewHandler(adminService, d.Blobs)
	apartmentHandler := apartment.NewHandler(apartmentService)
	bookingHandler := booking.NewHandler(bookingService)
	reviewHandler := review.NewHandler(reviewService)

	r := gin.New()
	r.Use(
		middleware.RequestID(d.Logger),
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORS(d.CORSOrigins),
	)

	r.GET("/healthz", healthz(d.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.Static(blobstore.StaticURLBase, d.Blobs.BaseDir())

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(d.JWT, tokenRepo))
	{
		authHandler.RegisterProtectedRoutes(protected)
		adminHandler.RegisterRoutes(protected)
		apartmentHandler.RegisterRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
		reviewHandler.RegisterRoutes(protected)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return &Server{Engine: r, Bookings: bookingService, Tokens: tokenRepo}
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
