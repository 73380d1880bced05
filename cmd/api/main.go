package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/parlorhq/parlor-api/internal/config"
	authhandler "github.com/parlorhq/parlor-api/internal/handler/auth"
	bookinghandler "github.com/parlorhq/parlor-api/internal/handler/booking"
	cataloghandler "github.com/parlorhq/parlor-api/internal/handler/catalog"
	contacthandler "github.com/parlorhq/parlor-api/internal/handler/contact"
	feedbackhandler "github.com/parlorhq/parlor-api/internal/handler/feedback"
	healthhandler "github.com/parlorhq/parlor-api/internal/handler/health"
	staffhandler "github.com/parlorhq/parlor-api/internal/handler/staff"
	"github.com/parlorhq/parlor-api/internal/middleware"
	"github.com/parlorhq/parlor-api/internal/repository/postgres"
	"github.com/parlorhq/parlor-api/internal/router"
	authservice "github.com/parlorhq/parlor-api/internal/service/auth"
	bookingservice "github.com/parlorhq/parlor-api/internal/service/booking"
	catalogservice "github.com/parlorhq/parlor-api/internal/service/catalog"
	contactservice "github.com/parlorhq/parlor-api/internal/service/contact"
	feedbackservice "github.com/parlorhq/parlor-api/internal/service/feedback"
	staffservice "github.com/parlorhq/parlor-api/internal/service/staff"
	"github.com/parlorhq/parlor-api/pkg/auth"
	"github.com/parlorhq/parlor-api/pkg/logger"
	"github.com/parlorhq/parlor-api/pkg/metrics"
	"github.com/parlorhq/parlor-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	l := logger.New(&logger.Config{
		Level:      logger.ParseLevel(cfg.Logger.Level),
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Logger.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		l.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	m := metrics.New("parlor_api")
	tokens := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	hasher := security.NewBcryptHasher(cfg.Security.BCryptCost)

	authSvc := authservice.NewService(userRepo, hasher, tokens, l)
	catalogSvc := catalogservice.NewService(serviceRepo)
	staffSvc := staffservice.NewService(staffRepo, l)
	bookingSvc := bookingservice.NewService(bookingRepo, slotRepo, outboxRepo, staffRepo, catalogSvc, m, l)
	feedbackSvc := feedbackservice.NewService(feedbackRepo, bookingRepo)
	contactSvc := contactservice.NewService(contactRepo)

	// Handlers
	authH := authhandler.NewHandler(authSvc)
	bookingH := bookinghandler.NewHandler(bookingSvc)
	catalogH := cataloghandler.NewHandler(catalogSvc)
	staffH := staffhandler.NewHandler(staffSvc)
	feedbackH := feedbackhandler.NewHandler(feedbackSvc)
	contactH := contacthandler.NewHandler(contactSvc)
	healthH := healthhandler.NewHandler(db)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := router.NewRouter(
		authMiddleware,
		authH,
		bookingH,
		catalogH,
		staffH,
		feedbackH,
		contactH,
		healthH,
		l,
		m,
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			CORSConfig:       middleware.DefaultCORSConfig(),
			MetricsEnabled:   cfg.Metrics.Enabled,
			MetricsPath:      cfg.Metrics.Path,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		l.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Error(err, "forced shutdown")
	}
}
