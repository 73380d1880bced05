package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	authhandler "github.com/parlorhq/parlor-api/internal/handler/auth"
	bookinghandler "github.com/parlorhq/parlor-api/internal/handler/booking"
	cataloghandler "github.com/parlorhq/parlor-api/internal/handler/catalog"
	contacthandler "github.com/parlorhq/parlor-api/internal/handler/contact"
	feedbackhandler "github.com/parlorhq/parlor-api/internal/handler/feedback"
	healthhandler "github.com/parlorhq/parlor-api/internal/handler/health"
	staffhandler "github.com/parlorhq/parlor-api/internal/handler/staff"
	"github.com/parlorhq/parlor-api/internal/middleware"
	"github.com/parlorhq/parlor-api/internal/model"
	"github.com/parlorhq/parlor-api/pkg/logger"
	"github.com/parlorhq/parlor-api/pkg/metrics"
)

type Config struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	MetricsEnabled   bool
	MetricsPath      string
}

type Router struct {
	engine    *gin.Engine
	auth      *middleware.AuthMiddleware
	authH     *authhandler.Handler
	bookingH  *bookinghandler.Handler
	catalogH  *cataloghandler.Handler
	staffH    *staffhandler.Handler
	feedbackH *feedbackhandler.Handler
	contactH  *contacthandler.Handler
	healthH   *healthhandler.Handler
	config    Config
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authhandler.Handler,
	bookingH *bookinghandler.Handler,
	catalogH *cataloghandler.Handler,
	staffH *staffhandler.Handler,
	feedbackH *feedbackhandler.Handler,
	contactH *contacthandler.Handler,
	healthH *healthhandler.Handler,
	l *logger.Logger,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	model.RegisterValidators()
	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(l),
		middleware.Logger(l),
		middleware.Metrics(m),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return &Router{
		engine:    engine,
		auth:      auth,
		authH:     authH,
		bookingH:  bookingH,
		catalogH:  catalogH,
		staffH:    staffH,
		feedbackH: feedbackH,
		contactH:  contactH,
		healthH:   healthH,
		config:    config,
	}
}

func (r *Router) Setup() {
	if r.config.MetricsEnabled {
		r.engine.GET(r.config.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := r.engine.Group("/api/v1")

	r.healthH.RegisterRoutes(api)

	// Public surface: no token required.
	r.authH.RegisterRoutes(api)
	r.catalogH.RegisterRoutes(api)
	r.staffH.RegisterRoutes(api)
	r.bookingH.RegisterPublicRoutes(api)
	r.feedbackH.RegisterPublicRoutes(api)
	r.contactH.RegisterPublicRoutes(api)

	// Customer surface: any authenticated user.
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.authH.RegisterProtectedRoutes(protected)
	r.bookingH.RegisterRoutes(protected)
	r.feedbackH.RegisterRoutes(protected)

	// Admin surface.
	admin := api.Group("/admin")
	admin.Use(r.auth.Authenticate(), r.auth.RequireAdmin())
	r.bookingH.RegisterAdminRoutes(admin)
	r.catalogH.RegisterAdminRoutes(admin)
	r.staffH.RegisterAdminRoutes(admin)
	r.feedbackH.RegisterAdminRoutes(admin)
	r.contactH.RegisterAdminRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
