// internal/wire/wire.go
package wire

import (
	"net/http"

	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/metrics"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Tokens signs tokens at login and verifies them on protected routes.
type Tokens interface {
	usecase.TokenIssuer
	middleware.TokenVerifier
}

// App holds the assembled HTTP surface.
type App struct {
	Router  *chi.Mux
	Limiter *middleware.RateLimiter
}

// Wiring builds services, handlers and routes over the given repositories.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	tokens Tokens,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, tokens, logger)
	handler := adaptor.NewHandler(service, logger)
	limiter := middleware.NewRateLimiter(config.RateLimit.Requests, config.RateLimit.Window, logger)

	router := setupRouter(handler, tokens, limiter, registry, logger)

	return &App{
		Router:  router,
		Limiter: limiter,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	tokens middleware.TokenVerifier,
	limiter *middleware.RateLimiter,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseCreated(w, "Server is running fine")
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Handler)

		auth := middleware.Auth(tokens, logger)

		wireAuth(r, handler.Auth)
		wireUser(r, handler.User, auth)
		wireHotel(r, handler.Hotel, handler.Review, auth)
		wireBooking(r, handler.Booking, auth)
		wireReview(r, handler.Review, auth)
	})

	return r
}
