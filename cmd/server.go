package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hotel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// sweepInterval is how often idle rate limiter buckets are dropped.
const sweepInterval = time.Minute

// APIServer serves route on port until ctx is cancelled, then drains
// in-flight requests for at most shutdownTimeout.
func APIServer(
	ctx context.Context,
	route *chi.Mux,
	limiter *middleware.RateLimiter,
	port string,
	shutdownTimeout time.Duration,
	logger *zap.Logger,
) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server running", zap.String("addr", "http://localhost"+server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := limiter.Sweep(); n > 0 {
					logger.Debug("Swept idle rate limit buckets", zap.Int("count", n))
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server", zap.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
