package wire

import (
	"net/http"

	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, auth func(http.Handler) http.Handler) {
	// ==================== PROTECTED ROUTES (customer) ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		// POST /api/reviews - Review a completed stay
		r.Post("/reviews", reviewHandler.CreateReview)
	})
}
