package wire

import (
	"net/http"

	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth func(http.Handler) http.Handler) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		// GET /api/users/me - Profile of the caller
		r.Get("/users/me", userHandler.GetProfile)
	})
}
