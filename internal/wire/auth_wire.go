package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/auth", func(r chi.Router) {
		// POST /api/auth/signup - Create a customer or owner account
		r.Post("/signup", authHandler.Signup)

		// POST /api/auth/login - Exchange credentials for a bearer token
		r.Post("/login", authHandler.Login)
	})
}
