package wire

import (
	"net/http"

	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, auth func(http.Handler) http.Handler) {
	// ==================== PROTECTED ROUTES (customer) ====================
	r.Route("/bookings", func(r chi.Router) {
		r.Use(auth)

		// POST /api/bookings - Book a room for a date range
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings?status= - Booking history of the caller
		r.Get("/", bookingHandler.ListBookings)

		// PUT /api/bookings/{bookingId}/cancel - Cancel a confirmed booking
		r.Put("/{bookingId}/cancel", bookingHandler.CancelBooking)
	})
}
