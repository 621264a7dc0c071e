package wire

import (
	"net/http"

	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireHotel(
	r chi.Router,
	hotelHandler *adaptor.HotelHandler,
	reviewHandler *adaptor.ReviewHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/hotels", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// GET /api/hotels/{hotelId} - Hotel with its rooms
		r.Get("/{hotelId}", hotelHandler.GetHotel)

		// GET /api/hotels/{hotelId}/reviews - Reviews, newest first
		r.Get("/{hotelId}/reviews", reviewHandler.ListHotelReviews)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)

			// GET /api/hotels - Search hotels that have rooms
			r.Get("/", hotelHandler.ListHotels)

			// POST /api/hotels - Register a hotel (owner)
			r.Post("/", hotelHandler.CreateHotel)

			// POST /api/hotels/{hotelId}/rooms - Add a room (hotel owner)
			r.Post("/{hotelId}/rooms", hotelHandler.AddRoom)
		})
	})
}
