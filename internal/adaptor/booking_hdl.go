package adaptor

import (
	"net/http"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (customer)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRole(w, r, h.log, entity.RoleCustomer, "create booking")
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseSuccess(w, booking)
}

// ListBookings handles GET /api/bookings?status= (customer)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListBookings(r.Context(), identity(r), r.URL.Query().Get("status"))
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, bookings)
}

// CancelBooking handles PUT /api/bookings/{bookingId}/cancel (customer)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.CancelBooking(r.Context(), identity(r), chi.URLParam(r, "bookingId"))
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, booking)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
