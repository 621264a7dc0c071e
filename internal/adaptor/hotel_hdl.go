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

type HotelHandler struct {
	service usecase.HotelService
	log     *zap.Logger
}

func NewHotelHandler(service usecase.HotelService, log *zap.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		log:     log.With(zap.String("handler", "hotel")),
	}
}

// CreateHotel handles POST /api/hotels (owner)
func (h *HotelHandler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRole(w, r, h.log, entity.RoleOwner, "create hotel")
	if !ok {
		return
	}

	var req request.CreateHotelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hotel, err := h.service.CreateHotel(r.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(w, err, "create hotel")
		return
	}

	utils.ResponseSuccess(w, hotel)
}

// ListHotels handles GET /api/hotels
func (h *HotelHandler) ListHotels(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.HotelFilterRequest{
		City:      query.Get("city"),
		Country:   query.Get("country"),
		MinPrice:  query.Get("minPrice"),
		MaxPrice:  query.Get("maxPrice"),
		MinRating: query.Get("minRating"),
	}

	hotels, err := h.service.ListHotels(r.Context(), identity(r), &req)
	if err != nil {
		h.handleServiceError(w, err, "list hotels")
		return
	}

	utils.ResponseSuccess(w, hotels)
}

// GetHotel handles GET /api/hotels/{hotelId}. Answers 201 on success.
func (h *HotelHandler) GetHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.service.GetHotel(r.Context(), chi.URLParam(r, "hotelId"))
	if err != nil {
		h.handleServiceError(w, err, "get hotel")
		return
	}

	utils.ResponseCreated(w, hotel)
}

// AddRoom handles POST /api/hotels/{hotelId}/rooms (owner)
func (h *HotelHandler) AddRoom(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRole(w, r, h.log, entity.RoleOwner, "add room")
	if !ok {
		return
	}

	var req request.CreateRoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.AddRoom(r.Context(), caller, chi.URLParam(r, "hotelId"), &req)
	if err != nil {
		h.handleServiceError(w, err, "add room")
		return
	}

	utils.ResponseCreated(w, room)
}

func (h *HotelHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
