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

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (customer). Answers 201 with no data.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRole(w, r, h.log, entity.RoleCustomer, "create review")
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.CreateReview(r.Context(), caller, &req); err != nil {
		h.handleServiceError(w, err, "create review")
		return
	}

	utils.ResponseCreated(w, nil)
}

// ListHotelReviews handles GET /api/hotels/{hotelId}/reviews
func (h *ReviewHandler) ListHotelReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListHotelReviews(r.Context(), chi.URLParam(r, "hotelId"))
	if err != nil {
		h.handleServiceError(w, err, "list hotel reviews")
		return
	}

	utils.ResponseSuccess(w, reviews)
}

func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
