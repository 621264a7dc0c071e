package adaptor

import (
	"encoding/json"
	"net/http"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Hotel   *HotelHandler
	Booking *BookingHandler
	Review  *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Hotel:   NewHotelHandler(service.Hotel, log),
		Booking: NewBookingHandler(service.Booking, log),
		Review:  NewReviewHandler(service.Review, log),
	}
}

// decodeJSON answers INVALID_REQUEST itself and reports false when the body
// is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, apperror.ErrInvalidRequest.Code)
		return false
	}
	return true
}

// identity is the caller stored by the auth middleware, or the zero value.
func identity(r *http.Request) utils.Identity {
	id, _ := utils.GetIdentity(r.Context())
	return id
}

// requireRole answers UNAUTHORIZED or FORBIDDEN itself and reports false when
// the caller may not use the route. It runs before the body is decoded.
func requireRole(w http.ResponseWriter, r *http.Request, log *zap.Logger, role entity.UserRole, operation string) (utils.Identity, bool) {
	caller := identity(r)
	if err := usecase.Authorize(caller, role); err != nil {
		writeServiceError(w, log, err, operation)
		return caller, false
	}
	return caller, true
}

// writeServiceError maps a service failure to its envelope. Client errors are
// logged at warn, infrastructure failures at error.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr := apperror.From(err)

	if appErr.Kind == apperror.KindInfrastructure {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
	} else {
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("code", appErr.Code))
	}

	utils.ResponseError(w, appErr.HTTPStatus(), appErr.Code)
}
