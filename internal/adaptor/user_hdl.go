package adaptor

import (
	"net/http"

	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context(), identity(r))
	if err != nil {
		writeServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, profile)
}
