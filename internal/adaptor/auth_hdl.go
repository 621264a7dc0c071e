package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "signup")
		return
	}

	utils.ResponseCreated(w, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	utils.ResponseSuccess(w, resp)
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
