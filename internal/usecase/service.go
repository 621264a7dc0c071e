package usecase

import (
	"errors"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role string) (string, error)
}

type Service struct {
	Auth    AuthService
	User    UserService
	Hotel   HotelService
	Booking BookingService
	Review  ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, tokens TokenIssuer, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, tokens, log),
		User:    NewUserService(repo.User, log),
		Hotel:   NewHotelService(repo, config.Hotel.FilterMode, log),
		Booking: NewBookingService(repo, config.Booking.CapacityPolicy, log),
		Review:  NewReviewService(repo, log),
	}
}

// ==================== HELPERS ====================

// Authorize rejects anonymous callers first and then callers with the wrong
// role. An empty role admits any authenticated caller.
func Authorize(identity utils.Identity, role entity.UserRole) error {
	if !identity.Authenticated() {
		return apperror.ErrUnauthorized
	}
	if role != "" && entity.UserRole(identity.Role) != role {
		return apperror.ErrForbidden
	}
	return nil
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.ErrInvalidRequest.WithCause(errors.New(utils.FormatValidationErrors(errs)))
	}
	return nil
}

// parseID maps a malformed path id to the resource's not-found error.
func parseID(value string, notFound *apperror.Error) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, notFound.WithCause(err)
	}
	return id, nil
}

// appError passes typed errors through and wraps the rest as internal.
func appError(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}

// clock is embedded by services that stamp or compare times.
type clock struct {
	now func() time.Time
}

func newClock() clock {
	return clock{now: time.Now}
}

