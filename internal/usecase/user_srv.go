package usecase

import (
	"context"

	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, identity utils.Identity) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, identity utils.Identity) (*response.UserResponse, error) {
	if err := Authorize(identity, ""); err != nil {
		return nil, err
	}

	user, err := us.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		us.log.Warn("Token for missing user", zap.String("user_id", identity.UserID.String()))
		return nil, apperror.ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
