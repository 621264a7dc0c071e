package usecase

import (
	"context"
	"strings"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
}

type authService struct {
	clock
	repo   *repository.Repository
	tokens TokenIssuer
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tokens TokenIssuer, log *zap.Logger) AuthService {
	return &authService{
		clock:  newClock(),
		repo:   repo,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Signup validation failed", zap.Error(err))
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Email must be unused
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.ErrEmailAlreadyExists
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	role := entity.RoleCustomer
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	// 4. Save user
	user := &entity.User{
		Base:         entity.NewBase(s.now()),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Role:         role,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		// lost a race with a concurrent signup
		if database.IsUniqueViolation(err, repository.UserEmailConstraint) {
			return nil, apperror.ErrEmailAlreadyExists
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperror.Internal(err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.UserToLogin(user, token)
	return &resp, nil
}
