package response

import "hotel-booking/internal/data/entity"

type UserResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Role  string  `json:"role"`
	Phone *string `json:"phone"`
}

type LoginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
		Phone: user.Phone,
	}
}

func UserToLogin(user *entity.User, token string) LoginResponse {
	return LoginResponse{
		Token: token,
		User: LoginUser{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	}
}
