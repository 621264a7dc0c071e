package request

type SignupRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,max=72"`
	Role     string  `json:"role,omitempty" validate:"omitempty,oneof=customer owner"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
