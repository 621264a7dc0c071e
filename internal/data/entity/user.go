package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleOwner    UserRole = "owner"
)

func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RoleOwner
}

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
}
