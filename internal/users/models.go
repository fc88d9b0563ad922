package users

type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Password string  `json:"-"`
	Role     string  `json:"role"`
	Name     string  `json:"name"`
	Address  *string `json:"address"`
}

const (
	RoleUser   = "user"
	RoleSeller = "seller"
)
