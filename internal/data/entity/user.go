package entity

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// ReservedUsername is the path segment used for self-service profile access.
// No account may ever be created with it.
const ReservedUsername = "me"

type User struct {
	Base
	Username    string   `db:"username"`
	Email       string   `db:"email"`
	Role        UserRole `db:"role"`
	Bio         string   `db:"bio"`
	FirstName   string   `db:"first_name"`
	LastName    string   `db:"last_name"`
	CodeHash    string   `db:"confirmation_code_hash"`
	IsSuperuser bool     `db:"is_superuser"`
}
