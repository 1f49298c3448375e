package user

import "time"

// User is a login account. Socio accounts link to their person row through
// IDPersona; owner and staff accounts may have no linked person.
type User struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	RoleID       int       `db:"role_id" json:"role_id"`
	RoleName     string    `db:"role_name" json:"role_name"`
	IDPersona    *int      `db:"id_persona" json:"id_persona,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type UserResponse struct {
	User User `json:"user"`
}
