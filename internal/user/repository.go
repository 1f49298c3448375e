package user

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `
	u.id, u.name, u.email, u.password_hash, u.role_id, r.nombre AS role_name, u.id_persona, u.created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash, roleName string, idPersona *int) (*User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, role_id, id_persona)
		SELECT $1, $2, $3, r.id, $5
		FROM roles r
		WHERE r.nombre = $4
		RETURNING id
	`

	var id int
	err := r.db.GetContext(ctx, &id, query, name, email, passwordHash, roleName, idPersona)
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1
	`

	var u User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
	`

	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) PersonaHasUser(ctx context.Context, idPersona int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id_persona = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, idPersona)
	if err != nil {
		return false, err
	}

	return exists, nil
}
