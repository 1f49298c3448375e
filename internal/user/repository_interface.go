package user

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, roleName string, idPersona *int) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	PersonaHasUser(ctx context.Context, idPersona int) (bool, error)
}
