package person

import "context"

type Repository interface {
	Create(ctx context.Context, req CreatePersonRequest, tipoPersona string) (*Person, error)
	GetByID(ctx context.Context, id int) (*Person, error)
	List(ctx context.Context, search, estado, tipoPersona string) ([]SocioWithMembership, error)
	GetSocioWithMembership(ctx context.Context, id int) (*SocioWithMembership, error)
	Update(ctx context.Context, id int, req UpdatePersonRequest) (*Person, error)
	HasActivity(ctx context.Context, id int) (bool, error)
	Deactivate(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	EmailExists(ctx context.Context, email string, excludeID int) (bool, error)
}
