package membership

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, idPersona, idServicio int, tipo, fechaInicio string, fechaFin *string, creditos *int) (*Membresia, error)
	GetByID(ctx context.Context, id int) (*Membresia, error)
	List(ctx context.Context, idPersona int, estado, search string) ([]MembresiaWithDetails, error)
	GetUsableForPersona(ctx context.Context, idPersona int, fecha string) (*Membresia, error)
	ListExpiring(ctx context.Context) ([]ExpiringMembresia, error)
	Update(ctx context.Context, id int, req UpdateMembresiaRequest) (*Membresia, error)
	Cancel(ctx context.Context, id int) error
	ConsumeCredit(ctx context.Context, tx *sqlx.Tx, id int) error
	RestoreCredit(ctx context.Context, tx *sqlx.Tx, id int) error
}
