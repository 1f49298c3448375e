package reservation

import (
	"context"

	"gymdesk/internal/membership"
)

type Repository interface {
	Book(ctx context.Context, personaID, claseID int, fecha string, m *membership.Membresia) (*Reserva, error)
	GetByID(ctx context.Context, id int) (*Reserva, error)
	Cancel(ctx context.Context, id int) error
	MarkAttended(ctx context.Context, reservaID int) (*Asistencia, error)
	RecordWalkIn(ctx context.Context, personaID int) (*Asistencia, error)
	List(ctx context.Context, personaID int, fecha string) ([]ReservaWithDetails, error)
	ListAsistencias(ctx context.Context, personaID int, fecha string) ([]Asistencia, error)
	MarkNoShows(ctx context.Context) (int64, error)
}
