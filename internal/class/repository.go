package class

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrClaseNotFound = errors.New("clase not found")

const claseColumns = `
	c.id, c.nombre, c.id_coach, c.dias_semana, c.hora_inicio, c.hora_fin,
	c.duracion_minutos, c.cupo_maximo, c.estado,
	p.nombre AS coach_nombre, c.created_at`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req CreateClaseRequest) (*Clase, error) {
	var id int
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO clases (nombre, id_coach, dias_semana, hora_inicio, hora_fin, duracion_minutos, cupo_maximo, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'activa')
		RETURNING id
	`, req.Nombre, req.IDCoach, req.DiasSemana, req.HoraInicio, req.HoraFin, req.DuracionMinutos, req.CupoMaximo)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Clase, error) {
	query := `
		SELECT` + claseColumns + `
		FROM clases c
		JOIN personas p ON p.id = c.id_coach
		WHERE c.id = $1
	`

	var clase Clase
	err := r.db.GetContext(ctx, &clase, query, id)
	if err != nil {
		return nil, err
	}

	return &clase, nil
}

func (r *Repository) List(ctx context.Context) ([]Clase, error) {
	query := `
		SELECT` + claseColumns + `
		FROM clases c
		JOIN personas p ON p.id = c.id_coach
		ORDER BY c.hora_inicio ASC, c.nombre ASC
	`

	var clases []Clase
	err := r.db.SelectContext(ctx, &clases, query)
	if err != nil {
		return nil, err
	}

	return clases, nil
}

func (r *Repository) ListActive(ctx context.Context) ([]Clase, error) {
	query := `
		SELECT` + claseColumns + `
		FROM clases c
		JOIN personas p ON p.id = c.id_coach
		WHERE c.estado = 'activa'
		ORDER BY c.hora_inicio ASC, c.nombre ASC
	`

	var clases []Clase
	err := r.db.SelectContext(ctx, &clases, query)
	if err != nil {
		return nil, err
	}

	return clases, nil
}

func (r *Repository) Update(ctx context.Context, id int, req UpdateClaseRequest) (*Clase, error) {
	var updated int
	err := r.db.GetContext(ctx, &updated, `
		UPDATE clases SET
			nombre = COALESCE($2, nombre),
			id_coach = COALESCE($3, id_coach),
			dias_semana = COALESCE($4, dias_semana),
			hora_inicio = COALESCE($5, hora_inicio),
			hora_fin = COALESCE($6, hora_fin),
			duracion_minutos = COALESCE($7, duracion_minutos),
			cupo_maximo = COALESCE($8, cupo_maximo),
			estado = COALESCE($9, estado)
		WHERE id = $1
		RETURNING id
	`, id, req.Nombre, req.IDCoach, req.DiasSemana, req.HoraInicio, req.HoraFin,
		req.DuracionMinutos, req.CupoMaximo, req.Estado)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, updated)
}

// Delete removes a clase without reservations; clases with history are
// cancelled so past slot listings stay resolvable.
func (r *Repository) Delete(ctx context.Context, id int) error {
	var hasReservas bool
	err := r.db.GetContext(ctx, &hasReservas,
		`SELECT EXISTS(SELECT 1 FROM reservas WHERE id_clase_gym = $1)`, id)
	if err != nil {
		return err
	}

	if hasReservas {
		result, err := r.db.ExecContext(ctx,
			`UPDATE clases SET estado = 'cancelada' WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return checkAffected(result)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM clases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

// slotOccupancy is the per-(clase, fecha) aggregate the slot derivation
// joins onto the expanded calendar.
type slotOccupancy struct {
	ClaseID   int     `db:"id_clase_gym"`
	Fecha     string  `db:"fecha"`
	Inscritos int     `db:"inscritos"`
	Alumnos   *string `db:"alumnos"`
}

func (r *Repository) occupancy(ctx context.Context, startDate, endDate string) (map[string]slotOccupancy, error) {
	query := `
		SELECT
			r.id_clase_gym,
			to_char(r.fecha_reserva, 'YYYY-MM-DD') AS fecha,
			COUNT(*) AS inscritos,
			string_agg(p.nombre, '|' ORDER BY p.nombre) AS alumnos
		FROM reservas r
		JOIN personas p ON p.id = r.id_persona
		WHERE r.fecha_reserva BETWEEN $1::date AND $2::date
		  AND r.estado IN ('reservada', 'asistio')
		GROUP BY r.id_clase_gym, r.fecha_reserva
	`

	var rows []slotOccupancy
	err := r.db.SelectContext(ctx, &rows, query, startDate, endDate)
	if err != nil {
		return nil, err
	}

	result := make(map[string]slotOccupancy, len(rows))
	for _, row := range rows {
		result[slotKey(row.ClaseID, row.Fecha)] = row
	}

	return result, nil
}

// ownReservation is the requesting person's active reservation per slot.
type ownReservation struct {
	ClaseID   int    `db:"id_clase_gym"`
	Fecha     string `db:"fecha"`
	ReservaID int    `db:"reserva_id"`
}

func (r *Repository) ownReservations(ctx context.Context, personaID int, startDate, endDate string) (map[string]int, error) {
	query := `
		SELECT
			id_clase_gym,
			to_char(fecha_reserva, 'YYYY-MM-DD') AS fecha,
			id AS reserva_id
		FROM reservas
		WHERE id_persona = $1
		  AND fecha_reserva BETWEEN $2::date AND $3::date
		  AND estado IN ('reservada', 'asistio')
	`

	var rows []ownReservation
	err := r.db.SelectContext(ctx, &rows, query, personaID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[slotKey(row.ClaseID, row.Fecha)] = row.ReservaID
	}

	return result, nil
}

func checkAffected(result interface{ RowsAffected() (int64, error) }) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrClaseNotFound
	}
	return nil
}
