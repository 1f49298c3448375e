package membership

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	ErrMembresiaNotFound = errors.New("membresia not found")
	ErrNoCredits         = errors.New("membresia has no remaining credits")
)

// estadoCase derives the displayed estado. cancelada is persisted and
// sticks; the rest is a function of dates and credits at read time.
const estadoCase = `
	CASE
		WHEN m.estado = 'cancelada' THEN 'cancelada'
		WHEN m.tipo = 'fecha' AND m.fecha_fin < CURRENT_DATE THEN 'vencida'
		WHEN m.tipo = 'creditos' AND m.creditos_restantes <= 0 THEN 'vencida'
		WHEN m.tipo = 'fecha' AND m.fecha_fin <= CURRENT_DATE + 7 THEN 'por_vencer'
		WHEN m.tipo = 'creditos' AND m.creditos_restantes <= 3 THEN 'por_vencer'
		ELSE 'activa'
	END`

const membresiaColumns = `
	m.id, m.id_persona, m.id_servicio, m.tipo,
	to_char(m.fecha_inicio, 'YYYY-MM-DD') AS fecha_inicio,
	to_char(m.fecha_fin, 'YYYY-MM-DD') AS fecha_fin,
	m.creditos_totales, m.creditos_restantes,
	` + estadoCase + ` AS estado,
	m.created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a membership derived from the plan: fecha plans get
// fecha_fin = inicio + duracion_dias, credit plans get the plan's credits.
// Any previous active membership of the person is cancelled first.
func (r *repository) Create(ctx context.Context, idPersona, idServicio int, tipo, fechaInicio string, fechaFin *string, creditos *int) (*Membresia, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE membresias SET estado = 'cancelada'
		WHERE id_persona = $1 AND estado <> 'cancelada'
	`, idPersona)
	if err != nil {
		return nil, err
	}

	var id int
	err = tx.GetContext(ctx, &id, `
		INSERT INTO membresias (id_persona, id_servicio, tipo, fecha_inicio, fecha_fin, creditos_totales, creditos_restantes, estado)
		VALUES ($1, $2, $3, $4::date, $5::date, $6, $6, 'activa')
		RETURNING id
	`, idPersona, idServicio, tipo, fechaInicio, fechaFin, creditos)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *repository) GetByID(ctx context.Context, id int) (*Membresia, error) {
	query := `SELECT` + membresiaColumns + ` FROM membresias m WHERE m.id = $1`

	var m Membresia
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) List(ctx context.Context, idPersona int, estado, search string) ([]MembresiaWithDetails, error) {
	query := `
		SELECT` + membresiaColumns + `,
			p.nombre AS socio_nombre,
			s.nombre AS plan_nombre,
			s.precio AS plan_precio
		FROM membresias m
		JOIN personas p ON p.id = m.id_persona
		JOIN servicios s ON s.id = m.id_servicio
	`

	var conditions []string
	var args []interface{}

	if idPersona > 0 {
		args = append(args, idPersona)
		conditions = append(conditions, fmt.Sprintf("m.id_persona = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("p.nombre ILIKE $%d", len(args)))
	}
	if estado != "" {
		args = append(args, estado)
		conditions = append(conditions, fmt.Sprintf("(%s) = $%d", strings.TrimSpace(estadoCase), len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY m.created_at DESC"

	var membresias []MembresiaWithDetails
	err := r.db.SelectContext(ctx, &membresias, query, args...)
	if err != nil {
		return nil, err
	}

	return membresias, nil
}

// GetUsableForPersona returns the membership a new reservation should
// consume: the latest non-cancelled one whose validity covers fecha,
// so a membership expiring tomorrow cannot book next week.
func (r *repository) GetUsableForPersona(ctx context.Context, idPersona int, fecha string) (*Membresia, error) {
	query := `
		SELECT` + membresiaColumns + `
		FROM membresias m
		WHERE m.id_persona = $1
		  AND m.estado <> 'cancelada'
		  AND (m.tipo <> 'fecha' OR m.fecha_fin >= $2::date)
		  AND (m.tipo <> 'creditos' OR m.creditos_restantes > 0)
		ORDER BY m.created_at DESC
		LIMIT 1
	`

	var m Membresia
	err := r.db.GetContext(ctx, &m, query, idPersona, fecha)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// ListExpiring returns fecha memberships that enter the reminder window
// today. Matching on the exact day keeps a daily sweep from mailing the
// same socio twice.
func (r *repository) ListExpiring(ctx context.Context) ([]ExpiringMembresia, error) {
	var rows []ExpiringMembresia
	err := r.db.SelectContext(ctx, &rows, `
		SELECT m.id, m.id_persona,
			s.nombre AS servicio_nombre,
			to_char(m.fecha_fin, 'YYYY-MM-DD') AS fecha_fin
		FROM membresias m
		JOIN servicios s ON s.id = m.id_servicio
		WHERE m.tipo = 'fecha'
		  AND m.estado <> 'cancelada'
		  AND m.fecha_fin = CURRENT_DATE + 7
	`)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateMembresiaRequest) (*Membresia, error) {
	query := `
		UPDATE membresias SET
			fecha_fin = COALESCE($2::date, fecha_fin),
			creditos_restantes = COALESCE($3, creditos_restantes),
			estado = COALESCE($4, estado)
		WHERE id = $1
		RETURNING id
	`

	var updated int
	err := r.db.GetContext(ctx, &updated, query, id, req.FechaFin, req.CreditosRestantes, req.Estado)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, updated)
}

// Cancel marks the membership cancelada. The row is kept because
// reservations reference it.
func (r *repository) Cancel(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE membresias SET estado = 'cancelada'
		WHERE id = $1 AND estado <> 'cancelada'
	`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMembresiaNotFound
	}

	return nil
}

// ConsumeCredit decrements one credit inside the caller's transaction.
// The WHERE guard keeps the balance from ever going negative; zero rows
// affected means the credits ran out under a concurrent booking.
func (r *repository) ConsumeCredit(ctx context.Context, tx *sqlx.Tx, id int) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE membresias
		SET creditos_restantes = creditos_restantes - 1
		WHERE id = $1 AND tipo = 'creditos' AND creditos_restantes > 0
	`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNoCredits
	}

	return nil
}

// RestoreCredit gives one credit back on cancellation, capped at the
// original total.
func (r *repository) RestoreCredit(ctx context.Context, tx *sqlx.Tx, id int) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE membresias
		SET creditos_restantes = LEAST(creditos_restantes + 1, creditos_totales)
		WHERE id = $1 AND tipo = 'creditos'
	`, id)
	return err
}
