package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gymdesk/internal/membership"

	"github.com/jmoiron/sqlx"
)

var (
	ErrReservaNotFound   = errors.New("reserva not found")
	ErrAlreadyFinalized  = errors.New("reserva already cancelled or attended")
	ErrClaseFull         = errors.New("clase has no remaining capacity")
	ErrDuplicateReserva  = errors.New("persona already has a reserva for this slot")
	ErrReservaNotPending = errors.New("reserva is not in reservada state")
)

type repository struct {
	db             *sqlx.DB
	membershipRepo membership.Repository
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{
		db:             db,
		membershipRepo: membership.NewRepository(db),
	}
}

// Book creates the reservation atomically. The class row is locked FOR
// UPDATE so the capacity count and the insert happen under one arbiter:
// two actors racing for the last seat serialize here and exactly one wins.
func (r *repository) Book(ctx context.Context, personaID, claseID int, fecha string, m *membership.Membresia) (*Reserva, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var cupoMaximo int
	err = tx.GetContext(ctx, &cupoMaximo,
		`SELECT cupo_maximo FROM clases WHERE id = $1 FOR UPDATE`, claseID)
	if err != nil {
		return nil, err
	}

	var inscritos int
	err = tx.GetContext(ctx, &inscritos, `
		SELECT COUNT(*) FROM reservas
		WHERE id_clase_gym = $1 AND fecha_reserva = $2::date
		  AND estado IN ('reservada', 'asistio')
	`, claseID, fecha)
	if err != nil {
		return nil, err
	}
	if inscritos >= cupoMaximo {
		return nil, ErrClaseFull
	}

	var duplicate bool
	err = tx.GetContext(ctx, &duplicate, `
		SELECT EXISTS(
			SELECT 1 FROM reservas
			WHERE id_persona = $1 AND id_clase_gym = $2 AND fecha_reserva = $3::date
			  AND estado IN ('reservada', 'asistio')
		)
	`, personaID, claseID, fecha)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, ErrDuplicateReserva
	}

	if m.Tipo == membership.TipoCreditos {
		if err := r.membershipRepo.ConsumeCredit(ctx, tx, m.ID); err != nil {
			return nil, err
		}
	}

	var reserva Reserva
	err = tx.GetContext(ctx, &reserva, `
		INSERT INTO reservas (id_persona, id_clase_gym, fecha_reserva, id_membresia, estado)
		VALUES ($1, $2, $3::date, $4, 'reservada')
		RETURNING id, id_persona, id_clase_gym,
			to_char(fecha_reserva, 'YYYY-MM-DD') AS fecha_reserva,
			id_membresia, estado, created_at
	`, personaID, claseID, fecha, m.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &reserva, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Reserva, error) {
	var reserva Reserva
	err := r.db.GetContext(ctx, &reserva, `
		SELECT id, id_persona, id_clase_gym,
			to_char(fecha_reserva, 'YYYY-MM-DD') AS fecha_reserva,
			id_membresia, estado, created_at
		FROM reservas
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservaNotFound
		}
		return nil, err
	}

	return &reserva, nil
}

// Cancel releases the seat and, for credit memberships, restores one
// credit. The estado guard makes a duplicate cancel a no-op error rather
// than a second refund.
func (r *repository) Cancel(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var idMembresia int
	err = tx.GetContext(ctx, &idMembresia, `
		UPDATE reservas SET estado = 'cancelada'
		WHERE id = $1 AND estado = 'reservada'
		RETURNING id_membresia
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAlreadyFinalized
		}
		return err
	}

	if err := r.membershipRepo.RestoreCredit(ctx, tx, idMembresia); err != nil {
		return err
	}

	return tx.Commit()
}

// MarkAttended transitions reservada -> asistio and records the
// asistencia row in the same transaction.
func (r *repository) MarkAttended(ctx context.Context, reservaID int) (*Asistencia, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var reserva Reserva
	err = tx.GetContext(ctx, &reserva, `
		UPDATE reservas SET estado = 'asistio'
		WHERE id = $1 AND estado = 'reservada'
		RETURNING id, id_persona, id_clase_gym,
			to_char(fecha_reserva, 'YYYY-MM-DD') AS fecha_reserva,
			id_membresia, estado, created_at
	`, reservaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservaNotPending
		}
		return nil, err
	}

	var asistencia Asistencia
	err = tx.GetContext(ctx, &asistencia, `
		INSERT INTO asistencias (id_persona, id_clase_gym, id_reserva, fecha, hora_entrada, tipo)
		VALUES ($1, $2, $3, $4::date, $5, 'clase')
		RETURNING id, id_persona, id_clase_gym, id_reserva,
			to_char(fecha, 'YYYY-MM-DD') AS fecha,
			hora_entrada, hora_salida, tipo, '' AS socio_nombre, NULL AS clase_nombre
	`, reserva.IDPersona, reserva.IDClaseGym, reserva.ID, reserva.FechaReserva,
		time.Now().Format("15:04"))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &asistencia, nil
}

// RecordWalkIn registers a free (non-class) attendance for reception
// walk-ins.
func (r *repository) RecordWalkIn(ctx context.Context, personaID int) (*Asistencia, error) {
	var asistencia Asistencia
	err := r.db.GetContext(ctx, &asistencia, `
		INSERT INTO asistencias (id_persona, fecha, hora_entrada, tipo)
		VALUES ($1, CURRENT_DATE, $2, 'libre')
		RETURNING id, id_persona, id_clase_gym, id_reserva,
			to_char(fecha, 'YYYY-MM-DD') AS fecha,
			hora_entrada, hora_salida, tipo, '' AS socio_nombre, NULL AS clase_nombre
	`, personaID, time.Now().Format("15:04"))
	if err != nil {
		return nil, err
	}

	return &asistencia, nil
}

func (r *repository) List(ctx context.Context, personaID int, fecha string) ([]ReservaWithDetails, error) {
	query := `
		SELECT
			r.id, r.id_persona, r.id_clase_gym,
			to_char(r.fecha_reserva, 'YYYY-MM-DD') AS fecha_reserva,
			r.id_membresia, r.estado, r.created_at,
			c.nombre AS clase_nombre,
			c.hora_inicio AS clase_hora_inicio,
			p.nombre AS persona_nombre
		FROM reservas r
		JOIN clases c ON c.id = r.id_clase_gym
		JOIN personas p ON p.id = r.id_persona
	`

	var conditions []string
	var args []interface{}

	if personaID > 0 {
		args = append(args, personaID)
		conditions = append(conditions, fmt.Sprintf("r.id_persona = $%d", len(args)))
	}
	if fecha != "" {
		args = append(args, fecha)
		conditions = append(conditions, fmt.Sprintf("r.fecha_reserva = $%d::date", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY r.fecha_reserva DESC, c.hora_inicio ASC"

	var reservas []ReservaWithDetails
	err := r.db.SelectContext(ctx, &reservas, query, args...)
	if err != nil {
		return nil, err
	}

	for i := range reservas {
		reservas[i].nest()
	}

	return reservas, nil
}

func (r *repository) ListAsistencias(ctx context.Context, personaID int, fecha string) ([]Asistencia, error) {
	query := `
		SELECT
			a.id, a.id_persona, a.id_clase_gym, a.id_reserva,
			to_char(a.fecha, 'YYYY-MM-DD') AS fecha,
			a.hora_entrada, a.hora_salida, a.tipo,
			p.nombre AS socio_nombre,
			c.nombre AS clase_nombre
		FROM asistencias a
		JOIN personas p ON p.id = a.id_persona
		LEFT JOIN clases c ON c.id = a.id_clase_gym
	`

	var conditions []string
	var args []interface{}

	if personaID > 0 {
		args = append(args, personaID)
		conditions = append(conditions, fmt.Sprintf("a.id_persona = $%d", len(args)))
	}
	if fecha != "" {
		args = append(args, fecha)
		conditions = append(conditions, fmt.Sprintf("a.fecha = $%d::date", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.fecha DESC, a.hora_entrada DESC"

	var asistencias []Asistencia
	err := r.db.SelectContext(ctx, &asistencias, query, args...)
	if err != nil {
		return nil, err
	}

	return asistencias, nil
}

// MarkNoShows flips reservations that were never attended to ausente
// once the class has finished, including today's classes whose hora_fin
// already passed. Credits are not refunded for no-shows.
func (r *repository) MarkNoShows(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE reservas SET estado = 'ausente'
		FROM clases
		WHERE clases.id = reservas.id_clase_gym
		  AND reservas.estado = 'reservada'
		  AND (reservas.fecha_reserva < CURRENT_DATE
		       OR (reservas.fecha_reserva = CURRENT_DATE AND clases.hora_fin < to_char(NOW(), 'HH24:MI')))
	`)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
