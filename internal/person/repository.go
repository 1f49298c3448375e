package person

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var ErrPersonNotFound = errors.New("person not found")

const personColumns = `
	id, tipo_persona, nombre, email, telefono, direccion, dni,
	to_char(fecha_nacimiento, 'YYYY-MM-DD') AS fecha_nacimiento,
	foto, especialidades, biografia, estado, created_at`

// membershipEstadoCase mirrors the membership package's estado rules so the
// socios list can show them without a second round trip.
const membershipEstadoCase = `
	CASE
		WHEN m.id IS NULL THEN NULL
		WHEN m.tipo = 'fecha' AND m.fecha_fin < CURRENT_DATE THEN 'vencida'
		WHEN m.tipo = 'creditos' AND m.creditos_restantes <= 0 THEN 'vencida'
		WHEN m.tipo = 'fecha' AND m.fecha_fin <= CURRENT_DATE + 7 THEN 'por_vencer'
		WHEN m.tipo = 'creditos' AND m.creditos_restantes <= 3 THEN 'por_vencer'
		ELSE 'activa'
	END`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req CreatePersonRequest, tipoPersona string) (*Person, error) {
	query := `
		INSERT INTO personas (tipo_persona, nombre, email, telefono, direccion, dni, fecha_nacimiento, foto, especialidades, biografia, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, $9, $10, 'activo')
		RETURNING` + personColumns

	var p Person
	err := r.db.GetContext(ctx, &p, query,
		tipoPersona, req.Nombre, req.Email, req.Telefono, req.Direccion,
		req.DNI, req.FechaNacimiento, req.Foto, req.Especialidades, req.Biografia,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Person, error) {
	query := `SELECT` + personColumns + ` FROM personas WHERE id = $1`

	var p Person
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// List returns persons enriched with their latest non-cancelled membership.
// search matches nombre, email and dni; estado and tipoPersona narrow the set.
func (r *repository) List(ctx context.Context, search, estado, tipoPersona string) ([]SocioWithMembership, error) {
	query := `
		SELECT
			p.id, p.tipo_persona, p.nombre, p.email, p.telefono, p.direccion, p.dni,
			to_char(p.fecha_nacimiento, 'YYYY-MM-DD') AS fecha_nacimiento,
			p.foto, p.especialidades, p.biografia, p.estado, p.created_at,
			m.id_servicio AS plan_id,
			s.nombre AS plan_nombre,
			m.tipo AS tipo_membresia,
			m.creditos_restantes,
			to_char(m.fecha_inicio, 'YYYY-MM-DD') AS fecha_inicio,
			to_char(m.fecha_fin, 'YYYY-MM-DD') AS fecha_vencimiento,
			` + membershipEstadoCase + ` AS estado_membresia,
			(u.id IS NOT NULL) AS tiene_usuario,
			u.id AS user_id
		FROM personas p
		LEFT JOIN LATERAL (
			SELECT * FROM membresias
			WHERE id_persona = p.id AND estado <> 'cancelada'
			ORDER BY created_at DESC
			LIMIT 1
		) m ON true
		LEFT JOIN servicios s ON s.id = m.id_servicio
		LEFT JOIN users u ON u.id_persona = p.id
	`

	var conditions []string
	var args []interface{}

	if tipoPersona != "" {
		args = append(args, tipoPersona)
		conditions = append(conditions, fmt.Sprintf("p.tipo_persona = $%d", len(args)))
	} else {
		conditions = append(conditions, "p.tipo_persona = 'socio'")
	}
	if estado != "" {
		args = append(args, estado)
		conditions = append(conditions, fmt.Sprintf("p.estado = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(p.nombre ILIKE $%d OR p.email ILIKE $%d OR p.dni ILIKE $%d)", n, n, n))
	}

	query += " WHERE " + strings.Join(conditions, " AND ")
	query += " ORDER BY p.nombre ASC"

	var socios []SocioWithMembership
	err := r.db.SelectContext(ctx, &socios, query, args...)
	if err != nil {
		return nil, err
	}

	return socios, nil
}

// GetSocioWithMembership returns a single enriched row, used by /perfil and
// the socio detail dialog.
func (r *repository) GetSocioWithMembership(ctx context.Context, id int) (*SocioWithMembership, error) {
	query := `
		SELECT
			p.id, p.tipo_persona, p.nombre, p.email, p.telefono, p.direccion, p.dni,
			to_char(p.fecha_nacimiento, 'YYYY-MM-DD') AS fecha_nacimiento,
			p.foto, p.especialidades, p.biografia, p.estado, p.created_at,
			m.id_servicio AS plan_id,
			s.nombre AS plan_nombre,
			m.tipo AS tipo_membresia,
			m.creditos_restantes,
			to_char(m.fecha_inicio, 'YYYY-MM-DD') AS fecha_inicio,
			to_char(m.fecha_fin, 'YYYY-MM-DD') AS fecha_vencimiento,
			` + membershipEstadoCase + ` AS estado_membresia,
			(u.id IS NOT NULL) AS tiene_usuario,
			u.id AS user_id
		FROM personas p
		LEFT JOIN LATERAL (
			SELECT * FROM membresias
			WHERE id_persona = p.id AND estado <> 'cancelada'
			ORDER BY created_at DESC
			LIMIT 1
		) m ON true
		LEFT JOIN servicios s ON s.id = m.id_servicio
		LEFT JOIN users u ON u.id_persona = p.id
		WHERE p.id = $1
	`

	var socio SocioWithMembership
	err := r.db.GetContext(ctx, &socio, query, id)
	if err != nil {
		return nil, err
	}

	return &socio, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdatePersonRequest) (*Person, error) {
	query := `
		UPDATE personas SET
			nombre = COALESCE($2, nombre),
			email = COALESCE($3, email),
			telefono = COALESCE($4, telefono),
			direccion = COALESCE($5, direccion),
			dni = COALESCE($6, dni),
			fecha_nacimiento = COALESCE($7::date, fecha_nacimiento),
			foto = COALESCE($8, foto),
			especialidades = COALESCE($9, especialidades),
			biografia = COALESCE($10, biografia),
			estado = COALESCE($11, estado)
		WHERE id = $1
		RETURNING` + personColumns

	var p Person
	err := r.db.GetContext(ctx, &p, query, id,
		req.Nombre, req.Email, req.Telefono, req.Direccion, req.DNI,
		req.FechaNacimiento, req.Foto, req.Especialidades, req.Biografia, req.Estado,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// HasActivity reports whether the person is referenced by reservations or
// payments. Referenced persons are deactivated instead of deleted.
func (r *repository) HasActivity(ctx context.Context, id int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservas WHERE id_persona = $1
			UNION
			SELECT 1 FROM pagos WHERE id_persona = $1
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) Deactivate(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE personas SET estado = 'inactivo' WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM personas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (r *repository) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM personas WHERE email = $1 AND id <> $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email, excludeID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func checkAffected(result interface{ RowsAffected() (int64, error) }) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPersonNotFound
	}
	return nil
}
