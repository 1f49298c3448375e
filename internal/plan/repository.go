package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	ErrServicioNotFound = errors.New("servicio not found")
	ErrServicioInUse    = errors.New("servicio has memberships")
)

const servicioColumns = `
	id, nombre, descripcion, precio, tipo_servicio, duracion_dias, creditos, estado, created_at`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req CreateServicioRequest, tipoServicio string) (*Servicio, error) {
	estado := true
	if req.Estado != nil {
		estado = *req.Estado
	}

	query := `
		INSERT INTO servicios (nombre, descripcion, precio, tipo_servicio, duracion_dias, creditos, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING` + servicioColumns

	var s Servicio
	err := r.db.GetContext(ctx, &s, query,
		req.Nombre, req.Descripcion, req.Precio, tipoServicio,
		req.DuracionDias, req.Creditos, estado,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Servicio, error) {
	query := `SELECT` + servicioColumns + ` FROM servicios WHERE id = $1`

	var s Servicio
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *Repository) List(ctx context.Context, tipoServicio, search string) ([]Servicio, error) {
	query := `SELECT` + servicioColumns + ` FROM servicios`

	var conditions []string
	var args []interface{}

	if tipoServicio != "" {
		args = append(args, tipoServicio)
		conditions = append(conditions, fmt.Sprintf("tipo_servicio = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("nombre ILIKE $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY nombre ASC"

	var servicios []Servicio
	err := r.db.SelectContext(ctx, &servicios, query, args...)
	if err != nil {
		return nil, err
	}

	return servicios, nil
}

func (r *Repository) Update(ctx context.Context, id int, req UpdateServicioRequest) (*Servicio, error) {
	query := `
		UPDATE servicios SET
			nombre = COALESCE($2, nombre),
			descripcion = COALESCE($3, descripcion),
			precio = COALESCE($4, precio),
			duracion_dias = COALESCE($5, duracion_dias),
			creditos = COALESCE($6, creditos),
			estado = COALESCE($7, estado)
		WHERE id = $1
		RETURNING` + servicioColumns

	var s Servicio
	err := r.db.GetContext(ctx, &s, query, id,
		req.Nombre, req.Descripcion, req.Precio, req.DuracionDias, req.Creditos, req.Estado,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Delete removes a servicio. Servicios referenced by memberships cannot be
// removed; the caller should deactivate them instead.
func (r *Repository) Delete(ctx context.Context, id int) error {
	var inUse bool
	err := r.db.GetContext(ctx, &inUse,
		`SELECT EXISTS(SELECT 1 FROM membresias WHERE id_servicio = $1)`, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrServicioInUse
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM servicios WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrServicioNotFound
	}

	return nil
}
