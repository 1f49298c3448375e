package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var ErrPagoNotFound = errors.New("pago not found")

const pagoColumns = `
	p.id, p.id_persona, p.id_membresia, p.concepto, p.monto,
	p.metodo_pago, p.estado,
	to_char(p.fecha, 'YYYY-MM-DD') AS fecha,
	p.created_at,
	s.nombre AS socio_nombre
`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req CreatePagoRequest) (*Pago, error) {
	estado := req.Estado
	if estado == "" {
		estado = EstadoPendiente
	}
	// A payment tied to a membership is the act of paying for it.
	if req.IDMembresia != nil {
		estado = EstadoPagado
	}

	var id int
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO pagos (id_persona, id_membresia, concepto, monto, metodo_pago, estado, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE(NULLIF($7, '')::date, CURRENT_DATE))
		RETURNING id
	`, req.IDPersona, req.IDMembresia, req.Concepto, req.Monto, req.MetodoPago, estado, req.Fecha)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Pago, error) {
	var pago Pago
	err := r.db.GetContext(ctx, &pago, `
		SELECT`+pagoColumns+`
		FROM pagos p
		JOIN personas s ON s.id = p.id_persona
		WHERE p.id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPagoNotFound
		}
		return nil, err
	}

	return &pago, nil
}

func (r *Repository) List(ctx context.Context, personaID int, estado string) ([]Pago, error) {
	query := `
		SELECT` + pagoColumns + `
		FROM pagos p
		JOIN personas s ON s.id = p.id_persona
	`

	var conditions []string
	var args []interface{}

	if personaID > 0 {
		args = append(args, personaID)
		conditions = append(conditions, fmt.Sprintf("p.id_persona = $%d", len(args)))
	}
	if estado != "" {
		args = append(args, estado)
		conditions = append(conditions, fmt.Sprintf("p.estado = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.fecha DESC, p.id DESC"

	var pagos []Pago
	err := r.db.SelectContext(ctx, &pagos, query, args...)
	if err != nil {
		return nil, err
	}

	return pagos, nil
}

func (r *Repository) Update(ctx context.Context, id int, req UpdatePagoRequest) (*Pago, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE pagos SET
			concepto = COALESCE($2, concepto),
			monto = COALESCE($3, monto),
			metodo_pago = COALESCE($4, metodo_pago),
			estado = COALESCE($5, estado),
			fecha = COALESCE($6::date, fecha)
		WHERE id = $1
	`, id, req.Concepto, req.Monto, req.MetodoPago, req.Estado, req.Fecha)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrPagoNotFound
	}

	return r.GetByID(ctx, id)
}
