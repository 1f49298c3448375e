package payment

import "time"

const (
	EstadoPagado    = "pagado"
	EstadoPendiente = "pendiente"
	EstadoVencido   = "vencido"
)

type Pago struct {
	ID          int       `db:"id" json:"id"`
	IDPersona   int       `db:"id_persona" json:"id_persona"`
	IDMembresia *int      `db:"id_membresia" json:"id_membresia,omitempty"`
	Concepto    string    `db:"concepto" json:"concepto"`
	Monto       float64   `db:"monto" json:"monto"`
	MetodoPago  string    `db:"metodo_pago" json:"metodo_pago"`
	Estado      string    `db:"estado" json:"estado"`
	Fecha       string    `db:"fecha" json:"fecha"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	SocioNombre string `db:"socio_nombre" json:"socio_nombre,omitempty"`
}

type CreatePagoRequest struct {
	IDPersona   int     `json:"id_persona" binding:"required"`
	IDMembresia *int    `json:"id_membresia"`
	Concepto    string  `json:"concepto" binding:"required"`
	Monto       float64 `json:"monto" binding:"required,gt=0"`
	MetodoPago  string  `json:"metodo_pago" binding:"required,oneof=efectivo tarjeta transferencia"`
	Estado      string  `json:"estado" binding:"omitempty,oneof=pagado pendiente vencido"`
	Fecha       string  `json:"fecha" binding:"omitempty,datetime=2006-01-02"`
}

type UpdatePagoRequest struct {
	Concepto   *string  `json:"concepto"`
	Monto      *float64 `json:"monto" binding:"omitempty,gt=0"`
	MetodoPago *string  `json:"metodo_pago" binding:"omitempty,oneof=efectivo tarjeta transferencia"`
	Estado     *string  `json:"estado" binding:"omitempty,oneof=pagado pendiente vencido"`
	Fecha      *string  `json:"fecha" binding:"omitempty,datetime=2006-01-02"`
}
