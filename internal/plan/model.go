package plan

import "time"

const (
	TipoServicioPlan    = "plan"
	TipoServicioClase   = "clase"
	TipoServicioGeneral = "servicio_general"
)

// Servicio is a sellable plan. duracion_dias makes it time-bounded
// ("fecha"), creditos makes it credit-bounded ("creditos").
type Servicio struct {
	ID           int       `db:"id" json:"id"`
	Nombre       string    `db:"nombre" json:"nombre"`
	Descripcion  string    `db:"descripcion" json:"descripcion"`
	Precio       float64   `db:"precio" json:"precio"`
	TipoServicio string    `db:"tipo_servicio" json:"tipo_servicio"`
	DuracionDias *int      `db:"duracion_dias" json:"duracion_dias,omitempty"`
	Creditos     *int      `db:"creditos" json:"creditos,omitempty"`
	Estado       bool      `db:"estado" json:"estado"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// TipoPlan derives the membership mode a purchase of this plan produces.
func (s *Servicio) TipoPlan() string {
	if s.Creditos != nil && *s.Creditos > 0 {
		return "creditos"
	}
	return "fecha"
}

type CreateServicioRequest struct {
	Nombre       string  `json:"nombre" binding:"required"`
	Descripcion  string  `json:"descripcion"`
	Precio       float64 `json:"precio" binding:"required,gte=0"`
	TipoServicio string  `json:"tipo_servicio" binding:"omitempty,oneof=plan clase servicio_general"`
	DuracionDias *int    `json:"duracion_dias" binding:"omitempty,gte=1"`
	Creditos     *int    `json:"creditos" binding:"omitempty,gte=1"`
	Estado       *bool   `json:"estado"`
}

type UpdateServicioRequest struct {
	Nombre       *string  `json:"nombre"`
	Descripcion  *string  `json:"descripcion"`
	Precio       *float64 `json:"precio" binding:"omitempty,gte=0"`
	DuracionDias *int     `json:"duracion_dias" binding:"omitempty,gte=1"`
	Creditos     *int     `json:"creditos" binding:"omitempty,gte=1"`
	Estado       *bool    `json:"estado"`
}
