package membership

import (
	"time"

	"gymdesk/internal/api"
)

const (
	TipoFecha    = "fecha"
	TipoCreditos = "creditos"

	EstadoActiva    = "activa"
	EstadoPorVencer = "por_vencer"
	EstadoVencida   = "vencida"
	EstadoCancelada = "cancelada"
)

// Membresia links a person to a plan. tipo fecha expires by date, tipo
// creditos by spending its credit balance on reservations.
type Membresia struct {
	ID                int       `db:"id" json:"id"`
	IDPersona         int       `db:"id_persona" json:"idpersona"`
	IDServicio        int       `db:"id_servicio" json:"idservicio"`
	Tipo              string    `db:"tipo" json:"tipo"`
	FechaInicio       string    `db:"fecha_inicio" json:"fecha_inicio"`
	FechaFin          *string   `db:"fecha_fin" json:"fecha_fin,omitempty"`
	CreditosTotales   *int      `db:"creditos_totales" json:"creditos_totales,omitempty"`
	CreditosRestantes *int      `db:"creditos_restantes" json:"creditos_restantes,omitempty"`
	Estado            string    `db:"estado" json:"estado"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// MembresiaWithDetails carries the joined names the membresias screen shows.
type MembresiaWithDetails struct {
	Membresia
	SocioNombre string  `db:"socio_nombre" json:"socio_nombre"`
	PlanNombre  string  `db:"plan_nombre" json:"plan_nombre"`
	PlanPrecio  float64 `db:"plan_precio" json:"plan_precio"`
}

// ExpiringMembresia is a row the expiry sweep turns into a reminder mail.
type ExpiringMembresia struct {
	ID             int    `db:"id"`
	IDPersona      int    `db:"id_persona"`
	ServicioNombre string `db:"servicio_nombre"`
	FechaFin       string `db:"fecha_fin"`
}

type CreateMembresiaRequest struct {
	IDSocio     api.ID  `json:"id_socio" binding:"required"`
	IDPlan      api.ID  `json:"id_plan" binding:"required"`
	FechaInicio *string `json:"fecha_inicio" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateMembresiaRequest struct {
	FechaFin          *string `json:"fecha_fin" binding:"omitempty,datetime=2006-01-02"`
	CreditosRestantes *int    `json:"creditos_restantes" binding:"omitempty,gte=0"`
	Estado            *string `json:"estado" binding:"omitempty,oneof=activa vencida cancelada"`
}
