package class

import "time"

const (
	EstadoActiva    = "activa"
	EstadoCancelada = "cancelada"
)

// Clase is a recurring class template: weekday pattern plus a time window.
// Concrete bookable occurrences (ClassSlot) are derived, never stored.
type Clase struct {
	ID              int       `db:"id" json:"id"`
	Nombre          string    `db:"nombre" json:"nombre"`
	IDCoach         int       `db:"id_coach" json:"id_coach"`
	DiasSemana      string    `db:"dias_semana" json:"dias_semana"`
	HoraInicio      string    `db:"hora_inicio" json:"hora_inicio"`
	HoraFin         string    `db:"hora_fin" json:"hora_fin"`
	DuracionMinutos int       `db:"duracion_minutos" json:"duracion_minutos"`
	CupoMaximo      int       `db:"cupo_maximo" json:"cupo_maximo"`
	Estado          string    `db:"estado" json:"estado"`
	CoachNombre     string    `db:"coach_nombre" json:"coach_nombre"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ClassSlot is one calendar occurrence of a Clase with live availability
// for the requesting identity. Matches the instancias wire shape.
type ClassSlot struct {
	ID          string   `json:"id"`
	ClaseID     int      `json:"clase_id"`
	ReservaID   *int     `json:"reserva_id"`
	Nombre      string   `json:"nombre"`
	Instructor  string   `json:"instructor"`
	Fecha       string   `json:"fecha"`
	Hora        string   `json:"hora"`
	Duracion    int      `json:"duracion"`
	Capacidad   int      `json:"capacidad"`
	Inscritos   int      `json:"inscritos"`
	Alumnos     []string `json:"alumnos"`
	Disponibles int      `json:"disponibles"`
	Reservada   bool     `json:"reservada"`
	EstadoClase string   `json:"estado_clase"`
}

type CreateClaseRequest struct {
	Nombre          string `json:"nombre" binding:"required"`
	IDCoach         int    `json:"id_coach" binding:"required"`
	DiasSemana      string `json:"dias_semana" binding:"required"`
	HoraInicio      string `json:"hora_inicio" binding:"required"`
	HoraFin         string `json:"hora_fin" binding:"required"`
	DuracionMinutos int    `json:"duracion_minutos" binding:"required,gte=10"`
	CupoMaximo      int    `json:"cupo_maximo" binding:"required,gte=1"`
}

type UpdateClaseRequest struct {
	Nombre          *string `json:"nombre"`
	IDCoach         *int    `json:"id_coach"`
	DiasSemana      *string `json:"dias_semana"`
	HoraInicio      *string `json:"hora_inicio"`
	HoraFin         *string `json:"hora_fin"`
	DuracionMinutos *int    `json:"duracion_minutos" binding:"omitempty,gte=10"`
	CupoMaximo      *int    `json:"cupo_maximo" binding:"omitempty,gte=1"`
	Estado          *string `json:"estado" binding:"omitempty,oneof=activa cancelada"`
}
