package reservation

import (
	"time"

	"gymdesk/internal/api"
)

const (
	EstadoReservada = "reservada"
	EstadoAsistio   = "asistio"
	EstadoCancelada = "cancelada"
	EstadoAusente   = "ausente"

	AsistenciaClase = "clase"
	AsistenciaLibre = "libre"
)

// Reserva links a person to one class occurrence. Lifecycle:
// reservada -> asistio | cancelada | ausente. No reverse transitions.
type Reserva struct {
	ID           int       `db:"id" json:"id"`
	IDPersona    int       `db:"id_persona" json:"id_persona"`
	IDClaseGym   int       `db:"id_clase_gym" json:"id_clase_gym"`
	FechaReserva string    `db:"fecha_reserva" json:"fecha_reserva"`
	IDMembresia  int       `db:"id_membresia" json:"id_membresia"`
	Estado       string    `db:"estado" json:"estado"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ReservaWithDetails is the list row, with the nested objects the client
// renders (clase.nombre, clase.hora_inicio, persona.nombre).
type ReservaWithDetails struct {
	Reserva
	ClaseNombre     string `db:"clase_nombre" json:"-"`
	ClaseHoraInicio string `db:"clase_hora_inicio" json:"-"`
	PersonaNombre   string `db:"persona_nombre" json:"-"`

	Clase   *ReservaClase   `db:"-" json:"clase,omitempty"`
	Persona *ReservaPersona `db:"-" json:"persona,omitempty"`
}

type ReservaClase struct {
	Nombre     string `json:"nombre"`
	HoraInicio string `json:"hora_inicio"`
}

type ReservaPersona struct {
	Nombre string `json:"nombre"`
}

// nest copies the flat joined columns into the nested wire objects.
func (r *ReservaWithDetails) nest() {
	r.Clase = &ReservaClase{Nombre: r.ClaseNombre, HoraInicio: r.ClaseHoraInicio}
	r.Persona = &ReservaPersona{Nombre: r.PersonaNombre}
}

type Asistencia struct {
	ID          int     `db:"id" json:"id"`
	IDPersona   int     `db:"id_persona" json:"id_persona"`
	IDClaseGym  *int    `db:"id_clase_gym" json:"id_clase_gym,omitempty"`
	IDReserva   *int    `db:"id_reserva" json:"id_reserva,omitempty"`
	Fecha       string  `db:"fecha" json:"fecha"`
	HoraEntrada string  `db:"hora_entrada" json:"horaEntrada"`
	HoraSalida  *string `db:"hora_salida" json:"horaSalida,omitempty"`
	Tipo        string  `db:"tipo" json:"tipo"`

	SocioNombre string  `db:"socio_nombre" json:"socioNombre,omitempty"`
	ClaseNombre *string `db:"clase_nombre" json:"claseNombre,omitempty"`
}

type CreateReservaRequest struct {
	IDClaseGym   api.ID  `json:"id_clase_gym" binding:"required"`
	FechaReserva string  `json:"fecha_reserva" binding:"required,datetime=2006-01-02"`
	IDPersona    *api.ID `json:"id_persona"`
}

type MarcarAsistenciaRequest struct {
	IDPersona  api.ID  `json:"id_persona" binding:"required"`
	IDClaseGym *api.ID `json:"id_clase_gym"`
	IDReserva  *api.ID `json:"id_reserva"`
}
