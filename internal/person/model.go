package person

import "time"

const (
	TipoSocio      = "socio"
	TipoInstructor = "instructor"

	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

type Person struct {
	ID              int       `db:"id" json:"id"`
	TipoPersona     string    `db:"tipo_persona" json:"tipo_persona"`
	Nombre          string    `db:"nombre" json:"nombre"`
	Email           string    `db:"email" json:"email"`
	Telefono        string    `db:"telefono" json:"telefono"`
	Direccion       *string   `db:"direccion" json:"direccion,omitempty"`
	DNI             *string   `db:"dni" json:"dni,omitempty"`
	FechaNacimiento *string   `db:"fecha_nacimiento" json:"fechaNacimiento,omitempty"`
	Foto            *string   `db:"foto" json:"foto,omitempty"`
	Especialidades  *string   `db:"especialidades" json:"especialidades,omitempty"`
	Biografia       *string   `db:"biografia" json:"biografia,omitempty"`
	Estado          string    `db:"estado" json:"estado"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// SocioWithMembership is the list row the socios screen renders: the person
// enriched with their latest membership and whether a login exists.
type SocioWithMembership struct {
	Person
	PlanID            *int    `db:"plan_id" json:"planId,omitempty"`
	PlanNombre        *string `db:"plan_nombre" json:"planNombre,omitempty"`
	TipoMembresia     *string `db:"tipo_membresia" json:"tipo_membresia,omitempty"`
	CreditosRestantes *int    `db:"creditos_restantes" json:"creditos_restantes,omitempty"`
	FechaInicio       *string `db:"fecha_inicio" json:"fechaInicio,omitempty"`
	FechaVencimiento  *string `db:"fecha_vencimiento" json:"fechaVencimiento,omitempty"`
	EstadoMembresia   *string `db:"estado_membresia" json:"estado_membresia,omitempty"`
	TieneUsuario      bool    `db:"tiene_usuario" json:"tieneUsuario"`
	UserID            *int    `db:"user_id" json:"userId,omitempty"`
}

type CreatePersonRequest struct {
	Nombre          string  `json:"nombre" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Telefono        string  `json:"telefono" binding:"required"`
	Direccion       *string `json:"direccion"`
	DNI             *string `json:"dni"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	Foto            *string `json:"foto"`
	TipoPersona     string  `json:"tipo_persona" binding:"omitempty,oneof=socio instructor"`
	Especialidades  *string `json:"especialidades"`
	Biografia       *string `json:"biografia"`
}

type UpdatePersonRequest struct {
	Nombre          *string `json:"nombre"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Telefono        *string `json:"telefono"`
	Direccion       *string `json:"direccion"`
	DNI             *string `json:"dni"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	Foto            *string `json:"foto"`
	Especialidades  *string `json:"especialidades"`
	Biografia       *string `json:"biografia"`
	Estado          *string `json:"estado" binding:"omitempty,oneof=activo inactivo"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
