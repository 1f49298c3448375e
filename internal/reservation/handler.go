package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/logger"
	"gymdesk/internal/membership"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Reservar un cupo en una clase
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Param        reserva  body      CreateReservaRequest  true  "Datos de la reserva"
// @Success      201  {object}  map[string]interface{}
// @Failure      409  {object}  api.ErrorResponse
// @Failure      422  {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /reservas [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	// Socios book for themselves regardless of the body; staff and owners
	// book on behalf of the persona in the request.
	personaID := 0
	if auth.GetRole(c) == auth.RoleSocio {
		id, ok := auth.GetPersonaID(c)
		if !ok {
			c.JSON(http.StatusForbidden, api.Error("El usuario no tiene un socio asociado"))
			return
		}
		personaID = id
	} else {
		if req.IDPersona == nil || req.IDPersona.Int() == 0 {
			c.JSON(http.StatusUnprocessableEntity, api.ValidationError(map[string][]string{
				"id_persona": {"El campo id_persona es obligatorio."},
			}))
			return
		}
		personaID = req.IDPersona.Int()
	}

	reserva, err := h.service.Book(c.Request.Context(), personaID, req.IDClaseGym.Int(), req.FechaReserva)
	if err != nil {
		switch {
		case errors.Is(err, ErrClaseNotFound):
			c.JSON(http.StatusNotFound, api.Error("Clase no encontrada"))
		case errors.Is(err, ErrClaseInactive):
			c.JSON(http.StatusConflict, api.Error("La clase no está activa"))
		case errors.Is(err, ErrClaseNotScheduled):
			c.JSON(http.StatusConflict, api.Error("La clase no se dicta ese día"))
		case errors.Is(err, ErrPastDate):
			c.JSON(http.StatusUnprocessableEntity, api.ValidationError(map[string][]string{
				"fecha_reserva": {"La fecha de reserva no puede ser anterior a hoy."},
			}))
		case errors.Is(err, ErrClaseFull):
			c.JSON(http.StatusConflict, api.Error("La clase no tiene cupos disponibles"))
		case errors.Is(err, ErrDuplicateReserva):
			c.JSON(http.StatusConflict, api.Error("El socio ya tiene una reserva para esta clase"))
		case errors.Is(err, ErrNoUsableMembresia):
			c.JSON(http.StatusConflict, api.Error("El socio no tiene una membresía activa"))
		case errors.Is(err, membership.ErrNoCredits):
			c.JSON(http.StatusConflict, api.Error("La membresía no tiene créditos disponibles"))
		default:
			logger.Errorf("creating reserva: %v", err)
			c.JSON(http.StatusInternalServerError, api.Error("No se pudo crear la reserva"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reserva creada correctamente",
		"reserva": reserva,
	})
}

// Cancel godoc
// @Summary      Cancelar una reserva
// @Tags         reservas
// @Produce      json
// @Param        id   path      int  true  "ID de la reserva"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /reservas/{id} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	var asSocio *int
	if auth.GetRole(c) == auth.RoleSocio {
		personaID, ok := auth.GetPersonaID(c)
		if !ok {
			c.JSON(http.StatusForbidden, api.Error("El usuario no tiene un socio asociado"))
			return
		}
		asSocio = &personaID
	}

	if err := h.service.Cancel(c.Request.Context(), id, asSocio); err != nil {
		switch {
		case errors.Is(err, ErrReservaNotFound):
			c.JSON(http.StatusNotFound, api.Error("Reserva no encontrada"))
		case errors.Is(err, ErrAlreadyFinalized):
			c.JSON(http.StatusConflict, api.Error("La reserva ya fue cancelada o asistida"))
		default:
			logger.Errorf("cancelling reserva %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.Error("No se pudo cancelar la reserva"))
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Reserva cancelada correctamente"})
}

// List godoc
// @Summary      Listar reservas
// @Tags         reservas
// @Produce      json
// @Param        id_persona  query     int     false  "Filtrar por socio"
// @Param        fecha       query     string  false  "Filtrar por fecha (YYYY-MM-DD)"
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /reservas [get]
func (h *Handler) List(c *gin.Context) {
	personaID, _ := strconv.Atoi(c.Query("id_persona"))
	fecha := c.Query("fecha")

	// A socio only ever sees their own reservas.
	if auth.GetRole(c) == auth.RoleSocio {
		id, ok := auth.GetPersonaID(c)
		if !ok {
			c.JSON(http.StatusForbidden, api.Error("El usuario no tiene un socio asociado"))
			return
		}
		personaID = id
	}

	reservas, err := h.service.List(c.Request.Context(), personaID, fecha)
	if err != nil {
		logger.Errorf("listing reservas: %v", err)
		c.JSON(http.StatusInternalServerError, api.Error("No se pudieron obtener las reservas"))
		return
	}

	if reservas == nil {
		reservas = []ReservaWithDetails{}
	}
	c.JSON(http.StatusOK, gin.H{"reservas": reservas})
}

// MarcarAsistencia godoc
// @Summary      Registrar una asistencia
// @Tags         asistencias
// @Accept       json
// @Produce      json
// @Param        asistencia  body      MarcarAsistenciaRequest  true  "Datos de la asistencia"
// @Success      201  {object}  map[string]interface{}
// @Failure      409  {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /asistencias [post]
func (h *Handler) MarcarAsistencia(c *gin.Context) {
	var req MarcarAsistenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	asistencia, err := h.service.MarkAttendance(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservaNotPending):
			c.JSON(http.StatusConflict, api.Error("La reserva no está pendiente de asistencia"))
		default:
			logger.Errorf("marking asistencia: %v", err)
			c.JSON(http.StatusInternalServerError, api.Error("No se pudo registrar la asistencia"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Asistencia registrada correctamente",
		"asistencia": asistencia,
	})
}

// ListAsistencias godoc
// @Summary      Listar asistencias
// @Tags         asistencias
// @Produce      json
// @Param        id_persona  query     int     false  "Filtrar por socio"
// @Param        fecha       query     string  false  "Filtrar por fecha (YYYY-MM-DD)"
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /asistencias [get]
func (h *Handler) ListAsistencias(c *gin.Context) {
	personaID, _ := strconv.Atoi(c.Query("id_persona"))
	fecha := c.Query("fecha")

	if auth.GetRole(c) == auth.RoleSocio {
		id, ok := auth.GetPersonaID(c)
		if !ok {
			c.JSON(http.StatusForbidden, api.Error("El usuario no tiene un socio asociado"))
			return
		}
		personaID = id
	}

	asistencias, err := h.service.ListAsistencias(c.Request.Context(), personaID, fecha)
	if err != nil {
		logger.Errorf("listing asistencias: %v", err)
		c.JSON(http.StatusInternalServerError, api.Error("No se pudieron obtener las asistencias"))
		return
	}

	if asistencias == nil {
		asistencias = []Asistencia{}
	}
	c.JSON(http.StatusOK, gin.H{"asistencias": asistencias})
}
