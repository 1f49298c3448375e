package payment

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo *Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// List godoc
// @Summary      Listar pagos
// @Tags         pagos
// @Produce      json
// @Param        id_persona  query     int     false  "Filtrar por socio"
// @Param        estado      query     string  false  "Filtrar por estado"
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /pagos [get]
func (h *Handler) List(c *gin.Context) {
	personaID, _ := strconv.Atoi(c.Query("id_persona"))
	estado := c.Query("estado")

	if auth.GetRole(c) == auth.RoleSocio {
		id, ok := auth.GetPersonaID(c)
		if !ok {
			c.JSON(http.StatusForbidden, api.Error("El usuario no tiene un socio asociado"))
			return
		}
		personaID = id
	}

	pagos, err := h.repo.List(c.Request.Context(), personaID, estado)
	if err != nil {
		logger.Errorf("listing pagos: %v", err)
		c.JSON(http.StatusInternalServerError, api.Error("No se pudieron obtener los pagos"))
		return
	}

	if pagos == nil {
		pagos = []Pago{}
	}
	c.JSON(http.StatusOK, gin.H{"pagos": pagos})
}

// Create godoc
// @Summary      Registrar un pago
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        pago  body      CreatePagoRequest  true  "Datos del pago"
// @Success      201  {object}  map[string]interface{}
// @Failure      422  {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /pagos [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	pago, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("creating pago: %v", err)
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo registrar el pago"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pago registrado correctamente",
		"pago":    pago,
	})
}

// Update godoc
// @Summary      Actualizar un pago
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "ID del pago"
// @Param        pago  body      UpdatePagoRequest  true  "Campos a actualizar"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /pagos/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	var req UpdatePagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	pago, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrPagoNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Pago no encontrado"))
			return
		}
		logger.Errorf("updating pago %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo actualizar el pago"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pago actualizado correctamente",
		"pago":    pago,
	})
}

// Comprobante godoc
// @Summary      Descargar el comprobante de un pago
// @Tags         pagos
// @Produce      application/pdf
// @Param        id   path      int  true  "ID del pago"
// @Success      200  {file}    binary
// @Failure      404  {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /pagos/{id}/comprobante [get]
func (h *Handler) Comprobante(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	pago, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPagoNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Pago no encontrado"))
			return
		}
		logger.Errorf("fetching pago %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo obtener el pago"))
		return
	}

	// Socios only download their own receipts.
	if auth.GetRole(c) == auth.RoleSocio {
		personaID, ok := auth.GetPersonaID(c)
		if !ok || pago.IDPersona != personaID {
			c.JSON(http.StatusNotFound, api.Error("Pago no encontrado"))
			return
		}
	}

	pdf, err := Receipt(pago)
	if err != nil {
		logger.Errorf("rendering comprobante %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo generar el comprobante"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="comprobante-%d.pdf"`, pago.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
