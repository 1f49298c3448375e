package plan

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"

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
// @Summary      List servicios
// @Tags         servicios
// @Security     BearerAuth
// @Produce      json
// @Param        tipo_servicio  query  string  false  "plan | clase | servicio_general"
// @Param        search         query  string  false  "Match against nombre"
// @Success      200  {object}  map[string][]Servicio
// @Failure      500  {object}  api.ErrorResponse
// @Router       /servicios [get]
func (h *Handler) List(c *gin.Context) {
	servicios, err := h.repo.List(c.Request.Context(), c.Query("tipo_servicio"), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("No se pudieron obtener los servicios"))
		return
	}

	if servicios == nil {
		servicios = []Servicio{}
	}
	c.JSON(http.StatusOK, gin.H{"servicios": servicios})
}

// Create godoc
// @Summary      Create servicio
// @Tags         servicios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  CreateServicioRequest  true  "Servicio data"
// @Success      201  {object}  map[string]interface{}
// @Failure      422  {object}  api.ErrorResponse
// @Router       /servicios [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateServicioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	tipoServicio := req.TipoServicio
	if tipoServicio == "" {
		tipoServicio = TipoServicioPlan
	}

	if req.DuracionDias == nil && req.Creditos == nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(map[string][]string{
			"duracion_dias": {"Debe indicar duracion_dias o creditos"},
		}))
		return
	}

	s, err := h.repo.Create(c.Request.Context(), req, tipoServicio)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo crear el servicio"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Servicio creado correctamente", "servicio": s})
}

// Update godoc
// @Summary      Update servicio
// @Tags         servicios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                    true  "Servicio ID"
// @Param        request  body  UpdateServicioRequest  true  "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Router       /servicios/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	var req UpdateServicioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	s, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, api.Error("Servicio no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo actualizar el servicio"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Servicio actualizado correctamente", "servicio": s})
}

// Delete godoc
// @Summary      Delete servicio
// @Tags         servicios
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Servicio ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /servicios/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	err = h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrServicioInUse):
			c.JSON(http.StatusConflict, api.Error("El servicio tiene membresías asociadas"))
		case errors.Is(err, ErrServicioNotFound):
			c.JSON(http.StatusNotFound, api.Error("Servicio no encontrado"))
		default:
			c.JSON(http.StatusInternalServerError, api.Error("No se pudo eliminar el servicio"))
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Servicio eliminado correctamente"})
}
