package membership

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymdesk/internal/api"
	"gymdesk/internal/metrics"
	"gymdesk/internal/plan"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo     Repository
	planRepo *plan.Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		repo:     NewRepository(db),
		planRepo: plan.NewRepository(db),
	}
}

// List godoc
// @Summary      List membresías
// @Tags         membresias
// @Security     BearerAuth
// @Produce      json
// @Param        id_socio  query  int     false  "Filter by person"
// @Param        estado    query  string  false  "activa | por_vencer | vencida | cancelada"
// @Param        search    query  string  false  "Match against socio nombre"
// @Success      200  {object}  map[string][]MembresiaWithDetails
// @Failure      500  {object}  api.ErrorResponse
// @Router       /membresias [get]
func (h *Handler) List(c *gin.Context) {
	idSocio, _ := strconv.Atoi(c.Query("id_socio"))

	membresias, err := h.repo.List(c.Request.Context(), idSocio, c.Query("estado"), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("No se pudieron obtener las membresías"))
		return
	}

	if membresias == nil {
		membresias = []MembresiaWithDetails{}
	}
	c.JSON(http.StatusOK, gin.H{"membresias": membresias})
}

// Create godoc
// @Summary      Create membresía
// @Description  Assigns a plan to a socio. The previous active membership, if any, is cancelled.
// @Tags         membresias
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  CreateMembresiaRequest  true  "Assignment"
// @Success      201  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Failure      422  {object}  api.ErrorResponse
// @Router       /membresias [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateMembresiaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	p, err := h.planRepo.GetByID(c.Request.Context(), req.IDPlan.Int())
	if err != nil {
		c.JSON(http.StatusNotFound, api.Error("Plan no encontrado"))
		return
	}
	if !p.Estado {
		c.JSON(http.StatusConflict, api.Error("El plan no está activo"))
		return
	}

	fechaInicio := time.Now().Format("2006-01-02")
	if req.FechaInicio != nil {
		fechaInicio = *req.FechaInicio
	}

	tipo := p.TipoPlan()
	var fechaFin *string
	var creditos *int
	if tipo == TipoFecha {
		// Plans created before the duration/credits validation can carry
		// NULL in both columns.
		if p.DuracionDias == nil {
			c.JSON(http.StatusConflict, api.Error("El plan no tiene una duración configurada"))
			return
		}
		inicio, err := time.Parse("2006-01-02", fechaInicio)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, api.ValidationError(map[string][]string{
				"fecha_inicio": {"Formato de fecha inválido"},
			}))
			return
		}
		fin := inicio.AddDate(0, 0, *p.DuracionDias).Format("2006-01-02")
		fechaFin = &fin
	} else {
		creditos = p.Creditos
	}

	m, err := h.repo.Create(c.Request.Context(), req.IDSocio.Int(), req.IDPlan.Int(), tipo, fechaInicio, fechaFin, creditos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo crear la membresía"))
		return
	}

	metrics.RecordMembership(tipo)
	c.JSON(http.StatusCreated, gin.H{"message": "Membresía creada correctamente", "membresia": m})
}

// Update godoc
// @Summary      Update membresía
// @Tags         membresias
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                     true  "Membresía ID"
// @Param        request  body  UpdateMembresiaRequest  true  "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Router       /membresias/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	var req UpdateMembresiaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	m, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, api.Error("Membresía no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo actualizar la membresía"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Membresía actualizada correctamente", "membresia": m})
}

// Delete godoc
// @Summary      Cancel membresía
// @Description  Marks the membership cancelada; the row is kept for reservation history.
// @Tags         membresias
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Membresía ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /membresias/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	if err := h.repo.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrMembresiaNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Membresía no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo cancelar la membresía"))
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Membresía cancelada correctamente"})
}
