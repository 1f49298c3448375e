package class

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"

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
// @Summary      List clases
// @Tags         clases
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string][]Clase
// @Failure      500  {object}  api.ErrorResponse
// @Router       /clases [get]
func (h *Handler) List(c *gin.Context) {
	clases, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("No se pudieron obtener las clases"))
		return
	}

	if clases == nil {
		clases = []Clase{}
	}
	c.JSON(http.StatusOK, gin.H{"clases": clases})
}

// Create godoc
// @Summary      Create clase
// @Tags         clases
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  CreateClaseRequest  true  "Clase data"
// @Success      201  {object}  map[string]interface{}
// @Failure      422  {object}  api.ErrorResponse
// @Router       /clases [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateClaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	clase, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo crear la clase"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Clase creada correctamente", "clase": clase})
}

// Update godoc
// @Summary      Update clase
// @Tags         clases
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                 true  "Clase ID"
// @Param        request  body  UpdateClaseRequest  true  "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Router       /clases/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	var req UpdateClaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	clase, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, api.Error("Clase no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo actualizar la clase"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Clase actualizada correctamente", "clase": clase})
}

// Delete godoc
// @Summary      Delete clase
// @Description  Clases with reservation history are cancelled instead of removed.
// @Tags         clases
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Clase ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /clases/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrClaseNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Clase no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo eliminar la clase"))
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Clase eliminada correctamente"})
}

// AvailableSlots godoc
// @Summary      Available class slots
// @Description  Derives bookable occurrences for the date range with live capacity and the viewer's own reservation.
// @Tags         clases
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD, defaults to today"
// @Param        end_date    query  string  false  "YYYY-MM-DD, defaults to start_date"
// @Success      200  {object}  map[string][]ClassSlot
// @Failure      400  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /clases-disponibles [get]
func (h *Handler) AvailableSlots(c *gin.Context) {
	startDate := c.Query("start_date")
	if startDate == "" {
		startDate = time.Now().Format("2006-01-02")
	}
	endDate := c.Query("end_date")
	if endDate == "" {
		endDate = startDate
	}

	personaID, _ := auth.GetPersonaID(c)

	slots, err := h.repo.AvailableSlots(c.Request.Context(), startDate, endDate, personaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("Rango de fechas inválido"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"instancias": slots})
}
