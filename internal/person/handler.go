package person

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo     Repository
	userRepo user.Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		repo:     NewRepository(db),
		userRepo: user.NewRepository(db),
	}
}

// List godoc
// @Summary      List socios / instructores
// @Description  Returns persons enriched with membership data. tipo_persona=instructor lists instructors.
// @Tags         socios
// @Security     BearerAuth
// @Produce      json
// @Param        search        query  string  false  "Match against nombre, email, dni"
// @Param        estado        query  string  false  "activo | inactivo"
// @Param        tipo_persona  query  string  false  "socio | instructor"
// @Success      200  {object}  map[string][]SocioWithMembership
// @Failure      500  {object}  api.ErrorResponse
// @Router       /socios [get]
func (h *Handler) List(c *gin.Context) {
	search := c.Query("search")
	estado := c.Query("estado")
	tipoPersona := c.Query("tipo_persona")

	socios, err := h.repo.List(c.Request.Context(), search, estado, tipoPersona)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("No se pudieron obtener los socios"))
		return
	}

	if socios == nil {
		socios = []SocioWithMembership{}
	}
	c.JSON(http.StatusOK, gin.H{"socios": socios})
}

// Get godoc
// @Summary      Get socio
// @Tags         socios
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Person ID"
// @Success      200  {object}  map[string]SocioWithMembership
// @Failure      404  {object}  api.ErrorResponse
// @Router       /socios/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	socio, err := h.repo.GetSocioWithMembership(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Error("Socio no encontrado"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"socio": socio})
}

// Create godoc
// @Summary      Create socio or instructor
// @Tags         socios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  CreatePersonRequest  true  "Person data"
// @Success      201  {object}  map[string]interface{}
// @Failure      409  {object}  api.ErrorResponse
// @Failure      422  {object}  api.ErrorResponse
// @Router       /socios [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	tipoPersona := req.TipoPersona
	if tipoPersona == "" {
		tipoPersona = TipoSocio
	}

	exists, err := h.repo.EmailExists(c.Request.Context(), req.Email, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("Error de base de datos"))
		return
	}
	if exists {
		c.JSON(http.StatusConflict, api.Error("El email ya está registrado"))
		return
	}

	p, err := h.repo.Create(c.Request.Context(), req, tipoPersona)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo crear el socio"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Socio creado correctamente", "socio": p})
}

// Update godoc
// @Summary      Update socio or instructor
// @Tags         socios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                  true  "Person ID"
// @Param        request  body  UpdatePersonRequest  true  "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Failure      422  {object}  api.ErrorResponse
// @Router       /socios/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	var req UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	if req.Email != nil {
		exists, err := h.repo.EmailExists(c.Request.Context(), *req.Email, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.Error("Error de base de datos"))
			return
		}
		if exists {
			c.JSON(http.StatusConflict, api.Error("El email ya está registrado"))
			return
		}
	}

	p, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, api.Error("Socio no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo actualizar el socio"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Socio actualizado correctamente", "socio": p})
}

// Delete godoc
// @Summary      Delete socio or instructor
// @Description  Persons with reservations or payments are deactivated instead of removed.
// @Tags         socios
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Person ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /socios/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	hasActivity, err := h.repo.HasActivity(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("Error de base de datos"))
		return
	}

	if hasActivity {
		err = h.repo.Deactivate(c.Request.Context(), id)
	} else {
		err = h.repo.Delete(c.Request.Context(), id)
	}
	if err != nil {
		if errors.Is(err, ErrPersonNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Socio no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo eliminar el socio"))
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Socio eliminado correctamente"})
}

// CreateUser godoc
// @Summary      Create login for a socio
// @Tags         socios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                true  "Person ID"
// @Param        request  body  CreateUserRequest  true  "Credentials"
// @Success      201  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /socios/{id}/create-user [post]
func (h *Handler) CreateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("ID inválido"))
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Error("Socio no encontrado"))
		return
	}

	hasUser, err := h.userRepo.PersonaHasUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("Error de base de datos"))
		return
	}
	if hasUser {
		c.JSON(http.StatusConflict, api.Error("El socio ya tiene un usuario"))
		return
	}

	taken, err := h.userRepo.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("Error de base de datos"))
		return
	}
	if taken {
		c.JSON(http.StatusConflict, api.Error("El email ya está registrado"))
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo crear el usuario"))
		return
	}

	u, err := h.userRepo.Create(c.Request.Context(), p.Nombre, req.Email, passwordHash, auth.RoleSocio, &id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo crear el usuario"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Usuario creado correctamente", "user": u})
}

// Profile godoc
// @Summary      Own profile
// @Description  Returns the authenticated socio's person row with membership summary.
// @Tags         socios
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]SocioWithMembership
// @Failure      404  {object}  api.ErrorResponse
// @Router       /perfil [get]
func (h *Handler) Profile(c *gin.Context) {
	personaID, exists := auth.GetPersonaID(c)
	if !exists {
		c.JSON(http.StatusNotFound, api.Error("La cuenta no tiene un socio asociado"))
		return
	}

	socio, err := h.repo.GetSocioWithMembership(c.Request.Context(), personaID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Error("Socio no encontrado"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"socio": socio})
}
