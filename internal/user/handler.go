package user

import (
	"net/http"
	"time"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo       Repository
	jwtSecret  string
	revocation *auth.RevocationStore
}

func NewHandler(db *sqlx.DB, jwtSecret string, revocation *auth.RevocationStore) *Handler {
	return &Handler{
		repo:       NewRepository(db),
		jwtSecret:  jwtSecret,
		revocation: revocation,
	}
}

// Login godoc
// @Summary      Login
// @Description  Authenticates by email and password, returns the user and a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ValidationError(api.BindingErrors(err)))
		return
	}

	u, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		metrics.RecordLogin("failed")
		c.JSON(http.StatusUnauthorized, api.Error("Credenciales inválidas"))
		return
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		metrics.RecordLogin("failed")
		c.JSON(http.StatusUnauthorized, api.Error("Credenciales inválidas"))
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Email, u.RoleName, u.IDPersona, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("No se pudo generar el token"))
		return
	}

	metrics.RecordLogin("success")
	c.JSON(http.StatusOK, LoginResponse{User: *u, Token: token})
}

// Logout godoc
// @Summary      Logout
// @Description  Revokes the current bearer token.
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.MessageResponse
// @Failure      401  {object}  api.ErrorResponse
// @Router       /logout [post]
func (h *Handler) Logout(c *gin.Context) {
	jti := c.GetString("token_jti")
	exp, _ := c.Get("token_exp")

	expiresAt, ok := exp.(time.Time)
	if jti != "" && ok && h.revocation != nil {
		if err := h.revocation.Revoke(c.Request.Context(), jti, expiresAt); err != nil {
			c.JSON(http.StatusInternalServerError, api.Error("No se pudo cerrar la sesión"))
			return
		}
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Sesión cerrada correctamente"})
}

// GetUser godoc
// @Summary      Current identity
// @Description  Returns the authenticated user with its role, used by the client's role gate.
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  api.ErrorResponse
// @Router       /user [get]
func (h *Handler) GetUser(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.Error("No autenticado"))
		return
	}

	u, err := h.repo.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.Error("Usuario no encontrado"))
		return
	}

	c.JSON(http.StatusOK, UserResponse{User: *u})
}
