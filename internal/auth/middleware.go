package auth

import (
	"errors"
	"net/http"
	"strings"

	"gymdesk/internal/api"

	"github.com/gin-gonic/gin"
)

// Middleware validates the bearer token, rejects revoked tokens and puts
// the caller's identity into the gin context. revocation may be nil in
// tests that do not exercise logout.
func Middleware(secret string, revocation *RevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, api.Error("No autenticado"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			c.JSON(http.StatusUnauthorized, api.Error("Formato de autorización inválido"))
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, api.Error("Token vacío"))
			c.Abort()
			return
		}

		claims, err := ValidateToken(tokenString, secret)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, api.Error("Sesión expirada"))
			default:
				c.JSON(http.StatusUnauthorized, api.Error("Token inválido"))
			}
			c.Abort()
			return
		}

		if revocation != nil {
			revoked, err := revocation.IsRevoked(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				c.JSON(http.StatusUnauthorized, api.Error("Sesión cerrada"))
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Set("token_jti", claims.ID)
		c.Set("token_exp", claims.ExpiresAt.Time)
		if claims.PersonaID != nil {
			c.Set("persona_id", *claims.PersonaID)
		}

		c.Next()
	}
}

// RequireRole gates a route group to the given roles. It is the server-side
// counterpart of the client's role gate: the client redirect is a UX nicety,
// this is the actual boundary.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, api.Error("No autenticado"))
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, api.Error("Rol inválido"))
			c.Abort()
			return
		}

		if _, ok := allowed[roleStr]; !ok {
			c.JSON(http.StatusForbidden, api.Error("No tiene permisos para esta operación"))
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}

	id, ok := userID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}

func GetRole(c *gin.Context) string {
	role, _ := c.Get("user_role")
	if s, ok := role.(string); ok {
		return s
	}
	return ""
}

// GetPersonaID returns the person linked to the authenticated account.
// Staff and owner accounts may have no linked person.
func GetPersonaID(c *gin.Context) (int, bool) {
	personaID, exists := c.Get("persona_id")
	if !exists {
		return 0, false
	}

	id, ok := personaID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}
