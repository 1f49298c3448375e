package membership

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The membresia dialog sends id_socio and id_plan as strings.
func TestCreateMembresiaRequestBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	var bound CreateMembresiaRequest
	router.POST("/", func(c *gin.Context) {
		bound = CreateMembresiaRequest{}
		if err := c.ShouldBindJSON(&bound); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("String ids bind", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"id_socio": "7", "id_plan": "2", "fecha_inicio": "2026-09-01"}`
		req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 7, bound.IDSocio.Int())
		assert.Equal(t, 2, bound.IDPlan.Int())
	})

	t.Run("Numeric ids bind", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"id_socio": 7, "id_plan": 2}`
		req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Missing plan fails required", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"id_socio": "7"}`
		req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
