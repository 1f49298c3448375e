package reservation

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The web client serializes ids as strings, so both forms must bind.
func TestCreateReservaRequestBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	var bound CreateReservaRequest
	router.POST("/", func(c *gin.Context) {
		bound = CreateReservaRequest{}
		if err := c.ShouldBindJSON(&bound); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("String ids bind", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"id_clase_gym": "3", "fecha_reserva": "2026-09-01", "id_persona": "7"}`
		req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, bound.IDClaseGym.Int())
		require.NotNil(t, bound.IDPersona)
		assert.Equal(t, 7, bound.IDPersona.Int())
	})

	t.Run("Numeric ids bind", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"id_clase_gym": 3, "fecha_reserva": "2026-09-01", "id_persona": 7}`
		req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, bound.IDClaseGym.Int())
	})

	t.Run("Missing clase fails required", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"fecha_reserva": "2026-09-01"}`
		req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMarcarAsistenciaRequestBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	var bound MarcarAsistenciaRequest
	router.POST("/", func(c *gin.Context) {
		if err := c.ShouldBindJSON(&bound); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	body := `{"id_persona": "7", "id_clase_gym": "3", "id_reserva": "11"}`
	req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, bound.IDPersona.Int())
	require.NotNil(t, bound.IDReserva)
	assert.Equal(t, 11, bound.IDReserva.Int())
}
