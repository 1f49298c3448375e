package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345"

func TestHashPassword(t *testing.T) {
	t.Run("Successfully hash password", func(t *testing.T) {
		password := "miClaveSegura123"
		hashed, err := HashPassword(password)

		assert.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, password, hashed)
	})

	t.Run("Different hashes for same password", func(t *testing.T) {
		hash1, _ := HashPassword("mismaClave")
		hash2, _ := HashPassword("mismaClave")

		assert.NotEqual(t, hash1, hash2)
	})
}

func TestCheckPassword(t *testing.T) {
	password := "claveCorrecta"
	hashed, _ := HashPassword(password)

	t.Run("Correct password", func(t *testing.T) {
		assert.True(t, CheckPassword(hashed, password))
	})

	t.Run("Incorrect password", func(t *testing.T) {
		assert.False(t, CheckPassword(hashed, "claveIncorrecta"))
	})

	t.Run("Empty password", func(t *testing.T) {
		assert.False(t, CheckPassword(hashed, ""))
	})
}

func TestGenerateToken(t *testing.T) {
	personaID := 7

	t.Run("Successfully generate token", func(t *testing.T) {
		token, err := GenerateToken(1, "socio@example.com", RoleSocio, &personaID, testSecret)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Empty secret fails", func(t *testing.T) {
		_, err := GenerateToken(1, "socio@example.com", RoleSocio, nil, "")
		assert.ErrorIs(t, err, ErrEmptyJWTSecret)
	})

	t.Run("Tokens carry unique jti", func(t *testing.T) {
		t1, err := GenerateToken(1, "a@example.com", RoleOwner, nil, testSecret)
		require.NoError(t, err)
		t2, err := GenerateToken(1, "a@example.com", RoleOwner, nil, testSecret)
		require.NoError(t, err)

		c1, err := ValidateToken(t1, testSecret)
		require.NoError(t, err)
		c2, err := ValidateToken(t2, testSecret)
		require.NoError(t, err)

		assert.NotEqual(t, c1.ID, c2.ID)
	})
}

func TestValidateToken(t *testing.T) {
	personaID := 3

	t.Run("Valid token round trip", func(t *testing.T) {
		token, err := GenerateToken(42, "socio@example.com", RoleSocio, &personaID, testSecret)
		require.NoError(t, err)

		claims, err := ValidateToken(token, testSecret)
		require.NoError(t, err)

		assert.Equal(t, 42, claims.UserID)
		assert.Equal(t, "socio@example.com", claims.Email)
		assert.Equal(t, RoleSocio, claims.Role)
		require.NotNil(t, claims.PersonaID)
		assert.Equal(t, 3, *claims.PersonaID)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("Wrong secret rejected", func(t *testing.T) {
		token, err := GenerateToken(1, "a@example.com", RoleStaff, nil, testSecret)
		require.NoError(t, err)

		_, err = ValidateToken(token, "otro-secreto")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token rejected", func(t *testing.T) {
		claims := JWTClaims{
			UserID: 1,
			Email:  "a@example.com",
			Role:   RoleSocio,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "gymdesk-api",
				Audience:  []string{"gymdesk-users"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ValidateToken(signed, testSecret)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		_, err := ValidateToken("not-a-token", testSecret)
		assert.Error(t, err)
	})
}
