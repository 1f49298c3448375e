package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevocationStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Revoking an already expired token is a no-op", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := NewRevocationStore(client)

		err := store.Revoke(ctx, "stale-jti", time.Now().Add(-time.Minute))
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("IsRevoked true when key exists", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := NewRevocationStore(client)

		mock.ExpectExists("revoked_tokens:abc123").SetVal(1)

		revoked, err := store.IsRevoked(ctx, "abc123")
		require.NoError(t, err)
		assert.True(t, revoked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("IsRevoked false when key missing", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := NewRevocationStore(client)

		mock.ExpectExists("revoked_tokens:abc123").SetVal(0)

		revoked, err := store.IsRevoked(ctx, "abc123")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("IsRevoked propagates redis errors", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := NewRevocationStore(client)

		mock.ExpectExists("revoked_tokens:abc123").SetErr(errors.New("connection refused"))

		_, err := store.IsRevoked(ctx, "abc123")
		assert.Error(t, err)
	})
}
