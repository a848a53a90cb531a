package repository

import (
	"context"
	"testing"

	"github.com/playforge/gameroom-backend/internal/apperror"
	"github.com/playforge/gameroom-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAccounts_RoundTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("Create then validate succeeds, wrong password fails", func(t *testing.T) {
		accounts := NewMemoryAccountRepository()

		require.NoError(t, accounts.Create(ctx, "alice", "p1"))
		require.NoError(t, accounts.Validate(ctx, "alice", "p1"))

		err := accounts.Validate(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, apperror.ErrWrongPassword)
	})

	t.Run("Duplicate create fails without mutating the stored password", func(t *testing.T) {
		accounts := NewMemoryAccountRepository()
		require.NoError(t, accounts.Create(ctx, "alice", "p1"))

		err := accounts.Create(ctx, "alice", "other")

		require.ErrorIs(t, err, apperror.ErrAccountExists)
		assert.NoError(t, accounts.Validate(ctx, "alice", "p1"))
	})

	t.Run("Validate of an unknown account fails", func(t *testing.T) {
		accounts := NewMemoryAccountRepository()

		err := accounts.Validate(ctx, "nobody", "p1")

		assert.ErrorIs(t, err, apperror.ErrAccountNotFound)
	})

	t.Run("Delete requires matching credentials", func(t *testing.T) {
		accounts := NewMemoryAccountRepository()
		require.NoError(t, accounts.Create(ctx, "alice", "p1"))

		assert.ErrorIs(t, accounts.Delete(ctx, "alice", "wrong"), apperror.ErrWrongPassword)
		assert.ErrorIs(t, accounts.Delete(ctx, "nobody", "p1"), apperror.ErrAccountNotFound)

		require.NoError(t, accounts.Delete(ctx, "alice", "p1"))
		assert.ErrorIs(t, accounts.Validate(ctx, "alice", "p1"), apperror.ErrAccountNotFound)
	})

	t.Run("ListAll returns accounts ordered by username", func(t *testing.T) {
		accounts := NewMemoryAccountRepository()
		require.NoError(t, accounts.Create(ctx, "bob", "p2"))
		require.NoError(t, accounts.Create(ctx, "alice", "p1"))

		all, err := accounts.ListAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, []entity.Account{
			{Username: "alice", Password: "p1"},
			{Username: "bob", Password: "p2"},
		}, all)
	})
}
