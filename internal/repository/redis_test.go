package repository

import (
	"testing"

	"github.com/playforge/gameroom-backend/internal/apperror"
	"github.com/playforge/gameroom-backend/internal/entity"
	"github.com/playforge/gameroom-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisAccounts_RoundTrip(t *testing.T) {
	ctx, st := suite.New(t)

	accounts := NewRedisAccountRepository(st.Storage)

	// Given: a stored account
	require.NoError(t, accounts.Create(ctx, "alice", "p1"))

	// When: creating it again with another password
	err := accounts.Create(ctx, "alice", "other")

	// Then: the create fails and the stored password is untouched
	require.ErrorIs(t, err, apperror.ErrAccountExists)
	require.NoError(t, accounts.Validate(ctx, "alice", "p1"))
	assert.ErrorIs(t, accounts.Validate(ctx, "alice", "wrong"), apperror.ErrWrongPassword)
}

func TestRedisAccounts_DeleteAndList(t *testing.T) {
	ctx, st := suite.New(t)

	accounts := NewRedisAccountRepository(st.Storage)

	require.NoError(t, accounts.Create(ctx, "bob", "p2"))
	require.NoError(t, accounts.Create(ctx, "alice", "p1"))

	all, err := accounts.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Account{
		{Username: "alice", Password: "p1"},
		{Username: "bob", Password: "p2"},
	}, all)

	assert.ErrorIs(t, accounts.Delete(ctx, "nobody", "p1"), apperror.ErrAccountNotFound)
	require.NoError(t, accounts.Delete(ctx, "bob", "p2"))

	all, err = accounts.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Account{{Username: "alice", Password: "p1"}}, all)
}
