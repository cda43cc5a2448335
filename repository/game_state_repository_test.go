package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"santa/repository/testutil"
)

func TestGameStateRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGameStateRepository(testDB.DB)
	ctx := context.Background()

	t.Run("fresh database starts open and undrawn", func(t *testing.T) {
		state, err := repo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.True(t, state.RegistrationOpen)
		assert.False(t, state.PairsAssigned)
	})

	t.Run("close registration", func(t *testing.T) {
		err := repo.SetRegistrationOpen(ctx, false)
		require.NoError(t, err)

		state, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.False(t, state.RegistrationOpen)
		assert.False(t, state.PairsAssigned)
	})

	t.Run("mark pairs assigned", func(t *testing.T) {
		err := repo.SetPairsAssigned(ctx, true)
		require.NoError(t, err)

		state, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.False(t, state.RegistrationOpen)
		assert.True(t, state.PairsAssigned)
	})

	t.Run("reopen after reset", func(t *testing.T) {
		require.NoError(t, repo.SetRegistrationOpen(ctx, true))
		require.NoError(t, repo.SetPairsAssigned(ctx, false))

		state, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.True(t, state.RegistrationOpen)
		assert.False(t, state.PairsAssigned)
	})
}
