package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"santa/config"
	"santa/events"
	"santa/repository"
	"santa/repository/testutil"
	"santa/service"
)

func setupGameServices(t *testing.T) (service.RegistrationService, service.GameService) {
	t.Helper()
	t.Setenv("ENVIRONMENT", "test")

	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(testDB.DB, bus)

	registrationService := service.NewRegistrationService(uowFactory)
	gameService := service.NewGameService(uowFactory, config.Get())

	return registrationService, gameService
}

func registerReadyPlayer(t *testing.T, svc service.RegistrationService, discordID int64, username, name, wish string) {
	t.Helper()
	ctx := context.Background()

	_, err := svc.StartRegistration(ctx, discordID, username)
	require.NoError(t, err)
	_, err = svc.SetDisplayName(ctx, discordID, name)
	require.NoError(t, err)
	_, err = svc.SetWish(ctx, discordID, wish)
	require.NoError(t, err)
}

func TestGameLifecycle_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	registrationService, gameService := setupGameServices(t)
	ctx := context.Background()

	t.Run("full game with three players", func(t *testing.T) {
		registerReadyPlayer(t, registrationService, 100, "alice", "Alice A.", "a good book")
		registerReadyPlayer(t, registrationService, 200, "bob", "Bob B.", "socks")
		registerReadyPlayer(t, registrationService, 300, "carol", "Carol C.", "chocolate")

		result, err := gameService.Draw(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, result.PlayerCount)
		require.Len(t, result.Pairs, 3)

		// Every santa gifts someone else and every player receives exactly once
		recipients := make(map[int64]int)
		for _, pair := range result.Pairs {
			assert.NotEqual(t, pair.SantaID, pair.RecipientID)
			recipients[pair.RecipientID]++
		}
		require.Len(t, recipients, 3)
		for _, count := range recipients {
			assert.Equal(t, 1, count)
		}

		// Draw closes registration and marks pairs assigned atomically
		status, err := gameService.Status(ctx)
		require.NoError(t, err)
		assert.False(t, status.RegistrationOpen)
		assert.True(t, status.PairsAssigned)
		assert.Equal(t, 3, status.TotalPlayers)
		assert.Equal(t, 3, status.ReadyPlayers)

		// Each player can look up their giftee
		assignment, err := registrationService.GetAssignment(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, assignment.DisplayName)
		assert.NotEqual(t, int64(100), assignment.DiscordID)

		// A second draw is rejected without touching the stored pairing
		_, err = gameService.Draw(ctx)
		assert.ErrorIs(t, err, service.ErrAlreadyDrawn)

		pairings, err := gameService.ListPairings(ctx)
		require.NoError(t, err)
		assert.Len(t, pairings, 3)
	})
}

func TestDraw_TooFewPlayers_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	registrationService, gameService := setupGameServices(t)
	ctx := context.Background()

	registerReadyPlayer(t, registrationService, 100, "alice", "Alice A.", "a good book")

	// Second player never finishes registration
	_, err := registrationService.StartRegistration(ctx, 200, "bob")
	require.NoError(t, err)
	_, err = registrationService.SetDisplayName(ctx, 200, "Bob B.")
	require.NoError(t, err)

	_, err = gameService.Draw(ctx)
	require.Error(t, err)

	var insufficientErr *service.InsufficientPlayersError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 1, insufficientErr.Ready)

	// The failed draw leaves the game untouched
	status, err := gameService.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.RegistrationOpen)
	assert.False(t, status.PairsAssigned)

	players, err := gameService.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)
	for _, player := range players {
		assert.Nil(t, player.AssignedRecipientID)
	}

	_, err = registrationService.GetAssignment(ctx, 100)
	assert.ErrorIs(t, err, service.ErrDrawNotYetRun)
}

func TestSoftReset_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	registrationService, gameService := setupGameServices(t)
	ctx := context.Background()

	registerReadyPlayer(t, registrationService, 100, "alice", "Alice A.", "a good book")
	registerReadyPlayer(t, registrationService, 200, "bob", "Bob B.", "socks")
	registerReadyPlayer(t, registrationService, 300, "carol", "Carol C.", "chocolate")
	registerReadyPlayer(t, registrationService, 400, "dave", "Dave D.", "coffee")

	_, err := gameService.Draw(ctx)
	require.NoError(t, err)

	err = gameService.SoftReset(ctx)
	require.NoError(t, err)

	// Registration reopens with the draw flag cleared
	status, err := gameService.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.RegistrationOpen)
	assert.False(t, status.PairsAssigned)
	assert.Equal(t, 4, status.TotalPlayers)
	assert.Equal(t, 0, status.ReadyPlayers)

	// Player rows survive but carry no registration data
	players, err := gameService.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 4)
	for _, player := range players {
		assert.Nil(t, player.DisplayName)
		assert.Nil(t, player.Wish)
		assert.Nil(t, player.AssignedRecipientID)
	}

	// Players re-register without creating duplicate rows
	player, err := registrationService.StartRegistration(ctx, 100, "alice")
	require.NoError(t, err)
	assert.Equal(t, players[0].ID, player.ID)

	_, err = registrationService.SetDisplayName(ctx, 100, "Alice Again")
	require.NoError(t, err)
	_, err = registrationService.SetWish(ctx, 100, "a new book")
	require.NoError(t, err)
}

func TestHardReset_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	registrationService, gameService := setupGameServices(t)
	ctx := context.Background()

	registerReadyPlayer(t, registrationService, 100, "alice", "Alice A.", "a good book")
	registerReadyPlayer(t, registrationService, 200, "bob", "Bob B.", "socks")

	players, err := gameService.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)
	oldID := players[0].ID

	_, err = gameService.Draw(ctx)
	require.NoError(t, err)

	err = gameService.HardReset(ctx)
	require.NoError(t, err)

	status, err := gameService.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.RegistrationOpen)
	assert.False(t, status.PairsAssigned)
	assert.Equal(t, 0, status.TotalPlayers)

	// A returning player starts over with a fresh internal id
	recreated, err := registrationService.StartRegistration(ctx, 100, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, oldID, recreated.ID)
}
