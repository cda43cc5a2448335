package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"santa/events"
	"santa/models"
)

func newRegistrationServiceMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockPlayerRepository, *MockGameStateRepository, *MockEventPublisher) {
	mockFactory := new(MockUnitOfWorkFactory)
	mockUoW := new(MockUnitOfWork)
	mockPlayerRepo := new(MockPlayerRepository)
	mockGameStateRepo := new(MockGameStateRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockPlayerRepo, mockGameStateRepo, mockEventBus)
	mockFactory.On("Create").Return(mockUoW)

	return mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, mockEventBus
}

func openState() *models.GameState {
	return &models.GameState{RegistrationOpen: true, PairsAssigned: false}
}

func closedState() *models.GameState {
	return &models.GameState{RegistrationOpen: false, PairsAssigned: true}
}

func TestRegistrationService_StartRegistration_NewPlayer(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, _ := newRegistrationServiceMocks()

	service := NewRegistrationService(mockFactory)

	newPlayer := &models.Player{ID: 1, DiscordID: 100, Username: "alice"}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGameStateRepo.On("Get", ctx).Return(openState(), nil)
	mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(nil, nil)
	mockPlayerRepo.On("Create", ctx, int64(100), "alice").Return(newPlayer, nil)

	player, err := service.StartRegistration(ctx, 100, "alice")

	require.NoError(t, err)
	assert.Equal(t, newPlayer, player)
	assert.Equal(t, models.RegistrationStepNew, player.RegistrationStep())

	mockUoW.AssertExpectations(t)
	mockPlayerRepo.AssertExpectations(t)
}

func TestRegistrationService_StartRegistration_ExistingPlayer(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, _ := newRegistrationServiceMocks()

	service := NewRegistrationService(mockFactory)

	name := "Alice A."
	existing := &models.Player{ID: 1, DiscordID: 100, Username: "alice", DisplayName: &name}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGameStateRepo.On("Get", ctx).Return(openState(), nil)
	mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(existing, nil)

	player, err := service.StartRegistration(ctx, 100, "alice")

	require.NoError(t, err)
	assert.Equal(t, existing, player)
	assert.Equal(t, models.RegistrationStepNameSet, player.RegistrationStep())

	mockPlayerRepo.AssertNotCalled(t, "Create")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestRegistrationService_StartRegistration_ClosedNewPlayer(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, _ := newRegistrationServiceMocks()

	service := NewRegistrationService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGameStateRepo.On("Get", ctx).Return(closedState(), nil)
	mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(nil, nil)

	player, err := service.StartRegistration(ctx, 100, "alice")

	assert.ErrorIs(t, err, ErrRegistrationClosed)
	assert.Nil(t, player)
	mockPlayerRepo.AssertNotCalled(t, "Create")
}

func TestRegistrationService_StartRegistration_ClosedReadyPlayer(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, _ := newRegistrationServiceMocks()

	service := NewRegistrationService(mockFactory)

	ready := readyPlayer(1, 100, "alice", "book")

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGameStateRepo.On("Get", ctx).Return(closedState(), nil)
	mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(ready, nil)

	player, err := service.StartRegistration(ctx, 100, "alice")

	// Ready players still get their record back so they can query their
	// assignment.
	require.NoError(t, err)
	assert.Equal(t, ready, player)
}

func TestRegistrationService_SetDisplayName(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, _ := newRegistrationServiceMocks()

	service := NewRegistrationService(mockFactory)

	existing := &models.Player{ID: 1, DiscordID: 100, Username: "alice"}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGameStateRepo.On("Get", ctx).Return(openState(), nil)
	mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(existing, nil)
	mockPlayerRepo.On("SetDisplayName", ctx, int64(100), "Alice A.").Return(nil)

	player, err := service.SetDisplayName(ctx, 100, "  Alice A.  ")

	require.NoError(t, err)
	require.NotNil(t, player.DisplayName)
	assert.Equal(t, "Alice A.", *player.DisplayName)
	assert.Equal(t, models.RegistrationStepNameSet, player.RegistrationStep())

	mockPlayerRepo.AssertExpectations(t)
}

func TestRegistrationService_SetDisplayName_InvalidInput(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockPlayerRepo, _, _ := newRegistrationServiceMocks()

	service := NewRegistrationService(mockFactory)

	for _, input := range []string{"", "   ", "\t\n", "/start", "  /draw  "} {
		player, err := service.SetDisplayName(ctx, 100, input)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", input)
		assert.Nil(t, player)
	}

	// Rejected input never touches storage.
	mockPlayerRepo.AssertNotCalled(t, "SetDisplayName")
}

func TestRegistrationService_SetDisplayName_RegistrationClosed(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, _ := newRegistrationServiceMocks()

	service := NewRegistrationService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGameStateRepo.On("Get", ctx).Return(closedState(), nil)

	player, err := service.SetDisplayName(ctx, 100, "Alice")

	assert.ErrorIs(t, err, ErrRegistrationClosed)
	assert.Nil(t, player)
	mockPlayerRepo.AssertNotCalled(t, "SetDisplayName")
}

func TestRegistrationService_SetWish(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, mockEventBus := newRegistrationServiceMocks()

	service := NewRegistrationService(mockFactory)

	name := "Alice A."
	existing := &models.Player{ID: 1, DiscordID: 100, Username: "alice", DisplayName: &name}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGameStateRepo.On("Get", ctx).Return(openState(), nil)
	mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(existing, nil)
	mockPlayerRepo.On("SetWish", ctx, int64(100), "a good book").Return(nil)

	mockEventBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		registered, ok := e.(events.PlayerRegisteredEvent)
		return ok && registered.PlayerID == 1 && registered.DisplayName == "Alice A."
	})).Return()

	player, err := service.SetWish(ctx, 100, " a good book ")

	require.NoError(t, err)
	assert.True(t, player.IsReady())
	assert.Equal(t, models.RegistrationStepReady, player.RegistrationStep())

	mockPlayerRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestRegistrationService_SetWish_BeforeName(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, _ := newRegistrationServiceMocks()

	service := NewRegistrationService(mockFactory)

	existing := &models.Player{ID: 1, DiscordID: 100, Username: "alice"}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGameStateRepo.On("Get", ctx).Return(openState(), nil)
	mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(existing, nil)

	player, err := service.SetWish(ctx, 100, "a good book")

	// The wish step is unreachable without passing through the name step.
	assert.ErrorIs(t, err, ErrNameNotSet)
	assert.Nil(t, player)
	mockPlayerRepo.AssertNotCalled(t, "SetWish")
}

func TestRegistrationService_SetWish_UnknownPlayer(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, _ := newRegistrationServiceMocks()

	service := NewRegistrationService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGameStateRepo.On("Get", ctx).Return(openState(), nil)
	mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(nil, nil)

	player, err := service.SetWish(ctx, 100, "a good book")

	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Nil(t, player)
}

func TestRegistrationService_GetAssignment(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, _ := newRegistrationServiceMocks()

	service := NewRegistrationService(mockFactory)

	santa := readyPlayer(1, 100, "alice", "book")
	recipient := readyPlayer(2, 200, "bob", "socks")
	santa.AssignedRecipientID = &recipient.ID

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(santa, nil)
	mockGameStateRepo.On("Get", ctx).Return(closedState(), nil)
	mockPlayerRepo.On("GetByID", ctx, int64(2)).Return(recipient, nil)

	got, err := service.GetAssignment(ctx, 100)

	require.NoError(t, err)
	assert.Equal(t, recipient, got)
}

func TestRegistrationService_GetAssignment_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("registration incomplete", func(t *testing.T) {
		mockFactory, mockUoW, mockPlayerRepo, _, _ := newRegistrationServiceMocks()
		service := NewRegistrationService(mockFactory)

		name := "Alice"
		incomplete := &models.Player{ID: 1, DiscordID: 100, DisplayName: &name}

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(incomplete, nil)

		_, err := service.GetAssignment(ctx, 100)
		assert.ErrorIs(t, err, ErrRegistrationIncomplete)
	})

	t.Run("draw not yet run", func(t *testing.T) {
		mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, _ := newRegistrationServiceMocks()
		service := NewRegistrationService(mockFactory)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(readyPlayer(1, 100, "alice", "book"), nil)
		mockGameStateRepo.On("Get", ctx).Return(openState(), nil)

		_, err := service.GetAssignment(ctx, 100)
		assert.ErrorIs(t, err, ErrDrawNotYetRun)
	})

	t.Run("no assignment recorded", func(t *testing.T) {
		mockFactory, mockUoW, mockPlayerRepo, mockGameStateRepo, _ := newRegistrationServiceMocks()
		service := NewRegistrationService(mockFactory)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(readyPlayer(1, 100, "alice", "book"), nil)
		mockGameStateRepo.On("Get", ctx).Return(closedState(), nil)

		_, err := service.GetAssignment(ctx, 100)
		assert.ErrorIs(t, err, ErrNoAssignment)
	})

	t.Run("unknown player", func(t *testing.T) {
		mockFactory, mockUoW, mockPlayerRepo, _, _ := newRegistrationServiceMocks()
		service := NewRegistrationService(mockFactory)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockPlayerRepo.On("GetByDiscordID", ctx, int64(100)).Return(nil, nil)

		_, err := service.GetAssignment(ctx, 100)
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})
}

func TestNormalizeInput(t *testing.T) {
	got, err := normalizeInput("  hello world  ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	for _, input := range []string{"", " ", "\n", "/command", " /command"} {
		_, err := normalizeInput(input)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", input)
	}
}
