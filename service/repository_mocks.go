package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"santa/events"
	"santa/models"
)

// MockPlayerRepository is a mock implementation of PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.Player, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) Create(ctx context.Context, discordID int64, username string) (*models.Player, error) {
	args := m.Called(ctx, discordID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) SetDisplayName(ctx context.Context, discordID int64, name string) error {
	args := m.Called(ctx, discordID, name)
	return args.Error(0)
}

func (m *MockPlayerRepository) SetWish(ctx context.Context, discordID int64, wish string) error {
	args := m.Called(ctx, discordID, wish)
	return args.Error(0)
}

func (m *MockPlayerRepository) SetAssignedRecipient(ctx context.Context, santaID, recipientID int64) error {
	args := m.Called(ctx, santaID, recipientID)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetAll(ctx context.Context) ([]*models.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetReady(ctx context.Context) ([]*models.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) ClearRegistrationData(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlayerRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockGameStateRepository is a mock implementation of GameStateRepository
type MockGameStateRepository struct {
	mock.Mock
}

func (m *MockGameStateRepository) Get(ctx context.Context) (*models.GameState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameState), args.Error(1)
}

func (m *MockGameStateRepository) SetRegistrationOpen(ctx context.Context, open bool) error {
	args := m.Called(ctx, open)
	return args.Error(0)
}

func (m *MockGameStateRepository) SetPairsAssigned(ctx context.Context, assigned bool) error {
	args := m.Called(ctx, assigned)
	return args.Error(0)
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// injected with SetRepositories before use.
type MockUnitOfWork struct {
	mock.Mock
	playerRepo    PlayerRepository
	gameStateRepo GameStateRepository
	eventBus      EventPublisher
}

// SetRepositories wires the repository mocks this unit of work hands out
func (m *MockUnitOfWork) SetRepositories(playerRepo PlayerRepository, gameStateRepo GameStateRepository, eventBus EventPublisher) {
	m.playerRepo = playerRepo
	m.gameStateRepo = gameStateRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) PlayerRepository() PlayerRepository {
	return m.playerRepo
}

func (m *MockUnitOfWork) GameStateRepository() GameStateRepository {
	return m.gameStateRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
