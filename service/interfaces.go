package service

import (
	"context"

	"santa/events"
	"santa/models"
)

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	// GetByDiscordID retrieves a player by their Discord ID, nil if absent
	GetByDiscordID(ctx context.Context, discordID int64) (*models.Player, error)

	// GetByID retrieves a player by internal ID, nil if absent
	GetByID(ctx context.Context, id int64) (*models.Player, error)

	// Create inserts a new player with no name, wish or assignment
	Create(ctx context.Context, discordID int64, username string) (*models.Player, error)

	// SetDisplayName sets the display name for a player
	SetDisplayName(ctx context.Context, discordID int64, name string) error

	// SetWish sets the gift wish for a player
	SetWish(ctx context.Context, discordID int64, wish string) error

	// SetAssignedRecipient records who a santa gifts
	SetAssignedRecipient(ctx context.Context, santaID, recipientID int64) error

	// GetAll returns every player in creation order
	GetAll(ctx context.Context) ([]*models.Player, error)

	// GetReady returns players with both display name and wish set, in
	// creation order
	GetReady(ctx context.Context) ([]*models.Player, error)

	// ClearRegistrationData nulls out name, wish and assignment for every
	// player while keeping the rows
	ClearRegistrationData(ctx context.Context) error

	// DeleteAll removes every player row
	DeleteAll(ctx context.Context) error
}

// GameStateRepository defines the interface for the singleton game state row
type GameStateRepository interface {
	// Get returns the current game state
	Get(ctx context.Context) (*models.GameState, error)

	// SetRegistrationOpen updates the registration flag
	SetRegistrationOpen(ctx context.Context, open bool) error

	// SetPairsAssigned updates the pairs-assigned flag
	SetPairsAssigned(ctx context.Context, assigned bool) error
}

// RegistrationService drives the per-player registration flow
type RegistrationService interface {
	// StartRegistration creates the player on first contact and reports
	// which registration step comes next
	StartRegistration(ctx context.Context, discordID int64, username string) (*models.Player, error)

	// SetDisplayName records the player's display name
	SetDisplayName(ctx context.Context, discordID int64, name string) (*models.Player, error)

	// SetWish records the player's gift wish
	SetWish(ctx context.Context, discordID int64, wish string) (*models.Player, error)

	// GetAssignment returns the player this santa gifts
	GetAssignment(ctx context.Context, discordID int64) (*models.Player, error)
}

// GameService drives the game lifecycle
type GameService interface {
	// Draw assigns every ready player a recipient and closes registration
	Draw(ctx context.Context) (*models.DrawResult, error)

	// PreviewDraw builds a pairing over the current ready set without
	// persisting anything
	PreviewDraw(ctx context.Context) ([]models.Pairing, error)

	// SoftReset clears names, wishes and assignments but keeps player rows
	SoftReset(ctx context.Context) error

	// HardReset deletes every player and reopens registration
	HardReset(ctx context.Context) error

	// Status returns the game state with player counts
	Status(ctx context.Context) (*models.GameStatus, error)

	// ListPlayers returns every player in creation order
	ListPlayers(ctx context.Context) ([]*models.Player, error)

	// ListPairings returns the persisted pairing resolved to players
	ListPairings(ctx context.Context) ([]models.Pairing, error)

	// IsAdmin checks the administrator allow-list
	IsAdmin(discordID int64) bool
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	PlayerRepository() PlayerRepository
	GameStateRepository() GameStateRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
