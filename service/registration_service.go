package service

import (
	"context"
	"fmt"
	"strings"

	"santa/events"
	"santa/models"
)

// registrationService implements the RegistrationService interface
type registrationService struct {
	uowFactory UnitOfWorkFactory
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(uowFactory UnitOfWorkFactory) RegistrationService {
	return &registrationService{
		uowFactory: uowFactory,
	}
}

// StartRegistration returns the player record for the Discord user, creating
// it on first contact while registration is open. When registration is
// closed, players who finished both steps still get their record back (so
// they can query their assignment); everyone else is turned away.
func (s *registrationService) StartRegistration(ctx context.Context, discordID int64, username string) (*models.Player, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.GameStateRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}

	player, err := uow.PlayerRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if !state.RegistrationOpen {
		if player != nil && player.IsReady() {
			return player, nil
		}
		return nil, ErrRegistrationClosed
	}

	if player != nil {
		return player, nil
	}

	player, err = uow.PlayerRepository().Create(ctx, discordID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return player, nil
}

// SetDisplayName records the player's display name, the first registration step.
func (s *registrationService) SetDisplayName(ctx context.Context, discordID int64, name string) (*models.Player, error) {
	name, err := normalizeInput(name)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.GameStateRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	if !state.RegistrationOpen {
		return nil, ErrRegistrationClosed
	}

	player, err := uow.PlayerRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	if err := uow.PlayerRepository().SetDisplayName(ctx, discordID, name); err != nil {
		return nil, fmt.Errorf("failed to set display name: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	player.DisplayName = &name
	return player, nil
}

// SetWish records the player's gift wish, the second registration step. The
// display name must already be set.
func (s *registrationService) SetWish(ctx context.Context, discordID int64, wish string) (*models.Player, error) {
	wish, err := normalizeInput(wish)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.GameStateRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	if !state.RegistrationOpen {
		return nil, ErrRegistrationClosed
	}

	player, err := uow.PlayerRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	if player.DisplayName == nil {
		return nil, ErrNameNotSet
	}

	if err := uow.PlayerRepository().SetWish(ctx, discordID, wish); err != nil {
		return nil, fmt.Errorf("failed to set wish: %w", err)
	}

	uow.EventBus().Publish(events.PlayerRegisteredEvent{
		PlayerID:    player.ID,
		DiscordID:   player.DiscordID,
		DisplayName: *player.DisplayName,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	player.Wish = &wish
	return player, nil
}

// GetAssignment returns the player this santa gifts. Requires completed
// registration and a finished draw.
func (s *registrationService) GetAssignment(ctx context.Context, discordID int64) (*models.Player, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	player, err := uow.PlayerRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	if !player.IsReady() {
		return nil, ErrRegistrationIncomplete
	}

	state, err := uow.GameStateRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	if !state.PairsAssigned {
		return nil, ErrDrawNotYetRun
	}

	// The draw contract guarantees an assignment here; handle the gap anyway.
	if player.AssignedRecipientID == nil {
		return nil, ErrNoAssignment
	}

	recipient, err := uow.PlayerRepository().GetByID(ctx, *player.AssignedRecipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient: %w", err)
	}
	if recipient == nil {
		return nil, ErrNoAssignment
	}

	return recipient, nil
}

// normalizeInput strips surrounding whitespace and rejects empty input or
// anything that looks like a command.
func normalizeInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrInvalidInput
	}
	if strings.HasPrefix(input, "/") {
		return "", ErrInvalidInput
	}
	return input, nil
}
