package service

import (
	"context"
	"fmt"

	"santa/config"
	"santa/events"
	"santa/models"
)

// gameService implements the GameService interface
type gameService struct {
	uowFactory UnitOfWorkFactory
	config     *config.Config
}

// NewGameService creates a new game lifecycle service
func NewGameService(uowFactory UnitOfWorkFactory, cfg *config.Config) GameService {
	return &gameService{
		uowFactory: uowFactory,
		config:     cfg,
	}
}

// Draw pairs every ready player with a recipient and closes registration.
// The ready-set read, the assignment writes and both status flags commit as
// one transaction, so a concurrent registration either lands entirely
// before the draw or not at all.
func (s *gameService) Draw(ctx context.Context) (*models.DrawResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.GameStateRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	if state.PairsAssigned {
		return nil, ErrAlreadyDrawn
	}

	ready, err := uow.PlayerRepository().GetReady(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get ready players: %w", err)
	}
	if len(ready) < 2 {
		return nil, &InsufficientPlayersError{Ready: len(ready)}
	}

	ids := make([]int64, len(ready))
	for i, player := range ready {
		ids[i] = player.ID
	}

	pairs, err := BuildDerangement(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDrawFailed, err)
	}

	for _, pair := range pairs {
		if err := uow.PlayerRepository().SetAssignedRecipient(ctx, pair.SantaID, pair.RecipientID); err != nil {
			return nil, fmt.Errorf("failed to assign recipient: %w", err)
		}
	}

	if err := uow.GameStateRepository().SetRegistrationOpen(ctx, false); err != nil {
		return nil, fmt.Errorf("failed to close registration: %w", err)
	}
	if err := uow.GameStateRepository().SetPairsAssigned(ctx, true); err != nil {
		return nil, fmt.Errorf("failed to mark pairs assigned: %w", err)
	}

	uow.EventBus().Publish(events.DrawCompletedEvent{
		PlayerCount: len(ready),
		Pairs:       pairs,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.DrawResult{
		PlayerCount: len(ready),
		Pairs:       pairs,
	}, nil
}

// PreviewDraw runs a draw over the current ready set without writing
// anything, so an admin can sanity-check the pairing logic.
func (s *gameService) PreviewDraw(ctx context.Context) ([]models.Pairing, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ready, err := uow.PlayerRepository().GetReady(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get ready players: %w", err)
	}
	if len(ready) < 2 {
		return nil, &InsufficientPlayersError{Ready: len(ready)}
	}

	ids := make([]int64, len(ready))
	byID := make(map[int64]*models.Player, len(ready))
	for i, player := range ready {
		ids[i] = player.ID
		byID[player.ID] = player
	}

	pairs, err := BuildDerangement(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDrawFailed, err)
	}

	pairings := make([]models.Pairing, len(pairs))
	for i, pair := range pairs {
		pairings[i] = models.Pairing{
			Santa:     byID[pair.SantaID],
			Recipient: byID[pair.RecipientID],
		}
	}

	return pairings, nil
}

// SoftReset clears every player's name, wish and assignment and reopens
// registration. Player rows survive, so the same Discord users keep their
// internal ids across rounds.
func (s *gameService) SoftReset(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.PlayerRepository().ClearRegistrationData(ctx); err != nil {
		return fmt.Errorf("failed to clear registration data: %w", err)
	}

	if err := s.reopenRegistration(ctx, uow); err != nil {
		return err
	}

	uow.EventBus().Publish(events.GameResetEvent{Hard: false})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// HardReset deletes every player and starts the game over. Irreversible.
func (s *gameService) HardReset(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.PlayerRepository().DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}

	if err := s.reopenRegistration(ctx, uow); err != nil {
		return err
	}

	uow.EventBus().Publish(events.GameResetEvent{Hard: true})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *gameService) reopenRegistration(ctx context.Context, uow UnitOfWork) error {
	if err := uow.GameStateRepository().SetRegistrationOpen(ctx, true); err != nil {
		return fmt.Errorf("failed to reopen registration: %w", err)
	}
	if err := uow.GameStateRepository().SetPairsAssigned(ctx, false); err != nil {
		return fmt.Errorf("failed to clear pairs-assigned flag: %w", err)
	}
	return nil
}

// Status returns the game state together with player counts.
func (s *gameService) Status(ctx context.Context) (*models.GameStatus, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.GameStateRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}

	all, err := uow.PlayerRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	ready, err := uow.PlayerRepository().GetReady(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get ready players: %w", err)
	}

	return &models.GameStatus{
		RegistrationOpen: state.RegistrationOpen,
		PairsAssigned:    state.PairsAssigned,
		TotalPlayers:     len(all),
		ReadyPlayers:     len(ready),
	}, nil
}

// ListPlayers returns every player in creation order.
func (s *gameService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	players, err := uow.PlayerRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	return players, nil
}

// ListPairings returns the persisted pairing resolved to player records.
// Players without an assignment are skipped, so before a draw the result is
// empty.
func (s *gameService) ListPairings(ctx context.Context) ([]models.Pairing, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	players, err := uow.PlayerRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	byID := make(map[int64]*models.Player, len(players))
	for _, player := range players {
		byID[player.ID] = player
	}

	var pairings []models.Pairing
	for _, santa := range players {
		if santa.AssignedRecipientID == nil {
			continue
		}
		recipient, ok := byID[*santa.AssignedRecipientID]
		if !ok {
			continue
		}
		pairings = append(pairings, models.Pairing{
			Santa:     santa,
			Recipient: recipient,
		})
	}

	return pairings, nil
}

// IsAdmin checks the administrator allow-list from configuration.
func (s *gameService) IsAdmin(discordID int64) bool {
	return s.config.IsAdmin(discordID)
}
