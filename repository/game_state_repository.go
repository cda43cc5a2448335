package repository

import (
	"context"
	"fmt"

	"santa/database"
	"santa/models"
)

// GameStateRepository implements the service.GameStateRepository interface.
// The game_state table holds exactly one row, seeded by migration.
type GameStateRepository struct {
	q queryable
}

// NewGameStateRepository creates a new game state repository
func NewGameStateRepository(db *database.DB) *GameStateRepository {
	return &GameStateRepository{q: db.Pool}
}

// newGameStateRepositoryWithTx creates a new game state repository bound to a transaction
func newGameStateRepositoryWithTx(tx queryable) *GameStateRepository {
	return &GameStateRepository{q: tx}
}

// Get returns the current game state
func (r *GameStateRepository) Get(ctx context.Context) (*models.GameState, error) {
	query := `SELECT registration_open, pairs_assigned FROM game_state WHERE id = 1`

	var state models.GameState
	err := r.q.QueryRow(ctx, query).Scan(&state.RegistrationOpen, &state.PairsAssigned)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}

	return &state, nil
}

// SetRegistrationOpen updates the registration flag
func (r *GameStateRepository) SetRegistrationOpen(ctx context.Context, open bool) error {
	query := `UPDATE game_state SET registration_open = $1 WHERE id = 1`

	if _, err := r.q.Exec(ctx, query, open); err != nil {
		return fmt.Errorf("failed to set registration_open: %w", err)
	}

	return nil
}

// SetPairsAssigned updates the pairs-assigned flag
func (r *GameStateRepository) SetPairsAssigned(ctx context.Context, assigned bool) error {
	query := `UPDATE game_state SET pairs_assigned = $1 WHERE id = 1`

	if _, err := r.q.Exec(ctx, query, assigned); err != nil {
		return fmt.Errorf("failed to set pairs_assigned: %w", err)
	}

	return nil
}
