package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"santa/database"
	"santa/models"
	"santa/service"
)

const playerColumns = `id, discord_id, username, display_name, wish, assigned_recipient_id, created_at, updated_at`

// PlayerRepository implements the service.PlayerRepository interface
type PlayerRepository struct {
	q queryable
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{q: db.Pool}
}

// newPlayerRepositoryWithTx creates a new player repository bound to a transaction
func newPlayerRepositoryWithTx(tx queryable) *PlayerRepository {
	return &PlayerRepository{q: tx}
}

func scanPlayer(row pgx.Row) (*models.Player, error) {
	var player models.Player
	err := row.Scan(
		&player.ID,
		&player.DiscordID,
		&player.Username,
		&player.DisplayName,
		&player.Wish,
		&player.AssignedRecipientID,
		&player.CreatedAt,
		&player.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// GetByDiscordID retrieves a player by their Discord ID, nil if absent
func (r *PlayerRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE discord_id = $1`, playerColumns)

	player, err := scanPlayer(r.q.QueryRow(ctx, query, discordID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by discord ID %d: %w", discordID, err)
	}

	return player, nil
}

// GetByID retrieves a player by internal ID, nil if absent
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE id = $1`, playerColumns)

	player, err := scanPlayer(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID %d: %w", id, err)
	}

	return player, nil
}

// Create inserts a new player with no display name, wish or assignment
func (r *PlayerRepository) Create(ctx context.Context, discordID int64, username string) (*models.Player, error) {
	query := fmt.Sprintf(`
		INSERT INTO players (discord_id, username)
		VALUES ($1, $2)
		RETURNING %s
	`, playerColumns)

	player, err := scanPlayer(r.q.QueryRow(ctx, query, discordID, username))
	if err != nil {
		return nil, fmt.Errorf("failed to create player with discord ID %d: %w", discordID, err)
	}

	return player, nil
}

// SetDisplayName sets the display name for a player
func (r *PlayerRepository) SetDisplayName(ctx context.Context, discordID int64, name string) error {
	query := `
		UPDATE players
		SET display_name = $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, name, discordID)
	if err != nil {
		return fmt.Errorf("failed to set display name for player %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return service.ErrPlayerNotFound
	}

	return nil
}

// SetWish sets the gift wish for a player
func (r *PlayerRepository) SetWish(ctx context.Context, discordID int64, wish string) error {
	query := `
		UPDATE players
		SET wish = $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, wish, discordID)
	if err != nil {
		return fmt.Errorf("failed to set wish for player %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return service.ErrPlayerNotFound
	}

	return nil
}

// SetAssignedRecipient records who a santa gifts
func (r *PlayerRepository) SetAssignedRecipient(ctx context.Context, santaID, recipientID int64) error {
	query := `
		UPDATE players
		SET assigned_recipient_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, recipientID, santaID)
	if err != nil {
		return fmt.Errorf("failed to set recipient for player %d: %w", santaID, err)
	}

	if result.RowsAffected() == 0 {
		return service.ErrPlayerNotFound
	}

	return nil
}

// GetAll returns every player in creation order
func (r *PlayerRepository) GetAll(ctx context.Context) ([]*models.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players ORDER BY id`, playerColumns)

	return r.queryPlayers(ctx, query)
}

// GetReady returns players with both display name and wish set, in creation order
func (r *PlayerRepository) GetReady(ctx context.Context) ([]*models.Player, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM players
		WHERE display_name IS NOT NULL
		  AND wish IS NOT NULL
		ORDER BY id
	`, playerColumns)

	return r.queryPlayers(ctx, query)
}

func (r *PlayerRepository) queryPlayers(ctx context.Context, query string) ([]*models.Player, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	return players, nil
}

// ClearRegistrationData nulls out name, wish and assignment for every
// player while keeping the rows. Used by soft reset.
func (r *PlayerRepository) ClearRegistrationData(ctx context.Context) error {
	query := `
		UPDATE players
		SET display_name = NULL,
		    wish = NULL,
		    assigned_recipient_id = NULL,
		    updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to clear registration data: %w", err)
	}

	return nil
}

// DeleteAll removes every player row. Used by hard reset.
func (r *PlayerRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}

	return nil
}
