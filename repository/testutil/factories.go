package testutil

import (
	"time"

	"santa/models"
)

// CreateTestPlayer creates an unregistered test player
func CreateTestPlayer(id, discordID int64, username string) *models.Player {
	now := time.Now()
	return &models.Player{
		ID:        id,
		DiscordID: discordID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateReadyTestPlayer creates a test player with name and wish filled in
func CreateReadyTestPlayer(id, discordID int64, username, displayName, wish string) *models.Player {
	player := CreateTestPlayer(id, discordID, username)
	player.DisplayName = &displayName
	player.Wish = &wish
	return player
}
