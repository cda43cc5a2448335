package bot

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// notifyDrawResults DMs every santa the player they drew. Runs after a draw
// has been committed
func (b *Bot) notifyDrawResults(ctx context.Context) error {
	pairings, err := b.gameService.ListPairings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pairings: %w", err)
	}

	notified := 0
	for _, pairing := range pairings {
		santaDiscordID := strconv.FormatInt(pairing.Santa.DiscordID, 10)

		channel, err := b.session.UserChannelCreate(santaDiscordID)
		if err != nil {
			log.Errorf("Failed to open DM with user %s: %v", santaDiscordID, err)
			continue
		}

		if _, err := b.session.ChannelMessageSend(channel.ID, formatAssignment(pairing.Recipient)); err != nil {
			log.Errorf("Failed to DM user %s: %v", santaDiscordID, err)
			continue
		}
		notified++
	}

	log.Infof("Draw notifications sent to %d of %d santas", notified, len(pairings))
	return nil
}
