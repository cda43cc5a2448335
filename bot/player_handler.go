package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"santa/models"
)

// handleJoin handles the /join slash command
func (b *Bot) handleJoin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, username, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error resolving user for join: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	player, err := b.registrationService.StartRegistration(ctx, discordID, username)
	if err != nil {
		log.Printf("Error registering player %d: %v", discordID, err)
		b.respondWithError(s, i, userFacingMessage(err))
		return
	}

	switch player.RegistrationStep() {
	case models.RegistrationStepNew:
		b.respondEphemeral(s, i, "🎄 Welcome to secret santa! Set the name your santa will see with `/name`.")
	case models.RegistrationStepNameSet:
		b.respondEphemeral(s, i, fmt.Sprintf("You're already in as **%s**. Tell your santa what you wish for with `/wish`.", *player.DisplayName))
	case models.RegistrationStepReady:
		b.respondEphemeral(s, i, fmt.Sprintf("You're all set, **%s**! Wait for the draw.", *player.DisplayName))
	}
}

// handleName handles the /name slash command
func (b *Bot) handleName(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	options := i.ApplicationCommandData().Options
	if len(options) != 1 {
		b.respondWithError(s, i, "Please provide a name.")
		return
	}
	name := options[0].StringValue()

	discordID, _, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error resolving user for name: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	player, err := b.registrationService.SetDisplayName(ctx, discordID, name)
	if err != nil {
		log.Printf("Error setting name for player %d: %v", discordID, err)
		b.respondWithError(s, i, userFacingMessage(err))
		return
	}

	if player.Wish == nil {
		b.respondEphemeral(s, i, fmt.Sprintf("Nice to meet you, **%s**! Now tell your santa what you wish for with `/wish`.", *player.DisplayName))
	} else {
		b.respondEphemeral(s, i, fmt.Sprintf("Name updated to **%s**.", *player.DisplayName))
	}
}

// handleWish handles the /wish slash command
func (b *Bot) handleWish(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	options := i.ApplicationCommandData().Options
	if len(options) != 1 {
		b.respondWithError(s, i, "Please provide a wish.")
		return
	}
	wish := options[0].StringValue()

	discordID, _, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error resolving user for wish: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	player, err := b.registrationService.SetWish(ctx, discordID, wish)
	if err != nil {
		log.Printf("Error setting wish for player %d: %v", discordID, err)
		b.respondWithError(s, i, userFacingMessage(err))
		return
	}

	b.respondEphemeral(s, i, fmt.Sprintf("🎁 Wish saved: _%s_. You're in the draw, **%s**!", *player.Wish, *player.DisplayName))
}

// handleMyGiftee handles the /mygiftee slash command
func (b *Bot) handleMyGiftee(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, _, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error resolving user for mygiftee: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	giftee, err := b.registrationService.GetAssignment(ctx, discordID)
	if err != nil {
		log.Printf("Error looking up assignment for player %d: %v", discordID, err)
		b.respondWithError(s, i, userFacingMessage(err))
		return
	}

	b.respondEphemeral(s, i, formatAssignment(giftee))
}

func formatAssignment(giftee *models.Player) string {
	name := giftee.Username
	if giftee.DisplayName != nil {
		name = *giftee.DisplayName
	}
	if giftee.Wish != nil {
		return fmt.Sprintf("🎅 You are the santa of **%s**. Their wish: _%s_", name, *giftee.Wish)
	}
	return fmt.Sprintf("🎅 You are the santa of **%s**. They haven't shared a wish.", name)
}
