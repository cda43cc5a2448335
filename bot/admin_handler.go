package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"santa/models"
)

// handleAdminCommand handles the /santa slash command
func (b *Bot) handleAdminCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, _, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error resolving user for admin command: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if !b.gameService.IsAdmin(discordID) {
		b.respondWithError(s, i, "Only game organizers can use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Invalid command usage")
		return
	}

	switch options[0].Name {
	case "players":
		b.handlePlayerList(s, i)
	case "status":
		b.handleStatus(s, i)
	case "draw":
		b.handleDraw(s, i)
	case "testdraw":
		b.handleTestDraw(s, i)
	case "pairs":
		b.handlePairs(s, i, discordID)
	case "reset":
		b.promptResetConfirmation(s, i, false)
	case "resetall":
		b.promptResetConfirmation(s, i, true)
	default:
		b.respondWithError(s, i, "Unknown subcommand")
	}
}

func (b *Bot) handlePlayerList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	players, err := b.gameService.ListPlayers(ctx)
	if err != nil {
		log.Printf("Error listing players: %v", err)
		b.respondWithError(s, i, userFacingMessage(err))
		return
	}

	if len(players) == 0 {
		b.respondEphemeral(s, i, "Nobody has joined yet.")
		return
	}

	// Players who haven't chosen a display name are shown under their
	// server nickname
	roster := formatRoster(players, func(discordID int64) string {
		return GetDisplayNameInt64(s, i.GuildID, discordID)
	})
	b.respondEphemeral(s, i, roster)
}

func formatRoster(players []*models.Player, resolveName func(discordID int64) string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Players (%d):**\n", len(players)))
	for _, player := range players {
		switch player.RegistrationStep() {
		case models.RegistrationStepReady:
			sb.WriteString(fmt.Sprintf("✅ **%s** (%s)\n", *player.DisplayName, player.Username))
		case models.RegistrationStepNameSet:
			sb.WriteString(fmt.Sprintf("📝 **%s** (%s), no wish yet\n", *player.DisplayName, player.Username))
		default:
			sb.WriteString(fmt.Sprintf("⏳ %s, no name yet\n", resolveName(player.DiscordID)))
		}
	}
	return sb.String()
}

func (b *Bot) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	status, err := b.gameService.Status(ctx)
	if err != nil {
		log.Printf("Error fetching game status: %v", err)
		b.respondWithError(s, i, userFacingMessage(err))
		return
	}

	registration := "open"
	if !status.RegistrationOpen {
		registration = "closed"
	}
	drawn := "not yet run"
	if status.PairsAssigned {
		drawn = "completed"
	}

	message := fmt.Sprintf("**Game status**\nRegistration: %s\nDraw: %s\nPlayers: %d joined, %d ready",
		registration, drawn, status.TotalPlayers, status.ReadyPlayers)
	b.respondEphemeral(s, i, message)
}

func (b *Bot) handleDraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	result, err := b.gameService.Draw(ctx)
	if err != nil {
		log.Printf("Error running draw: %v", err)
		b.respondWithError(s, i, userFacingMessage(err))
		return
	}

	log.Infof("Draw completed with %d players", result.PlayerCount)
	b.respond(s, i, fmt.Sprintf("🎄 The draw is done! **%d** santas have been told who they gift. Check your DMs!", result.PlayerCount))
}

func (b *Bot) handleTestDraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	pairings, err := b.gameService.PreviewDraw(ctx)
	if err != nil {
		log.Printf("Error previewing draw: %v", err)
		b.respondWithError(s, i, userFacingMessage(err))
		return
	}

	var sb strings.Builder
	sb.WriteString("**Test draw** (nothing saved):\n")
	for _, pairing := range pairings {
		sb.WriteString(fmt.Sprintf("%s → %s\n", pairingName(pairing.Santa), pairingName(pairing.Recipient)))
	}

	b.respondEphemeral(s, i, sb.String())
}

func (b *Bot) handlePairs(s *discordgo.Session, i *discordgo.InteractionCreate, adminDiscordID int64) {
	ctx := context.Background()

	pairings, err := b.gameService.ListPairings(ctx)
	if err != nil {
		log.Printf("Error listing pairings: %v", err)
		b.respondWithError(s, i, userFacingMessage(err))
		return
	}

	if len(pairings) == 0 {
		b.respondEphemeral(s, i, "No pairs yet. Run the draw first.")
		return
	}

	// The pair gifting the viewing admin stays hidden so their own
	// surprise survives
	hidden := 0
	var sb strings.Builder
	sb.WriteString("**Pairs:**\n")
	for _, pairing := range pairings {
		if pairing.Recipient.DiscordID == adminDiscordID {
			hidden++
			continue
		}
		sb.WriteString(fmt.Sprintf("%s → %s\n", pairingName(pairing.Santa), pairingName(pairing.Recipient)))
	}
	if hidden > 0 {
		sb.WriteString("_(your own santa stays secret)_")
	}

	b.respondEphemeral(s, i, sb.String())
}

func pairingName(player *models.Player) string {
	if player.DisplayName != nil {
		return *player.DisplayName
	}
	return player.Username
}

// promptResetConfirmation asks the organizer to confirm before anything is
// cleared
func (b *Bot) promptResetConfirmation(s *discordgo.Session, i *discordgo.InteractionCreate, hard bool) {
	message := "Clear every name, wish and pair? Players stay registered."
	confirmID := "reset_confirm_soft"
	if hard {
		message = "Delete **every player** and start over? This cannot be undone."
		confirmID = "reset_confirm_hard"
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    "Confirm",
							Style:    discordgo.DangerButton,
							CustomID: confirmID,
						},
						discordgo.Button{
							Label:    "Cancel",
							Style:    discordgo.SecondaryButton,
							CustomID: "reset_cancel",
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Printf("Error showing reset confirmation: %v", err)
	}
}

// handleResetButton handles reset confirmation button presses
func (b *Bot) handleResetButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, _, err := interactionUserID(i)
	if err != nil {
		log.Printf("Error resolving user for reset button: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if !b.gameService.IsAdmin(discordID) {
		b.respondWithError(s, i, "Only game organizers can use this.")
		return
	}

	ctx := context.Background()
	var message string

	switch i.MessageComponentData().CustomID {
	case "reset_confirm_soft":
		if err := b.gameService.SoftReset(ctx); err != nil {
			log.Printf("Error running soft reset: %v", err)
			b.respondWithError(s, i, userFacingMessage(err))
			return
		}
		log.Info("Game reset, players kept")
		message = "♻️ Game reset. Players stay in, names and wishes start over."
	case "reset_confirm_hard":
		if err := b.gameService.HardReset(ctx); err != nil {
			log.Printf("Error running hard reset: %v", err)
			b.respondWithError(s, i, userFacingMessage(err))
			return
		}
		log.Info("Game wiped, all players removed")
		message = "🗑️ All players removed. Registration is open for a fresh game."
	case "reset_cancel":
		message = "Reset cancelled. Nothing changed."
	default:
		b.respondWithError(s, i, "Unknown action")
		return
	}

	// Replace the confirmation prompt so the buttons disappear
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    message,
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Printf("Error updating reset confirmation: %v", err)
	}
}
