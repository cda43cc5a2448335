package bot

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"santa/service"
)

// GetDisplayName returns the server-specific display name for a user.
// Falls back to username if nickname is not set or if there's an error
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.GuildMember(guildID, userID)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return user.Username
	}

	return "Unknown"
}

// GetDisplayNameInt64 is a convenience wrapper that accepts int64 user IDs
func GetDisplayNameInt64(s *discordgo.Session, guildID string, userID int64) string {
	return GetDisplayName(s, guildID, strconv.FormatInt(userID, 10))
}

// interactionUserID extracts the invoking user's id from guild or DM context
func interactionUserID(i *discordgo.InteractionCreate) (int64, string, error) {
	var user *discordgo.User
	if i.Member != nil {
		user = i.Member.User
	} else {
		user = i.User
	}
	if user == nil {
		return 0, "", fmt.Errorf("interaction carries no user")
	}

	id, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parsing user id %s: %w", user.ID, err)
	}
	return id, user.Username, nil
}

// userFacingMessage translates service errors into text safe to show players
func userFacingMessage(err error) string {
	var insufficientErr *service.InsufficientPlayersError
	switch {
	case errors.As(err, &insufficientErr):
		return fmt.Sprintf("Not enough players are ready to draw: %d joined with a name and a wish, at least 2 are needed.", insufficientErr.Ready)
	case errors.Is(err, service.ErrRegistrationClosed):
		return "Registration is closed. Ask an organizer to reset the game if you want in."
	case errors.Is(err, service.ErrPlayerNotFound):
		return "You haven't joined yet. Use /join first."
	case errors.Is(err, service.ErrNameNotSet):
		return "Set your name with /name before making a wish."
	case errors.Is(err, service.ErrInvalidInput):
		return "That doesn't look right. Send plain text, not a command."
	case errors.Is(err, service.ErrAlreadyDrawn):
		return "The draw already happened. Reset the game to run it again."
	case errors.Is(err, service.ErrRegistrationIncomplete):
		return "Finish registration first: set your name and wish."
	case errors.Is(err, service.ErrDrawNotYetRun):
		return "The draw hasn't happened yet. Hang tight!"
	case errors.Is(err, service.ErrNoAssignment):
		return "You don't have a giftee. You may have joined after the draw."
	case errors.Is(err, service.ErrDrawFailed):
		return "The draw didn't work out this time. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
	if err != nil {
		log.Printf("Error sending response: %v", err)
	}
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending response: %v", err)
	}
}

func (b *Bot) respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	b.respondEphemeral(s, i, "❌ "+message)
}
