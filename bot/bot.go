package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"santa/events"
	"santa/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

type Bot struct {
	config              Config
	session             *discordgo.Session
	registrationService service.RegistrationService
	gameService         service.GameService
	eventBus            *events.Bus
}

func New(config Config, registrationService service.RegistrationService, gameService service.GameService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages

	bot := &Bot{
		config:              config,
		session:             dg,
		registrationService: registrationService,
		gameService:         gameService,
		eventBus:            eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleResetInteractions)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Notify every santa of their giftee once a draw lands
	eventBus.Subscribe(events.EventTypeDrawCompleted, func(ctx context.Context, event events.Event) {
		if _, ok := event.(events.DrawCompletedEvent); ok {
			if err := bot.notifyDrawResults(ctx); err != nil {
				log.Errorf("Failed to send draw notifications: %v", err)
			}
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "join",
			Description: "Join the secret santa game",
		},
		{
			Name:        "name",
			Description: "Set the name your santa will see",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Your display name",
					Required:    true,
				},
			},
		},
		{
			Name:        "wish",
			Description: "Tell your santa what you wish for",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "wish",
					Description: "Your gift wish",
					Required:    true,
				},
			},
		},
		{
			Name:        "mygiftee",
			Description: "Show who you are gifting",
		},
		{
			Name:        "santa",
			Description: "Manage the secret santa game (organizers only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "players",
					Description: "List everyone who joined and their progress",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the game status",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "draw",
					Description: "Run the draw and notify every santa",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "testdraw",
					Description: "Preview a draw without saving it",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "pairs",
					Description: "Show who gifts whom (your own pair stays hidden)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Clear names, wishes and pairs but keep players",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "resetall",
					Description: "Delete every player and start over",
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "join":
		b.handleJoin(s, i)
	case "name":
		b.handleName(s, i)
	case "wish":
		b.handleWish(s, i)
	case "mygiftee":
		b.handleMyGiftee(s, i)
	case "santa":
		b.handleAdminCommand(s, i)
	}
}

// handleResetInteractions routes reset confirmation button presses
func (b *Bot) handleResetInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	if strings.HasPrefix(customID, "reset_") {
		b.handleResetButton(s, i)
	}
}
