package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"ahrelay/middleware"
	"ahrelay/models"
	"ahrelay/usecases"
)

const configCommandName = "ahrcfg"

type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	relayUseCase     usecases.RelayUseCaseInterface
	alertMiddleware  *middleware.ErrorAlertMiddleware
}

func NewDiscordEventsHandler(
	session *discordgo.Session,
	relayUseCase usecases.RelayUseCaseInterface,
	alertMiddleware *middleware.ErrorAlertMiddleware,
) *DiscordEventsHandler {
	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		relayUseCase:     relayUseCase,
		alertMiddleware:  alertMiddleware,
	}

	// Register event handlers
	session.AddHandler(handler.handleMessageCreatedEvent)
	session.AddHandler(handler.handleInteractionCreatedEvent)

	// Message content is needed to relay reply text in-game
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	return handler
}

// StartBot opens the Discord connection, registers the configuration command
// group and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	// Open a websocket connection to Discord and begin listening
	err := h.discordSDKClient.Open()
	if err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	if err := h.registerCommands(); err != nil {
		h.discordSDKClient.Close()
		return fmt.Errorf("failed to register commands: %w", err)
	}

	log.Printf("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot gracefully closes the Discord connection
func (h *DiscordEventsHandler) StopBot() {
	h.discordSDKClient.Close()
}

func (h *DiscordEventsHandler) registerCommands() error {
	manageServer := int64(discordgo.PermissionManageServer)
	command := &discordgo.ApplicationCommand{
		Name:                     configCommandName,
		Description:              "Configure AHelp relay servers for this guild",
		DefaultMemberPermissions: &manageServer,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Register a game server",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "identifier",
						Description: "Short unique identifier for the server",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "display_name",
						Description: "Human-readable server name",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "host",
						Description: "Server address as IP:port",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "token",
						Description: "Moderation API token",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove a game server and its channel bindings",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "identifier",
						Description: "Identifier of the server to remove",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "use_channel",
				Description: "Relay this channel's ahelp traffic to a server",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "identifier",
						Description: "Identifier of the server to bind",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List the configured game servers",
			},
		},
	}

	// Global command registration is an upsert, so no cleanup on shutdown
	_, err := h.discordSDKClient.ApplicationCommandCreate(
		h.discordSDKClient.State.User.ID, "", command)
	if err != nil {
		return fmt.Errorf("failed to create application command: %w", err)
	}

	log.Printf("✅ Registered /%s command group", configCommandName)
	return nil
}

// handleMessageCreatedEvent handles incoming Discord messages
func (h *DiscordEventsHandler) handleMessageCreatedEvent(s *discordgo.Session, m *discordgo.MessageCreate) {
	h.alertMiddleware.RunEventHandler("MessageCreate", func() error {
		ctx := context.Background()

		messageEvent, err := h.mapToDiscordMessageEvent(s, m)
		if err != nil {
			return fmt.Errorf("failed to map Discord message event: %w", err)
		}

		if err := h.relayUseCase.ProcessDiscordMessageEvent(ctx, messageEvent); err != nil {
			if _, sendErr := s.ChannelMessageSend(m.ChannelID, "Something went wrong while relaying this message."); sendErr != nil {
				log.Printf("⚠️ Failed to post relay failure notice: %v", sendErr)
			}
			return err
		}
		return nil
	})
}

// handleInteractionCreatedEvent dispatches the configuration slash commands
func (h *DiscordEventsHandler) handleInteractionCreatedEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != configCommandName {
		return
	}

	h.alertMiddleware.RunEventHandler("InteractionCreate", func() error {
		ctx := context.Background()

		if i.Member == nil || i.Member.Permissions&discordgo.PermissionManageServer == 0 {
			return h.respondEphemeral(s, i, "You need the Manage Server permission to configure the relay.")
		}

		if len(data.Options) == 0 {
			return h.respondEphemeral(s, i, "Unknown subcommand.")
		}
		subcommand := data.Options[0]
		options := commandOptionsByName(subcommand.Options)

		var reply string
		var err error
		switch subcommand.Name {
		case "add":
			reply, err = h.relayUseCase.AddServerCommand(
				ctx,
				i.GuildID,
				options["identifier"],
				options["display_name"],
				options["host"],
				options["token"],
			)
		case "remove":
			reply, err = h.relayUseCase.RemoveServerCommand(ctx, i.GuildID, options["identifier"])
		case "use_channel":
			reply, err = h.relayUseCase.UseChannelCommand(ctx, i.GuildID, i.ChannelID, options["identifier"])
		case "list":
			reply, err = h.relayUseCase.ListServersCommand(ctx, i.GuildID)
		default:
			reply = "Unknown subcommand."
		}
		if err != nil {
			log.Printf("❌ Command /%s %s failed: %v", configCommandName, subcommand.Name, err)
			if respondErr := h.respondEphemeral(s, i, "Something went wrong, try again later."); respondErr != nil {
				log.Printf("⚠️ Failed to send error response: %v", respondErr)
			}
			return err
		}

		return h.respondEphemeral(s, i, reply)
	})
}

func (h *DiscordEventsHandler) respondEphemeral(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	content string,
) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to respond to interaction: %w", err)
	}
	return nil
}

func commandOptionsByName(
	options []*discordgo.ApplicationCommandInteractionDataOption,
) map[string]string {
	values := make(map[string]string, len(options))
	for _, option := range options {
		if option.Type == discordgo.ApplicationCommandOptionString {
			values[option.Name] = option.StringValue()
		}
	}
	return values
}

// mapToDiscordMessageEvent maps a Discord SDK message event to our domain model
func (h *DiscordEventsHandler) mapToDiscordMessageEvent(
	s *discordgo.Session,
	m *discordgo.MessageCreate,
) (models.DiscordMessageEvent, error) {
	event := models.DiscordMessageEvent{
		GuildID:           m.GuildID,
		ChannelID:         m.ChannelID,
		MessageID:         m.ID,
		Content:           m.Content,
		WebhookID:         m.WebhookID,
		AuthorDisplayName: authorDisplayName(m),
	}
	if m.Author != nil {
		event.UserID = m.Author.ID
		event.AuthorIsBot = m.Author.Bot
	}

	// Messages without guild context are ignored downstream, no need to
	// resolve channel or roles for them
	if m.GuildID == "" {
		return event, nil
	}

	// Get channel information to determine if this is a thread
	channel, err := s.State.Channel(m.ChannelID)
	if err != nil {
		channel, err = s.Channel(m.ChannelID)
		if err != nil {
			return models.DiscordMessageEvent{}, fmt.Errorf("failed to get channel info: %w", err)
		}
	}
	event.IsThread = isThreadChannel(channel.Type)

	roleName, roleColor := topRole(s, m.GuildID, m.Member)
	event.RoleName = roleName
	event.RoleColor = roleColor

	return event, nil
}

func authorDisplayName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author == nil {
		return ""
	}
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}

// topRole resolves the author's highest-positioned guild role, mirroring how
// the game renders an admin's rank next to the relayed message
func topRole(s *discordgo.Session, guildID string, member *discordgo.Member) (string, string) {
	if member == nil {
		return "", ""
	}

	var best *discordgo.Role
	for _, roleID := range member.Roles {
		role, err := s.State.Role(guildID, roleID)
		if err != nil {
			continue
		}
		if best == nil || role.Position > best.Position {
			best = role
		}
	}
	if best == nil {
		return "", ""
	}
	return best.Name, fmt.Sprintf("#%06x", best.Color)
}

// isThreadChannel checks if the given channel type is a thread
func isThreadChannel(channelType discordgo.ChannelType) bool {
	return channelType == discordgo.ChannelTypeGuildPublicThread ||
		channelType == discordgo.ChannelTypeGuildPrivateThread ||
		channelType == discordgo.ChannelTypeGuildNewsThread
}
