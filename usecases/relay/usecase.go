package relay

import (
	"context"
	"fmt"
	"log"
	"time"

	"ahrelay/clients"
	"ahrelay/models"
	"ahrelay/services"
)

const (
	repliesThreadName = "Replies"
	relayedReaction   = "👍"

	serverTimedOutNotice = "Server timed out."
	starterGoneNotice    = "Could not resolve the message this thread was started from."

	defaultActionTimeout = 5 * time.Second
)

// RelayUseCase routes incoming Discord messages between ahelp relay channels
// and the bound game servers' moderation APIs
type RelayUseCase struct {
	discordClient  clients.DiscordClient
	ss14Client     clients.SS14Client
	serversService services.ServersService
	actionTimeout  time.Duration
}

func NewRelayUseCase(
	discordClient clients.DiscordClient,
	ss14Client clients.SS14Client,
	serversService services.ServersService,
) *RelayUseCase {
	return &RelayUseCase{
		discordClient:  discordClient,
		ss14Client:     ss14Client,
		serversService: serversService,
		actionTimeout:  defaultActionTimeout,
	}
}

// ProcessDiscordMessageEvent decides, for one message event, whether to open
// a replies thread, relay an operator reply in-game, or do nothing. First
// matching rule wins; configuration is read fresh on every call.
func (u *RelayUseCase) ProcessDiscordMessageEvent(ctx context.Context, event models.DiscordMessageEvent) error {
	if event.GuildID == "" {
		return nil
	}

	servers, err := u.serversService.ListServers(ctx, event.GuildID)
	if err != nil {
		return fmt.Errorf("failed to list servers for guild: %w", err)
	}
	if len(servers) == 0 {
		return nil
	}

	// Webhook-originated messages are the game's own bridge traffic and must
	// be processed even though Discord flags them as bot messages
	if event.AuthorIsBot && event.WebhookID == "" {
		return nil
	}

	// Bindings are configured against parent channels, so a thread message
	// resolves through its starter message's channel
	effectiveChannelID := event.ChannelID
	var starter *clients.DiscordStarterMessage
	if event.IsThread {
		maybeStarter, err := u.discordClient.GetThreadStarterMessage(event.ChannelID)
		if err != nil {
			return fmt.Errorf("failed to get thread starter message: %w", err)
		}
		if !maybeStarter.IsPresent() {
			log.Printf("⚠️ Thread %s has no resolvable starter message, ignoring", event.ChannelID)
			u.postNotice(event.ChannelID, starterGoneNotice)
			return nil
		}
		starter = maybeStarter.MustGet()
		effectiveChannelID = starter.ChannelID
	}

	boundServers, err := u.serversService.GetBoundServers(ctx, event.GuildID, effectiveChannelID)
	if err != nil {
		return fmt.Errorf("failed to get bound servers for channel: %w", err)
	}
	if len(boundServers) == 0 {
		return nil
	}
	server := boundServers[0]

	switch {
	case !event.IsThread && event.WebhookID != "":
		// Original bridge message landing in the relay channel: open the
		// replies thread and stop, no network calls
		log.Printf("📋 Starting to create replies thread for message %s in channel %s",
			event.MessageID, event.ChannelID)
		if _, err := u.discordClient.CreatePublicThread(event.ChannelID, event.MessageID, repliesThreadName); err != nil {
			return fmt.Errorf("failed to create replies thread: %w", err)
		}
		log.Printf("📋 Completed successfully - created replies thread for message %s", event.MessageID)
		return nil

	case event.IsThread && event.WebhookID == "":
		return u.relayThreadReply(ctx, event, starter, server)

	default:
		return nil
	}
}

// relayThreadReply forwards an operator's thread reply to the bound game
// server: resolve the player's account from the starter author's display
// name, then post the reply through the moderation API.
func (u *RelayUseCase) relayThreadReply(
	ctx context.Context,
	event models.DiscordMessageEvent,
	starter *clients.DiscordStarterMessage,
	server *models.GameServer,
) error {
	playerName, err := ExtractPlayerName(starter.AuthorDisplayName)
	if err != nil {
		log.Printf("⚠️ Could not extract player name from %q, ignoring reply", starter.AuthorDisplayName)
		return nil
	}

	log.Printf("📋 Starting to relay reply %s to server %s for player %s",
		event.MessageID, server.Identifier, playerName)

	resolveCtx, cancelResolve := context.WithTimeout(ctx, u.actionTimeout)
	defer cancelResolve()
	maybeAccountID, err := u.ss14Client.ResolveAccountID(resolveCtx, playerName)
	if err != nil {
		if isNetworkError(err) {
			log.Printf("⚠️ Account resolution timed out for player %s: %v", playerName, err)
			u.postNotice(event.ChannelID, serverTimedOutNotice)
			return nil
		}
		return fmt.Errorf("failed to resolve account id: %w", err)
	}
	if !maybeAccountID.IsPresent() {
		// Unknown names report like timeouts so outsiders cannot probe
		// whether an account exists
		log.Printf("⚠️ No account found for player %s, reporting as timeout", playerName)
		u.postNotice(event.ChannelID, serverTimedOutNotice)
		return nil
	}
	accountID := maybeAccountID.MustGet()

	relayCtx, cancelRelay := context.WithTimeout(ctx, u.actionTimeout)
	defer cancelRelay()
	status, body, err := u.ss14Client.SendBwoink(relayCtx, server, clients.BwoinkRequest{
		AccountID: accountID,
		Username:  event.AuthorDisplayName,
		Text:      event.Content,
		RoleName:  event.RoleName,
		RoleColor: event.RoleColor,
	})
	if err != nil {
		log.Printf("⚠️ Relay call failed for server %s: %v", server.Identifier, err)
		u.postNotice(event.ChannelID, serverTimedOutNotice)
		return nil
	}

	if status != 200 {
		log.Printf("❌ Relay rejected by server %s with status %d", server.Identifier, status)
		u.postNotice(event.ChannelID, fmt.Sprintf("Failed:\n%d: %s", status, body))
		return nil
	}

	if err := u.discordClient.AddReaction(event.ChannelID, event.MessageID, relayedReaction); err != nil {
		log.Printf("⚠️ Failed to acknowledge relayed reply %s: %v", event.MessageID, err)
	}

	log.Printf("📋 Completed successfully - relayed reply %s to server %s", event.MessageID, server.Identifier)
	return nil
}

func (u *RelayUseCase) postNotice(channelID, text string) {
	if _, err := u.discordClient.PostMessage(channelID, clients.DiscordMessageParams{Content: text}); err != nil {
		log.Printf("⚠️ Failed to post notice in channel %s: %v", channelID, err)
	}
}
