package relay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"ahrelay/core"
)

// AddServerCommand registers a game server for the guild and returns the
// operator-facing reply
func (u *RelayUseCase) AddServerCommand(
	ctx context.Context,
	guildID, identifier, displayName, host, token string,
) (string, error) {
	server, err := u.serversService.AddServer(ctx, guildID, identifier, displayName, host, token)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateIdentifier) {
			return "A server with that identifier already exists.", nil
		}
		if errors.Is(err, core.ErrInvalidHost) {
			return "Invalid host. Use an IP address, optionally with a port.", nil
		}
		return "", fmt.Errorf("failed to add server: %w", err)
	}
	return fmt.Sprintf("Added server **%s**, identified as ``%s``.", server.DisplayName, server.Identifier), nil
}

// RemoveServerCommand removes a game server and all its channel bindings
func (u *RelayUseCase) RemoveServerCommand(ctx context.Context, guildID, identifier string) (string, error) {
	if err := u.serversService.RemoveServer(ctx, guildID, identifier); err != nil {
		if core.IsNotFoundError(err) {
			return "No server matching that identifier was found.", nil
		}
		return "", fmt.Errorf("failed to remove server: %w", err)
	}
	return fmt.Sprintf("Removed server ``%s``.", identifier), nil
}

// UseChannelCommand binds the invoking channel to a server, replacing any
// existing binding for that channel
func (u *RelayUseCase) UseChannelCommand(
	ctx context.Context,
	guildID, channelID, identifier string,
) (string, error) {
	server, err := u.serversService.BindChannel(ctx, guildID, channelID, identifier)
	if err != nil {
		if core.IsNotFoundError(err) {
			return "No server matching that identifier was found.", nil
		}
		return "", fmt.Errorf("failed to bind channel: %w", err)
	}
	log.Printf("📋 Channel %s now relays for server %s", channelID, server.Identifier)
	return fmt.Sprintf("Successfully set AHelp relay channel to <#%s> for **%s**!", channelID, server.DisplayName), nil
}

// ListServersCommand renders the guild's server directory. Tokens are never
// included.
func (u *RelayUseCase) ListServersCommand(ctx context.Context, guildID string) (string, error) {
	servers, err := u.serversService.ListServers(ctx, guildID)
	if err != nil {
		return "", fmt.Errorf("failed to list servers: %w", err)
	}
	if len(servers) == 0 {
		return "No servers are configured for this guild.", nil
	}

	var sb strings.Builder
	sb.WriteString("Servers:\n")
	for _, server := range servers {
		sb.WriteString(fmt.Sprintf("``%s``, identified as ``%s``\n", server.DisplayName, server.Identifier))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
