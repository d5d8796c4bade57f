package usecases

import (
	"context"

	"ahrelay/models"
)

// RelayUseCaseInterface routes Discord message events to game servers and
// services the operator configuration commands
type RelayUseCaseInterface interface {
	ProcessDiscordMessageEvent(ctx context.Context, event models.DiscordMessageEvent) error

	AddServerCommand(ctx context.Context, guildID, identifier, displayName, host, token string) (string, error)
	RemoveServerCommand(ctx context.Context, guildID, identifier string) (string, error)
	UseChannelCommand(ctx context.Context, guildID, channelID, identifier string) (string, error)
	ListServersCommand(ctx context.Context, guildID string) (string, error)
}
