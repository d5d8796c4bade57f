package clients

import (
	"context"

	"github.com/samber/mo"

	"ahrelay/models"
)

// DiscordClient defines the interface for Discord API operations
type DiscordClient interface {
	// Message operations
	PostMessage(channelID string, params DiscordMessageParams) (*DiscordPostMessageResponse, error)

	// Thread operations
	CreatePublicThread(channelID, messageID, name string) (*DiscordThreadResponse, error)
	// GetThreadStarterMessage resolves the message a public thread was
	// created from, along with its (parent) channel. Returns None when the
	// starter message or its channel no longer exists.
	GetThreadStarterMessage(threadID string) (mo.Option[*DiscordStarterMessage], error)

	// Reaction operations
	AddReaction(channelID, messageID, emoji string) error
}

// SS14Client defines the interface for the game platform's HTTP APIs:
// account id resolution against the auth service and ahelp relay against a
// specific game server's webhook endpoint
type SS14Client interface {
	// ResolveAccountID maps a player name to a stable account id.
	// Returns None for unknown names (auth service 404).
	ResolveAccountID(ctx context.Context, playerName string) (mo.Option[string], error)

	// SendBwoink posts an admin-help message to the server's moderation
	// API. Returns the raw HTTP status and response body; interpreting
	// them is the caller's job.
	SendBwoink(ctx context.Context, server *models.GameServer, req BwoinkRequest) (int, string, error)
}
