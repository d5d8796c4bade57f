package services

import (
	"context"

	"github.com/samber/mo"

	"ahrelay/models"
)

// ServersService defines the interface for the per-guild server directory:
// server records plus channel bindings, always read fresh from the store
type ServersService interface {
	AddServer(
		ctx context.Context,
		guildID, identifier, displayName, host, token string,
	) (*models.GameServer, error)
	// RemoveServer deletes the record and detaches it from every channel
	// binding in the guild
	RemoveServer(ctx context.Context, guildID, identifier string) error
	GetServer(ctx context.Context, guildID, identifier string) (mo.Option[*models.GameServer], error)
	ListServers(ctx context.Context, guildID string) ([]*models.GameServer, error)
	// BindChannel replaces any existing binding for the channel with a
	// single-element binding (latest use_channel wins)
	BindChannel(ctx context.Context, guildID, channelID, identifier string) (*models.GameServer, error)
	// GetBoundServers resolves the channel's bindings to server records in
	// binding order, lazily pruning identifiers whose record is gone
	GetBoundServers(ctx context.Context, guildID, channelID string) ([]*models.GameServer, error)
}

// TransactionManager defines the interface for managing database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
