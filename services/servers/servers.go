package servers

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"

	"github.com/samber/mo"

	"ahrelay/core"
	"ahrelay/models"
	"ahrelay/services"
)

// GameServersRepository defines the interface for game server repository operations
type GameServersRepository interface {
	CreateGameServer(ctx context.Context, server *models.GameServer) error
	GetGameServerByIdentifier(
		ctx context.Context,
		guildID, identifier string,
	) (mo.Option[*models.GameServer], error)
	ListGameServersByGuildID(ctx context.Context, guildID string) ([]*models.GameServer, error)
	DeleteGameServerByIdentifier(ctx context.Context, guildID, identifier string) (bool, error)
}

// ChannelBindingsRepository defines the interface for channel binding repository operations
type ChannelBindingsRepository interface {
	GetChannelBindings(ctx context.Context, guildID, channelID string) ([]*models.ChannelBinding, error)
	ReplaceChannelBindings(ctx context.Context, guildID, channelID string, identifiers []string) error
	DeleteChannelBinding(ctx context.Context, guildID, channelID, identifier string) (bool, error)
	DeleteBindingsByServerIdentifier(ctx context.Context, guildID, identifier string) (int64, error)
}

// ServersService is the per-guild server directory. All mutations are
// read-modify-write atomic via the transaction manager, since two message
// events may reconfigure or read the same guild concurrently.
type ServersService struct {
	serversRepo  GameServersRepository
	bindingsRepo ChannelBindingsRepository
	txManager    services.TransactionManager
}

func NewServersService(
	serversRepo GameServersRepository,
	bindingsRepo ChannelBindingsRepository,
	txManager services.TransactionManager,
) *ServersService {
	return &ServersService{
		serversRepo:  serversRepo,
		bindingsRepo: bindingsRepo,
		txManager:    txManager,
	}
}

func (s *ServersService) AddServer(
	ctx context.Context,
	guildID, identifier, displayName, host, token string,
) (*models.GameServer, error) {
	log.Printf("📋 Starting to add server %s for guild %s", identifier, guildID)

	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if strings.TrimSpace(identifier) == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, fmt.Errorf("display name cannot be empty")
	}
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}
	if err := validateHost(host); err != nil {
		return nil, err
	}

	server := &models.GameServer{
		ID:             core.NewID("srv"),
		DiscordGuildID: guildID,
		Identifier:     identifier,
		DisplayName:    displayName,
		Host:           host,
		Token:          token,
	}

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		maybeExisting, err := s.serversRepo.GetGameServerByIdentifier(ctx, guildID, identifier)
		if err != nil {
			return fmt.Errorf("failed to check for existing server: %w", err)
		}
		if maybeExisting.IsPresent() {
			return core.ErrDuplicateIdentifier
		}

		if err := s.serversRepo.CreateGameServer(ctx, server); err != nil {
			return fmt.Errorf("failed to create game server: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📋 Completed successfully - added server %s for guild %s", identifier, guildID)
	return server, nil
}

func (s *ServersService) RemoveServer(ctx context.Context, guildID, identifier string) error {
	log.Printf("📋 Starting to remove server %s for guild %s", identifier, guildID)

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		deleted, err := s.serversRepo.DeleteGameServerByIdentifier(ctx, guildID, identifier)
		if err != nil {
			return fmt.Errorf("failed to delete game server: %w", err)
		}
		if !deleted {
			return core.ErrNotFound
		}

		detached, err := s.bindingsRepo.DeleteBindingsByServerIdentifier(ctx, guildID, identifier)
		if err != nil {
			return fmt.Errorf("failed to detach server from channel bindings: %w", err)
		}
		log.Printf("🗑️ Detached server %s from %d channel binding(s)", identifier, detached)
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("📋 Completed successfully - removed server %s for guild %s", identifier, guildID)
	return nil
}

func (s *ServersService) GetServer(
	ctx context.Context,
	guildID, identifier string,
) (mo.Option[*models.GameServer], error) {
	return s.serversRepo.GetGameServerByIdentifier(ctx, guildID, identifier)
}

func (s *ServersService) ListServers(ctx context.Context, guildID string) ([]*models.GameServer, error) {
	return s.serversRepo.ListGameServersByGuildID(ctx, guildID)
}

func (s *ServersService) BindChannel(
	ctx context.Context,
	guildID, channelID, identifier string,
) (*models.GameServer, error) {
	log.Printf("📋 Starting to bind channel %s to server %s for guild %s", channelID, identifier, guildID)

	var server *models.GameServer
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		maybeServer, err := s.serversRepo.GetGameServerByIdentifier(ctx, guildID, identifier)
		if err != nil {
			return fmt.Errorf("failed to get game server: %w", err)
		}
		if !maybeServer.IsPresent() {
			return core.ErrNotFound
		}
		server = maybeServer.MustGet()

		// Latest use_channel wins: the whole binding is replaced
		if err := s.bindingsRepo.ReplaceChannelBindings(ctx, guildID, channelID, []string{identifier}); err != nil {
			return fmt.Errorf("failed to replace channel bindings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📋 Completed successfully - bound channel %s to server %s", channelID, identifier)
	return server, nil
}

func (s *ServersService) GetBoundServers(
	ctx context.Context,
	guildID, channelID string,
) ([]*models.GameServer, error) {
	bindings, err := s.bindingsRepo.GetChannelBindings(ctx, guildID, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel bindings: %w", err)
	}

	var servers []*models.GameServer
	for _, binding := range bindings {
		maybeServer, err := s.serversRepo.GetGameServerByIdentifier(ctx, guildID, binding.ServerIdentifier)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve binding %s: %w", binding.ServerIdentifier, err)
		}
		if !maybeServer.IsPresent() {
			// The record was removed out from under the binding - prune
			// the stale entry so the next lookup is clean
			log.Printf("🗑️ Pruning stale binding %s on channel %s", binding.ServerIdentifier, channelID)
			err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
				_, err := s.bindingsRepo.DeleteChannelBinding(ctx, guildID, channelID, binding.ServerIdentifier)
				return err
			})
			if err != nil {
				log.Printf("⚠️ Failed to prune stale binding %s: %v", binding.ServerIdentifier, err)
			}
			continue
		}
		servers = append(servers, maybeServer.MustGet())
	}

	return servers, nil
}

// validateHost enforces the IP:port-only policy for server hosts. Domain
// names are rejected so outbound relay calls have no TLS ambiguity.
func validateHost(host string) error {
	if strings.TrimSpace(host) == "" {
		return core.ErrInvalidHost
	}

	addr := host
	if hostPart, portPart, err := net.SplitHostPort(host); err == nil {
		port, err := strconv.Atoi(portPart)
		if err != nil || port < 1 || port > 65535 {
			return core.ErrInvalidHost
		}
		addr = hostPart
	}

	if net.ParseIP(addr) == nil {
		return core.ErrInvalidHost
	}
	return nil
}
