package servers

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"ahrelay/models"
)

// MockServersService is a mock implementation of the ServersService interface
type MockServersService struct {
	mock.Mock
}

func (m *MockServersService) AddServer(
	ctx context.Context,
	guildID, identifier, displayName, host, token string,
) (*models.GameServer, error) {
	args := m.Called(ctx, guildID, identifier, displayName, host, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameServer), args.Error(1)
}

func (m *MockServersService) RemoveServer(ctx context.Context, guildID, identifier string) error {
	args := m.Called(ctx, guildID, identifier)
	return args.Error(0)
}

func (m *MockServersService) GetServer(
	ctx context.Context,
	guildID, identifier string,
) (mo.Option[*models.GameServer], error) {
	args := m.Called(ctx, guildID, identifier)
	return args.Get(0).(mo.Option[*models.GameServer]), args.Error(1)
}

func (m *MockServersService) ListServers(ctx context.Context, guildID string) ([]*models.GameServer, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GameServer), args.Error(1)
}

func (m *MockServersService) BindChannel(
	ctx context.Context,
	guildID, channelID, identifier string,
) (*models.GameServer, error) {
	args := m.Called(ctx, guildID, channelID, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameServer), args.Error(1)
}

func (m *MockServersService) GetBoundServers(
	ctx context.Context,
	guildID, channelID string,
) ([]*models.GameServer, error) {
	args := m.Called(ctx, guildID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GameServer), args.Error(1)
}
