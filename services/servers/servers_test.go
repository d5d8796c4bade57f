package servers

import (
	"context"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ahrelay/core"
	"ahrelay/models"
	"ahrelay/services/txmanager"
)

type mockGameServersRepository struct {
	mock.Mock
}

func (m *mockGameServersRepository) CreateGameServer(ctx context.Context, server *models.GameServer) error {
	args := m.Called(ctx, server)
	return args.Error(0)
}

func (m *mockGameServersRepository) GetGameServerByIdentifier(
	ctx context.Context,
	guildID, identifier string,
) (mo.Option[*models.GameServer], error) {
	args := m.Called(ctx, guildID, identifier)
	return args.Get(0).(mo.Option[*models.GameServer]), args.Error(1)
}

func (m *mockGameServersRepository) ListGameServersByGuildID(
	ctx context.Context,
	guildID string,
) ([]*models.GameServer, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GameServer), args.Error(1)
}

func (m *mockGameServersRepository) DeleteGameServerByIdentifier(
	ctx context.Context,
	guildID, identifier string,
) (bool, error) {
	args := m.Called(ctx, guildID, identifier)
	return args.Bool(0), args.Error(1)
}

type mockChannelBindingsRepository struct {
	mock.Mock
}

func (m *mockChannelBindingsRepository) GetChannelBindings(
	ctx context.Context,
	guildID, channelID string,
) ([]*models.ChannelBinding, error) {
	args := m.Called(ctx, guildID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChannelBinding), args.Error(1)
}

func (m *mockChannelBindingsRepository) ReplaceChannelBindings(
	ctx context.Context,
	guildID, channelID string,
	identifiers []string,
) error {
	args := m.Called(ctx, guildID, channelID, identifiers)
	return args.Error(0)
}

func (m *mockChannelBindingsRepository) DeleteChannelBinding(
	ctx context.Context,
	guildID, channelID, identifier string,
) (bool, error) {
	args := m.Called(ctx, guildID, channelID, identifier)
	return args.Bool(0), args.Error(1)
}

func (m *mockChannelBindingsRepository) DeleteBindingsByServerIdentifier(
	ctx context.Context,
	guildID, identifier string,
) (int64, error) {
	args := m.Called(ctx, guildID, identifier)
	return args.Get(0).(int64), args.Error(1)
}

type serversTestFixture struct {
	serversRepo  *mockGameServersRepository
	bindingsRepo *mockChannelBindingsRepository
	service      *ServersService
}

func setupServersTest() *serversTestFixture {
	serversRepo := new(mockGameServersRepository)
	bindingsRepo := new(mockChannelBindingsRepository)
	service := NewServersService(serversRepo, bindingsRepo, &txmanager.PassthroughTransactionManager{})
	return &serversTestFixture{
		serversRepo:  serversRepo,
		bindingsRepo: bindingsRepo,
		service:      service,
	}
}

func (f *serversTestFixture) assertAllExpectations(t *testing.T) {
	f.serversRepo.AssertExpectations(t)
	f.bindingsRepo.AssertExpectations(t)
}

func TestAddServer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		fixture := setupServersTest()
		ctx := context.Background()

		fixture.serversRepo.On("GetGameServerByIdentifier", ctx, "guild1", "lizard").
			Return(mo.None[*models.GameServer](), nil)
		fixture.serversRepo.On("CreateGameServer", ctx, mock.AnythingOfType("*models.GameServer")).
			Return(nil)

		server, err := fixture.service.AddServer(ctx, "guild1", "lizard", "Lizard Station", "10.0.0.5:1212", "secret")

		require.NoError(t, err)
		assert.Equal(t, "lizard", server.Identifier)
		assert.Equal(t, "Lizard Station", server.DisplayName)
		assert.Equal(t, "10.0.0.5:1212", server.Host)
		assert.True(t, core.IsValidULID(server.ID))
		fixture.assertAllExpectations(t)
	})

	t.Run("DuplicateIdentifier", func(t *testing.T) {
		fixture := setupServersTest()
		ctx := context.Background()

		existing := &models.GameServer{Identifier: "lizard"}
		fixture.serversRepo.On("GetGameServerByIdentifier", ctx, "guild1", "lizard").
			Return(mo.Some(existing), nil)

		_, err := fixture.service.AddServer(ctx, "guild1", "lizard", "Lizard Station", "10.0.0.5:1212", "secret")

		assert.ErrorIs(t, err, core.ErrDuplicateIdentifier)
		fixture.assertAllExpectations(t)
	})

	t.Run("EmptyIdentifier", func(t *testing.T) {
		fixture := setupServersTest()

		_, err := fixture.service.AddServer(context.Background(), "guild1", "  ", "Lizard", "10.0.0.5:1212", "secret")

		assert.Error(t, err)
		fixture.assertAllExpectations(t)
	})

	t.Run("InvalidHosts", func(t *testing.T) {
		hosts := []string{"", "example.com:1212", "lizard.station.io", "10.0.0.5:0", "10.0.0.5:99999", "10.0.0.5:abc"}
		for _, host := range hosts {
			fixture := setupServersTest()

			_, err := fixture.service.AddServer(context.Background(), "guild1", "lizard", "Lizard", host, "secret")

			assert.ErrorIs(t, err, core.ErrInvalidHost, "host %q should be rejected", host)
		}
	})

	t.Run("BareIPWithoutPort", func(t *testing.T) {
		fixture := setupServersTest()
		ctx := context.Background()

		fixture.serversRepo.On("GetGameServerByIdentifier", ctx, "guild1", "lizard").
			Return(mo.None[*models.GameServer](), nil)
		fixture.serversRepo.On("CreateGameServer", ctx, mock.AnythingOfType("*models.GameServer")).
			Return(nil)

		_, err := fixture.service.AddServer(ctx, "guild1", "lizard", "Lizard", "10.0.0.5", "secret")

		require.NoError(t, err)
		fixture.assertAllExpectations(t)
	})
}

func TestRemoveServer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		fixture := setupServersTest()
		ctx := context.Background()

		fixture.serversRepo.On("DeleteGameServerByIdentifier", ctx, "guild1", "lizard").
			Return(true, nil)
		fixture.bindingsRepo.On("DeleteBindingsByServerIdentifier", ctx, "guild1", "lizard").
			Return(int64(2), nil)

		err := fixture.service.RemoveServer(ctx, "guild1", "lizard")

		require.NoError(t, err)
		fixture.assertAllExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		fixture := setupServersTest()
		ctx := context.Background()

		fixture.serversRepo.On("DeleteGameServerByIdentifier", ctx, "guild1", "missing").
			Return(false, nil)

		err := fixture.service.RemoveServer(ctx, "guild1", "missing")

		assert.ErrorIs(t, err, core.ErrNotFound)
		fixture.assertAllExpectations(t)
	})
}

func TestBindChannel(t *testing.T) {
	t.Run("ReplacesExistingBinding", func(t *testing.T) {
		fixture := setupServersTest()
		ctx := context.Background()

		server := &models.GameServer{Identifier: "lizard", DisplayName: "Lizard Station"}
		fixture.serversRepo.On("GetGameServerByIdentifier", ctx, "guild1", "lizard").
			Return(mo.Some(server), nil)
		fixture.bindingsRepo.On("ReplaceChannelBindings", ctx, "guild1", "chan1", []string{"lizard"}).
			Return(nil)

		bound, err := fixture.service.BindChannel(ctx, "guild1", "chan1", "lizard")

		require.NoError(t, err)
		assert.Equal(t, "Lizard Station", bound.DisplayName)
		fixture.assertAllExpectations(t)
	})

	t.Run("UnknownServer", func(t *testing.T) {
		fixture := setupServersTest()
		ctx := context.Background()

		fixture.serversRepo.On("GetGameServerByIdentifier", ctx, "guild1", "missing").
			Return(mo.None[*models.GameServer](), nil)

		_, err := fixture.service.BindChannel(ctx, "guild1", "chan1", "missing")

		assert.ErrorIs(t, err, core.ErrNotFound)
		fixture.assertAllExpectations(t)
	})
}

func TestGetBoundServers(t *testing.T) {
	t.Run("ResolvesInBindingOrder", func(t *testing.T) {
		fixture := setupServersTest()
		ctx := context.Background()

		bindings := []*models.ChannelBinding{
			{ServerIdentifier: "lizard", Position: 0},
			{ServerIdentifier: "salamander", Position: 1},
		}
		lizard := &models.GameServer{Identifier: "lizard"}
		salamander := &models.GameServer{Identifier: "salamander"}

		fixture.bindingsRepo.On("GetChannelBindings", ctx, "guild1", "chan1").
			Return(bindings, nil)
		fixture.serversRepo.On("GetGameServerByIdentifier", ctx, "guild1", "lizard").
			Return(mo.Some(lizard), nil)
		fixture.serversRepo.On("GetGameServerByIdentifier", ctx, "guild1", "salamander").
			Return(mo.Some(salamander), nil)

		servers, err := fixture.service.GetBoundServers(ctx, "guild1", "chan1")

		require.NoError(t, err)
		require.Len(t, servers, 2)
		assert.Equal(t, "lizard", servers[0].Identifier)
		assert.Equal(t, "salamander", servers[1].Identifier)
		fixture.assertAllExpectations(t)
	})

	t.Run("PrunesStaleBinding", func(t *testing.T) {
		fixture := setupServersTest()
		ctx := context.Background()

		bindings := []*models.ChannelBinding{
			{ServerIdentifier: "gone", Position: 0},
			{ServerIdentifier: "lizard", Position: 1},
		}
		lizard := &models.GameServer{Identifier: "lizard"}

		fixture.bindingsRepo.On("GetChannelBindings", ctx, "guild1", "chan1").
			Return(bindings, nil)
		fixture.serversRepo.On("GetGameServerByIdentifier", ctx, "guild1", "gone").
			Return(mo.None[*models.GameServer](), nil)
		fixture.bindingsRepo.On("DeleteChannelBinding", ctx, "guild1", "chan1", "gone").
			Return(true, nil)
		fixture.serversRepo.On("GetGameServerByIdentifier", ctx, "guild1", "lizard").
			Return(mo.Some(lizard), nil)

		servers, err := fixture.service.GetBoundServers(ctx, "guild1", "chan1")

		require.NoError(t, err)
		require.Len(t, servers, 1)
		assert.Equal(t, "lizard", servers[0].Identifier)
		fixture.assertAllExpectations(t)
	})

	t.Run("NoBindings", func(t *testing.T) {
		fixture := setupServersTest()
		ctx := context.Background()

		fixture.bindingsRepo.On("GetChannelBindings", ctx, "guild1", "chan1").
			Return([]*models.ChannelBinding{}, nil)

		servers, err := fixture.service.GetBoundServers(ctx, "guild1", "chan1")

		require.NoError(t, err)
		assert.Empty(t, servers)
		fixture.assertAllExpectations(t)
	})
}
