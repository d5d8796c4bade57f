package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ahrelay/core"
	"ahrelay/models"
	"ahrelay/testutils"
)

func setupRepositoriesTest(t *testing.T) (*PostgresGameServersRepository, *PostgresChannelBindingsRepository) {
	cfg, err := testutils.LoadTestConfig()
	if err != nil {
		t.Skipf("Skipping database integration test: %v", err)
	}

	dbConn, err := NewConnection(cfg.DatabaseURL)
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(func() { dbConn.Close() })

	return NewPostgresGameServersRepository(dbConn, cfg.DatabaseSchema),
		NewPostgresChannelBindingsRepository(dbConn, cfg.DatabaseSchema)
}

func newTestGameServer(guildID, identifier string) *models.GameServer {
	return &models.GameServer{
		ID:             core.NewID("srv"),
		DiscordGuildID: guildID,
		Identifier:     identifier,
		DisplayName:    "Test Station",
		Host:           "10.0.0.5:1212",
		Token:          "test-token",
	}
}

func TestGameServersRepository(t *testing.T) {
	serversRepo, _ := setupRepositoriesTest(t)
	ctx := context.Background()
	guildID := testutils.NewTestGuildID()

	t.Run("CreateAndGetRoundTrip", func(t *testing.T) {
		server := newTestGameServer(guildID, "grimbly")
		require.NoError(t, serversRepo.CreateGameServer(ctx, server))
		assert.False(t, server.CreatedAt.IsZero())

		maybeFound, err := serversRepo.GetGameServerByIdentifier(ctx, guildID, "grimbly")
		require.NoError(t, err)
		require.True(t, maybeFound.IsPresent())

		found := maybeFound.MustGet()
		assert.Equal(t, server.ID, found.ID)
		assert.Equal(t, "Test Station", found.DisplayName)
		assert.Equal(t, "10.0.0.5:1212", found.Host)
		assert.Equal(t, "test-token", found.Token)
	})

	t.Run("GetUnknownIsNone", func(t *testing.T) {
		maybeFound, err := serversRepo.GetGameServerByIdentifier(ctx, guildID, "no-such-server")
		require.NoError(t, err)
		assert.False(t, maybeFound.IsPresent())
	})

	t.Run("ListReturnsCreationOrder", func(t *testing.T) {
		listGuildID := testutils.NewTestGuildID()
		require.NoError(t, serversRepo.CreateGameServer(ctx, newTestGameServer(listGuildID, "first")))
		require.NoError(t, serversRepo.CreateGameServer(ctx, newTestGameServer(listGuildID, "second")))

		servers, err := serversRepo.ListGameServersByGuildID(ctx, listGuildID)
		require.NoError(t, err)
		require.Len(t, servers, 2)
		assert.Equal(t, "first", servers[0].Identifier)
		assert.Equal(t, "second", servers[1].Identifier)
	})

	t.Run("DeleteReportsExistence", func(t *testing.T) {
		server := newTestGameServer(guildID, "deleteme")
		require.NoError(t, serversRepo.CreateGameServer(ctx, server))

		deleted, err := serversRepo.DeleteGameServerByIdentifier(ctx, guildID, "deleteme")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = serversRepo.DeleteGameServerByIdentifier(ctx, guildID, "deleteme")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestChannelBindingsRepository(t *testing.T) {
	serversRepo, bindingsRepo := setupRepositoriesTest(t)
	ctx := context.Background()

	t.Run("ReplaceCollapsesToLatestBinding", func(t *testing.T) {
		guildID := testutils.NewTestGuildID()
		channelID := testutils.NewTestChannelID()

		require.NoError(t, bindingsRepo.ReplaceChannelBindings(ctx, guildID, channelID, []string{"alpha"}))
		require.NoError(t, bindingsRepo.ReplaceChannelBindings(ctx, guildID, channelID, []string{"beta"}))

		bindings, err := bindingsRepo.GetChannelBindings(ctx, guildID, channelID)
		require.NoError(t, err)
		require.Len(t, bindings, 1)
		assert.Equal(t, "beta", bindings[0].ServerIdentifier)
	})

	t.Run("DeleteByServerClearsAllChannels", func(t *testing.T) {
		guildID := testutils.NewTestGuildID()
		channelA := testutils.NewTestChannelID()
		channelB := testutils.NewTestChannelID()

		require.NoError(t, serversRepo.CreateGameServer(ctx, newTestGameServer(guildID, "shared")))
		require.NoError(t, bindingsRepo.ReplaceChannelBindings(ctx, guildID, channelA, []string{"shared"}))
		require.NoError(t, bindingsRepo.ReplaceChannelBindings(ctx, guildID, channelB, []string{"shared"}))

		deleted, err := bindingsRepo.DeleteBindingsByServerIdentifier(ctx, guildID, "shared")
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		for _, channelID := range []string{channelA, channelB} {
			bindings, err := bindingsRepo.GetChannelBindings(ctx, guildID, channelID)
			require.NoError(t, err)
			assert.Empty(t, bindings)
		}
	})

	t.Run("DeleteSingleBinding", func(t *testing.T) {
		guildID := testutils.NewTestGuildID()
		channelID := testutils.NewTestChannelID()

		require.NoError(t, bindingsRepo.ReplaceChannelBindings(ctx, guildID, channelID, []string{"stale"}))

		deleted, err := bindingsRepo.DeleteChannelBinding(ctx, guildID, channelID, "stale")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = bindingsRepo.DeleteChannelBinding(ctx, guildID, channelID, "stale")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
