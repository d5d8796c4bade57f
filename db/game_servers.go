package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	dbtx "ahrelay/db/tx"
	"ahrelay/models"
)

type PostgresGameServersRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for game_servers table
var gameServersColumns = []string{
	"id",
	"discord_guild_id",
	"identifier",
	"display_name",
	"host",
	"token",
	"created_at",
	"updated_at",
}

func NewPostgresGameServersRepository(db *sqlx.DB, schema string) *PostgresGameServersRepository {
	return &PostgresGameServersRepository{db: db, schema: schema}
}

func (r *PostgresGameServersRepository) CreateGameServer(
	ctx context.Context,
	server *models.GameServer,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	insertColumns := []string{
		"id",
		"discord_guild_id",
		"identifier",
		"display_name",
		"host",
		"token",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(gameServersColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.game_servers (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, r.schema, columnsStr, returningStr)

	err := db.QueryRowxContext(
		ctx,
		query,
		server.ID, server.DiscordGuildID, server.Identifier, server.DisplayName, server.Host, server.Token,
	).StructScan(server)
	if err != nil {
		return fmt.Errorf("failed to create game server: %w", err)
	}

	return nil
}

func (r *PostgresGameServersRepository) GetGameServerByIdentifier(
	ctx context.Context,
	guildID, identifier string,
) (mo.Option[*models.GameServer], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(gameServersColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.game_servers
		WHERE discord_guild_id = $1 AND identifier = $2`, columnsStr, r.schema)

	var server models.GameServer
	err := db.GetContext(ctx, &server, query, guildID, identifier)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.GameServer](), nil
		}
		return mo.None[*models.GameServer](), fmt.Errorf("failed to get game server by identifier: %w", err)
	}

	return mo.Some(&server), nil
}

func (r *PostgresGameServersRepository) ListGameServersByGuildID(
	ctx context.Context,
	guildID string,
) ([]*models.GameServer, error) {
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}

	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(gameServersColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.game_servers
		WHERE discord_guild_id = $1
		ORDER BY created_at ASC`, columnsStr, r.schema)

	var servers []*models.GameServer
	err := db.SelectContext(ctx, &servers, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game servers by guild ID: %w", err)
	}

	return servers, nil
}

func (r *PostgresGameServersRepository) DeleteGameServerByIdentifier(
	ctx context.Context,
	guildID, identifier string,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(
		`DELETE FROM %s.game_servers WHERE discord_guild_id = $1 AND identifier = $2`,
		r.schema,
	)

	result, err := db.ExecContext(ctx, query, guildID, identifier)
	if err != nil {
		return false, fmt.Errorf("failed to delete game server: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rowsAffected > 0, nil
}
