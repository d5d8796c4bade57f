package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"ahrelay/core"
	dbtx "ahrelay/db/tx"
	"ahrelay/models"
)

type PostgresChannelBindingsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for channel_bindings table
var channelBindingsColumns = []string{
	"id",
	"discord_guild_id",
	"discord_channel_id",
	"server_identifier",
	"position",
	"created_at",
}

func NewPostgresChannelBindingsRepository(db *sqlx.DB, schema string) *PostgresChannelBindingsRepository {
	return &PostgresChannelBindingsRepository{db: db, schema: schema}
}

func (r *PostgresChannelBindingsRepository) GetChannelBindings(
	ctx context.Context,
	guildID, channelID string,
) ([]*models.ChannelBinding, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(channelBindingsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.channel_bindings
		WHERE discord_guild_id = $1 AND discord_channel_id = $2
		ORDER BY position ASC`, columnsStr, r.schema)

	var bindings []*models.ChannelBinding
	err := db.SelectContext(ctx, &bindings, query, guildID, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel bindings: %w", err)
	}

	return bindings, nil
}

// ReplaceChannelBindings removes every binding for the channel and inserts
// the given identifiers in order. Callers run this inside a transaction.
func (r *PostgresChannelBindingsRepository) ReplaceChannelBindings(
	ctx context.Context,
	guildID, channelID string,
	identifiers []string,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	deleteQuery := fmt.Sprintf(
		`DELETE FROM %s.channel_bindings WHERE discord_guild_id = $1 AND discord_channel_id = $2`,
		r.schema,
	)
	if _, err := db.ExecContext(ctx, deleteQuery, guildID, channelID); err != nil {
		return fmt.Errorf("failed to clear channel bindings: %w", err)
	}

	insertColumns := []string{
		"id",
		"discord_guild_id",
		"discord_channel_id",
		"server_identifier",
		"position",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s.channel_bindings (%s)
		VALUES ($1, $2, $3, $4, $5)`, r.schema, columnsStr)

	for position, identifier := range identifiers {
		id := core.NewID("chb")
		if _, err := db.ExecContext(ctx, insertQuery, id, guildID, channelID, identifier, position); err != nil {
			return fmt.Errorf("failed to insert channel binding for %s: %w", identifier, err)
		}
	}

	return nil
}

// DeleteChannelBinding removes a single identifier from a channel's binding
// (used for lazy pruning of stale entries)
func (r *PostgresChannelBindingsRepository) DeleteChannelBinding(
	ctx context.Context,
	guildID, channelID, identifier string,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		DELETE FROM %s.channel_bindings
		WHERE discord_guild_id = $1 AND discord_channel_id = $2 AND server_identifier = $3`, r.schema)

	result, err := db.ExecContext(ctx, query, guildID, channelID, identifier)
	if err != nil {
		return false, fmt.Errorf("failed to delete channel binding: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rowsAffected > 0, nil
}

// DeleteBindingsByServerIdentifier detaches a server from every channel in
// the guild
func (r *PostgresChannelBindingsRepository) DeleteBindingsByServerIdentifier(
	ctx context.Context,
	guildID, identifier string,
) (int64, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(
		`DELETE FROM %s.channel_bindings WHERE discord_guild_id = $1 AND server_identifier = $2`,
		r.schema,
	)

	result, err := db.ExecContext(ctx, query, guildID, identifier)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bindings by server identifier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rowsAffected, nil
}
