package models

import (
	"time"
)

// GameServer is an operator-registered SS14 server a guild relays ahelps for.
// Records are immutable after creation; reconfiguring means remove + re-add.
type GameServer struct {
	ID             string    `db:"id"               json:"id"`
	DiscordGuildID string    `db:"discord_guild_id" json:"discord_guild_id"`
	Identifier     string    `db:"identifier"       json:"identifier"`
	DisplayName    string    `db:"display_name"     json:"display_name"`
	// Host is the address of the server's moderation API, IP:port only -
	// domain names are rejected so no TLS ambiguity can arise.
	Host      string    `db:"host"       json:"host"`
	Token     string    `db:"token"      json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ChannelBinding associates a Discord channel with one server identifier.
// The storage shape allows an ordered list per channel, but use_channel
// replaces the whole binding with a single entry.
type ChannelBinding struct {
	ID               string    `db:"id"                 json:"id"`
	DiscordGuildID   string    `db:"discord_guild_id"   json:"discord_guild_id"`
	DiscordChannelID string    `db:"discord_channel_id" json:"discord_channel_id"`
	ServerIdentifier string    `db:"server_identifier"  json:"server_identifier"`
	Position         int       `db:"position"           json:"position"`
	CreatedAt        time.Time `db:"created_at"         json:"created_at"`
}
