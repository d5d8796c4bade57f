package models

type DiscordMessageEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	Content   string
	// AuthorDisplayName is the name shown in chat. For webhook bridge
	// messages this carries the in-game tag, e.g. "Steve (Grimbly Station)"
	AuthorDisplayName string
	AuthorIsBot       bool
	// WebhookID is set when the message was delivered through a webhook
	// (empty otherwise). Webhook messages are flagged as bot messages but
	// are the game server's own bridge traffic and must be processed.
	WebhookID string
	// IsThread is true when the message was posted inside a public thread
	IsThread bool
	// RoleName/RoleColor describe the author's top guild role, forwarded
	// to the game server alongside relayed replies
	RoleName  string
	RoleColor string
}
