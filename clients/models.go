package clients

// DiscordMessageParams holds parameters for sending Discord messages
type DiscordMessageParams struct {
	Content string
}

// DiscordPostMessageResponse represents the response from posting a message to Discord
type DiscordPostMessageResponse struct {
	ChannelID string
	MessageID string
}

// DiscordThreadResponse represents the response from creating a Discord thread
type DiscordThreadResponse struct {
	ThreadID   string
	ThreadName string
}

// DiscordStarterMessage represents the message a public thread was created
// from. ChannelID is the parent channel the starter message lives in.
type DiscordStarterMessage struct {
	MessageID         string
	ChannelID         string
	AuthorDisplayName string
}

// BwoinkRequest holds the fields forwarded to a game server's
// /admin/actions/send_bwoink endpoint
type BwoinkRequest struct {
	AccountID string
	Username  string
	Text      string
	RoleName  string
	RoleColor string
}
