package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"ahrelay/clients"
)

// DiscordClient implements the clients.DiscordClient interface on top of a
// discordgo session
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient creates a new Discord client backed by the given session
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

func (c *DiscordClient) PostMessage(
	channelID string,
	params clients.DiscordMessageParams,
) (*clients.DiscordPostMessageResponse, error) {
	message, err := c.session.ChannelMessageSend(channelID, params.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}

	return &clients.DiscordPostMessageResponse{
		ChannelID: message.ChannelID,
		MessageID: message.ID,
	}, nil
}

func (c *DiscordClient) CreatePublicThread(
	channelID, messageID, name string,
) (*clients.DiscordThreadResponse, error) {
	// 1440 minutes = auto-archive after a day of inactivity
	thread, err := c.session.MessageThreadStart(channelID, messageID, name, 1440)
	if err != nil {
		return nil, fmt.Errorf("failed to create thread on message %s: %w", messageID, err)
	}

	return &clients.DiscordThreadResponse{
		ThreadID:   thread.ID,
		ThreadName: thread.Name,
	}, nil
}

func (c *DiscordClient) GetThreadStarterMessage(
	threadID string,
) (mo.Option[*clients.DiscordStarterMessage], error) {
	channel, err := c.session.Channel(threadID)
	if err != nil {
		if isDiscordNotFound(err) {
			return mo.None[*clients.DiscordStarterMessage](), nil
		}
		return mo.None[*clients.DiscordStarterMessage](), fmt.Errorf("failed to get thread channel: %w", err)
	}
	if channel.ParentID == "" {
		return mo.None[*clients.DiscordStarterMessage](), nil
	}

	// A thread created from a message shares its ID with that message,
	// which lives in the thread's parent channel
	message, err := c.session.ChannelMessage(channel.ParentID, threadID)
	if err != nil {
		if isDiscordNotFound(err) {
			return mo.None[*clients.DiscordStarterMessage](), nil
		}
		return mo.None[*clients.DiscordStarterMessage](), fmt.Errorf("failed to get thread starter message: %w", err)
	}

	// Webhook-authored bridge messages carry the in-game player name as the
	// webhook's username
	authorDisplayName := ""
	if message.Author != nil {
		authorDisplayName = message.Author.Username
	}

	return mo.Some(&clients.DiscordStarterMessage{
		MessageID:         message.ID,
		ChannelID:         message.ChannelID,
		AuthorDisplayName: authorDisplayName,
	}), nil
}

func (c *DiscordClient) AddReaction(channelID, messageID, emoji string) error {
	if err := c.session.MessageReactionAdd(channelID, messageID, emoji); err != nil {
		return fmt.Errorf("failed to add %s reaction to message %s: %w", emoji, messageID, err)
	}
	return nil
}

// isDiscordNotFound reports whether the error is a Discord API 404
func isDiscordNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
