package discord

import (
	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"ahrelay/clients"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) PostMessage(
	channelID string,
	params clients.DiscordMessageParams,
) (*clients.DiscordPostMessageResponse, error) {
	args := m.Called(channelID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordPostMessageResponse), args.Error(1)
}

func (m *MockDiscordClient) CreatePublicThread(
	channelID, messageID, name string,
) (*clients.DiscordThreadResponse, error) {
	args := m.Called(channelID, messageID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordThreadResponse), args.Error(1)
}

func (m *MockDiscordClient) GetThreadStarterMessage(
	threadID string,
) (mo.Option[*clients.DiscordStarterMessage], error) {
	args := m.Called(threadID)
	return args.Get(0).(mo.Option[*clients.DiscordStarterMessage]), args.Error(1)
}

func (m *MockDiscordClient) AddReaction(channelID, messageID, emoji string) error {
	args := m.Called(channelID, messageID, emoji)
	return args.Error(0)
}
