package ss14

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"ahrelay/clients"
	"ahrelay/models"
)

// MockSS14Client implements the clients.SS14Client interface for testing
type MockSS14Client struct {
	mock.Mock
}

func (m *MockSS14Client) ResolveAccountID(ctx context.Context, playerName string) (mo.Option[string], error) {
	args := m.Called(ctx, playerName)
	return args.Get(0).(mo.Option[string]), args.Error(1)
}

func (m *MockSS14Client) SendBwoink(
	ctx context.Context,
	server *models.GameServer,
	req clients.BwoinkRequest,
) (int, string, error) {
	args := m.Called(ctx, server, req)
	return args.Int(0), args.String(1), args.Error(2)
}
