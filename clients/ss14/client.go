package ss14

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/mo"

	"ahrelay/clients"
	"ahrelay/models"
)

// SS14Client implements the clients.SS14Client interface over plain HTTP
type SS14Client struct {
	httpClient *http.Client
	// authBaseURL is the base URL of the SS14 auth service,
	// e.g. https://auth.spacestation14.com
	authBaseURL string
}

// NewSS14Client creates a new SS14 client. The auth base URL is configurable
// so tests can point it at a local server.
func NewSS14Client(httpClient *http.Client, authBaseURL string) clients.SS14Client {
	return &SS14Client{
		httpClient:  httpClient,
		authBaseURL: strings.TrimSuffix(authBaseURL, "/"),
	}
}

// accountResponse mirrors the auth service's name-query response
type accountResponse struct {
	UserID string `json:"userId"`
}

func (c *SS14Client) ResolveAccountID(ctx context.Context, playerName string) (mo.Option[string], error) {
	queryURL := fmt.Sprintf("%s/api/query/name?name=%s", c.authBaseURL, url.QueryEscape(playerName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return mo.None[string](), fmt.Errorf("failed to create account query request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mo.None[string](), fmt.Errorf("failed to execute account query request: %w", err)
	}
	defer resp.Body.Close()

	// 404 means the name is simply unknown, not a failure
	if resp.StatusCode == http.StatusNotFound {
		return mo.None[string](), nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return mo.None[string](), fmt.Errorf("failed to read account query response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return mo.None[string](), &clients.SS14APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var account accountResponse
	if err := json.Unmarshal(body, &account); err != nil {
		return mo.None[string](), &clients.SS14APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if account.UserID == "" {
		return mo.None[string](), &clients.SS14APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return mo.Some(account.UserID), nil
}

// bwoinkPayload is the wire format of the send_bwoink moderation endpoint
type bwoinkPayload struct {
	Guid          string `json:"Guid"`
	Username      string `json:"Username"`
	Text          string `json:"Text"`
	UserOnly      bool   `json:"UserOnly"`
	WebhookUpdate bool   `json:"WebhookUpdate"`
	RoleName      string `json:"RoleName"`
	RoleColor     string `json:"RoleColor"`
}

func (c *SS14Client) SendBwoink(
	ctx context.Context,
	server *models.GameServer,
	bwoinkReq clients.BwoinkRequest,
) (int, string, error) {
	payload := bwoinkPayload{
		Guid:          bwoinkReq.AccountID,
		Username:      bwoinkReq.Username,
		Text:          bwoinkReq.Text,
		UserOnly:      false,
		WebhookUpdate: true,
		RoleName:      bwoinkReq.RoleName,
		RoleColor:     bwoinkReq.RoleColor,
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("failed to encode bwoink payload: %w", err)
	}

	// Game servers only expose plain HTTP on an IP:port, no TLS
	relayURL := fmt.Sprintf("http://%s/admin/actions/send_bwoink", server.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, relayURL, bytes.NewReader(encoded))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create bwoink request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "SS14Token "+server.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("failed to execute bwoink request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to read bwoink response body: %w", err)
	}

	return resp.StatusCode, string(body), nil
}
