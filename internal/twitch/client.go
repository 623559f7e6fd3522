// Package twitch contains minimal helpers to interact with the Twitch
// Helix API for user resolution and live-stream status, using an app
// access token.
package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	twitchoauth "golang.org/x/oauth2/twitch"
)

const helixBaseURL = "https://api.twitch.tv/helix"

// Client is a Twitch Helix API client
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client

	tokenURL string
	baseURL  string
}

// NewClient creates a new Twitch API client
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		tokenURL: twitchoauth.Endpoint.TokenURL,
		baseURL:  helixBaseURL,
	}
}

// AppToken performs the client-credentials exchange and returns an app
// access token. Callers acquire one token per poll tick; nothing is
// cached across ticks.
func (c *Client) AppToken(ctx context.Context) (string, error) {
	cfg := &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.tokenURL,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := cfg.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("twitch token exchange failed: %w", err)
	}
	return tok.AccessToken, nil
}

// User is a Twitch user as returned by the Helix users endpoint
type User struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// Stream describes an active live stream
type Stream struct {
	Title    string `json:"title"`
	GameName string `json:"game_name"`
}

// UserByLogin resolves a login name to its Twitch user
func (c *Client) UserByLogin(ctx context.Context, token, login string) (*User, error) {
	var body struct {
		Data []User `json:"data"`
	}
	if err := c.get(ctx, token, "/users?login="+login, &body); err != nil {
		return nil, err
	}
	if len(body.Data) == 0 {
		return nil, fmt.Errorf("twitch user %q not found", login)
	}
	return &body.Data[0], nil
}

// StreamByUserID returns the user's active stream, or nil if offline
func (c *Client) StreamByUserID(ctx context.Context, token, userID string) (*Stream, error) {
	var body struct {
		Data []Stream `json:"data"`
	}
	if err := c.get(ctx, token, "/streams?user_id="+userID, &body); err != nil {
		return nil, err
	}
	if len(body.Data) == 0 {
		return nil, nil
	}
	return &body.Data[0], nil
}

func (c *Client) get(ctx context.Context, token, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Client-Id", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twitch API error: status %d, body: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
