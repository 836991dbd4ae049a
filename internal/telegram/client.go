package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	apiBase = "https://api.telegram.org"

	// pollTimeout is how many seconds getUpdates asks the server to hold
	// the connection when no updates are pending.
	pollTimeout = 25
)

// Client is a minimal Telegram Bot API client covering what the bot needs:
// identifying itself, long-polling for updates, and sending text replies.
type Client struct {
	token  string
	base   string
	client *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token: token,
		base:  apiBase,
		client: &http.Client{
			// Must outlive the getUpdates long-poll hold.
			Timeout: 60 * time.Second,
		},
	}
}

// NewClientWithBaseURL is NewClient against a custom API host, for tests.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.base = baseURL
	return c
}

// apiResponse is the envelope every Bot API method returns.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
}

func (c *Client) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.base, c.token, method)
}

// GetMe fetches the bot's own account, which doubles as a token check.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint("getMe"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	var me User
	if err := decodeResult(resp, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// GetUpdates long-polls for updates with IDs >= offset. It returns an empty
// slice when the hold expires without traffic.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	url := fmt.Sprintf("%s?offset=%d&timeout=%d", c.endpoint("getUpdates"), offset, pollTimeout)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	var updates []Update
	if err := decodeResult(resp, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage sends a plain-text message to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return decodeResult(resp, nil)
}

// decodeResult unwraps the Bot API envelope into out. API-level failures come
// back as errors carrying the server's description, whatever the HTTP status.
func decodeResult(resp *http.Response, out interface{}) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
	if !envelope.OK {
		return fmt.Errorf("API error %d: %s", envelope.ErrorCode, envelope.Description)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
	}
	return nil
}
