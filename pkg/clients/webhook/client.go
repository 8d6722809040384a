package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client posts JSON notifications to a single webhook endpoint.
type Client struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client for url.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "inventory-reporter").
		SetTimeout(timeout)

	return &Client{httpClient: restyClient, url: url}
}

// Message is the notification body. Text is a human summary; Data carries the
// structured payload.
type Message struct {
	Event string `json:"event"`
	Text  string `json:"text"`
	Data  any    `json:"data,omitempty"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Send posts msg and treats any 4xx or 5xx answer as a failure.
func (c *Client) Send(ctx context.Context, msg Message) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(msg).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		if message == "" {
			message = resp.Status()
		}
		return fmt.Errorf("webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
