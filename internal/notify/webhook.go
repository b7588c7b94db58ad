package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/workhub/workplace-backend/internal/service/models/order"
)

// WebhookChannel posts the order summary as a JSON card to a chat webhook.
type WebhookChannel struct {
	url    string
	client *http.Client
}

// NewWebhookChannel returns nil when no webhook URL is configured.
func NewWebhookChannel(url string) *WebhookChannel {
	if url == "" {
		return nil
	}

	return &WebhookChannel{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *WebhookChannel) Name() string {
	return "webhook"
}

func (c *WebhookChannel) Send(ctx context.Context, summary string, o order.Order) error {
	payload, err := json.Marshal(map[string]string{
		"title": fmt.Sprintf("Order #%d", o.ID),
		"text":  summary,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
