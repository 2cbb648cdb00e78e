package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jpalomino/subastas/pkg/clients"
)

// WebhookPublisher POSTs events to a configured endpoint.
type WebhookPublisher struct {
	url    string
	client clients.HTTPClientI
}

func NewWebhookPublisher(url string, client clients.HTTPClientI) *WebhookPublisher {
	return &WebhookPublisher{
		url:    url,
		client: client,
	}
}

func (p *WebhookPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
