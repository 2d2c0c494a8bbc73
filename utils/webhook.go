package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type WebhookClient struct {
	client *resty.Client
	url    string
}

func NewWebhookClient(url string) *WebhookClient {
	return &WebhookClient{
		client: resty.New().SetTimeout(10 * time.Second),
		url:    url,
	}
}

// Post sends payload as JSON and fails on any non-2xx answer.
func (w *WebhookClient) Post(ctx context.Context, payload any) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(payload).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}
