package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultWebhookMaxElapsed bounds retries of a single delivery.
const DefaultWebhookMaxElapsed = 30 * time.Second

// WebhookNotifier POSTs each notification as JSON to URL. Server errors
// and 429 are retried with exponential backoff; other 4xx responses fail
// immediately.
type WebhookNotifier struct {
	URL        string
	Client     *http.Client
	MaxElapsed time.Duration

	newBackOff func() backoff.BackOff
}

func NewWebhookNotifier(url string, client *http.Client) *WebhookNotifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebhookNotifier{URL: url, Client: client, MaxElapsed: DefaultWebhookMaxElapsed}
}

func (w *WebhookNotifier) Notify(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := w.Client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(fmt.Errorf("post webhook: %w", err))
			}
			return fmt.Errorf("post webhook: %w", err)
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("post webhook: status %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("post webhook: status %d", resp.StatusCode))
		}
	}

	return backoff.Retry(operation, backoff.WithContext(w.backOff(), ctx))
}

func (w *WebhookNotifier) backOff() backoff.BackOff {
	if w.newBackOff != nil {
		return w.newBackOff()
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = w.MaxElapsed
	return bo
}
