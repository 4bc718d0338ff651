package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ghuser/beanbridge/services/rfq/domain/models"
)

// WebhookNotifier posts short JSON messages to a Slack-compatible incoming
// webhook so the sales team sees new RFQs and status changes in their channel.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier registers the webhook URL. An empty URL yields a notifier
// whose calls succeed as no-ops.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// NotifyNewRFQ announces a fresh submission.
func (n *WebhookNotifier) NotifyNewRFQ(ctx context.Context, rfq *models.RFQ) error {
	text := fmt.Sprintf("New RFQ %s from %s (%s) — priority %s",
		rfq.Number, rfq.Company.CompanyName, rfq.Company.Country, rfq.Priority)
	return n.post(ctx, text)
}

// NotifyStatusChange announces a significant status transition.
func (n *WebhookNotifier) NotifyStatusChange(ctx context.Context, rfq *models.RFQ, previous, next models.Status) error {
	text := fmt.Sprintf("RFQ %s (%s): %s → %s",
		rfq.Number, rfq.Company.CompanyName, previous, next)
	return n.post(ctx, text)
}

func (n *WebhookNotifier) post(ctx context.Context, text string) error {
	if n.url == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook error: %s", resp.Status)
	}
	return nil
}
