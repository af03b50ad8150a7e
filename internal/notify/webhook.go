package notify

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/clixs/waitlist-api/internal/models"
	"github.com/clixs/waitlist-api/pkg/constants"
)

// WebhookPayload is the JSON body posted to the webhook.
type WebhookPayload struct {
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

type WebhookNotifier struct {
	client *resty.Client
	url    string
	source string
}

func NewWebhookNotifier(client *resty.Client, url, source string) *WebhookNotifier {
	return &WebhookNotifier{client: client, url: url, source: source}
}

func (w *WebhookNotifier) Name() string {
	return ChannelWebhook
}

// Notify fails on any 4xx or 5xx response.
func (w *WebhookNotifier) Notify(ctx context.Context, sub *models.Submission) error {
	if sub == nil {
		return ErrNoSubmission
	}

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(WebhookPayload{
			Email:     sub.Email,
			Timestamp: constants.FormatISO8601UTC(sub.ReceivedAt),
			Source:    w.source,
		}).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}

	return checkResponse(ChannelWebhook, resp)
}
