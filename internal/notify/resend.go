package notify

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/clixs/waitlist-api/internal/models"
)

type resendEmail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// ResendNotifier sends the team notification through the Resend email API.
type ResendNotifier struct {
	client   *resty.Client
	endpoint string
	apiKey   string
	from     string
	to       string
	renderer *Renderer
}

func NewResendNotifier(client *resty.Client, cfg *Config, renderer *Renderer) *ResendNotifier {
	return &ResendNotifier{
		client:   client,
		endpoint: cfg.ResendEndpoint,
		apiKey:   cfg.ResendAPIKey,
		from:     cfg.Sender,
		to:       cfg.Recipient,
		renderer: renderer,
	}
}

func (r *ResendNotifier) Name() string {
	return ChannelResend
}

func (r *ResendNotifier) Notify(ctx context.Context, sub *models.Submission) error {
	content, err := r.renderer.Render(sub)
	if err != nil {
		return err
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetAuthToken(r.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(resendEmail{
			From:    r.from,
			To:      r.to,
			Subject: content.Subject,
			HTML:    content.HTML,
		}).
		Post(r.endpoint)
	if err != nil {
		return fmt.Errorf("resend: post: %w", err)
	}

	return checkResponse(ChannelResend, resp)
}
