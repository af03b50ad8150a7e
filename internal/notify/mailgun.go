package notify

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/clixs/waitlist-api/internal/models"
)

// mailgunMessenger is the subset of *mailgun.MailgunImpl the notifier needs.
type mailgunMessenger interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

type MailgunNotifier struct {
	client   mailgunMessenger
	from     string
	to       string
	renderer *Renderer
}

func NewMailgunNotifier(cfg *Config, renderer *Renderer) *MailgunNotifier {
	client := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
	if cfg.MailgunAPIBase != "" {
		client.SetAPIBase(cfg.MailgunAPIBase)
	}

	return newMailgunNotifier(client, cfg.Sender, cfg.Recipient, renderer)
}

func newMailgunNotifier(client mailgunMessenger, from, to string, renderer *Renderer) *MailgunNotifier {
	return &MailgunNotifier{client: client, from: from, to: to, renderer: renderer}
}

func (m *MailgunNotifier) Name() string {
	return ChannelMailgun
}

func (m *MailgunNotifier) Notify(ctx context.Context, sub *models.Submission) error {
	content, err := m.renderer.Render(sub)
	if err != nil {
		return err
	}

	message := m.client.NewMessage(m.from, content.Subject, content.Text, m.to)
	message.SetHtml(content.HTML)

	if _, _, err := m.client.Send(ctx, message); err != nil {
		return fmt.Errorf("mailgun: send: %w", err)
	}

	return nil
}
