package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/clixs/waitlist-api/internal/models"
)

// SMTPNotifier relays the team notification through an authenticated SMTP
// server using STARTTLS when the server offers it.
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
	timeout  time.Duration
	renderer *Renderer

	send func(ctx context.Context, msg *mail.Msg) error
}

func NewSMTPNotifier(cfg *Config, renderer *Renderer) *SMTPNotifier {
	n := &SMTPNotifier{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPass,
		from:     cfg.SMTPSender(),
		to:       cfg.Recipient,
		timeout:  cfg.Timeout,
		renderer: renderer,
	}
	n.send = n.dialAndSend
	return n
}

func (s *SMTPNotifier) Name() string {
	return ChannelSMTP
}

func (s *SMTPNotifier) Notify(ctx context.Context, sub *models.Submission) error {
	msg, err := s.buildMessage(sub)
	if err != nil {
		return err
	}

	if err := s.send(ctx, msg); err != nil {
		return fmt.Errorf("smtp: send: %w", err)
	}
	return nil
}

func (s *SMTPNotifier) buildMessage(sub *models.Submission) (*mail.Msg, error) {
	content, err := s.renderer.Render(sub)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("smtp: invalid sender %q: %w", s.from, err)
	}
	if err := msg.To(s.to); err != nil {
		return nil, fmt.Errorf("smtp: invalid recipient %q: %w", s.to, err)
	}
	msg.Subject(content.Subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, content.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, content.HTML)

	return msg, nil
}

func (s *SMTPNotifier) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(s.timeout),
	)
	if err != nil {
		return fmt.Errorf("smtp: client for %s:%d: %w", s.host, s.port, err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}
