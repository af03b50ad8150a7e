package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/clixs/waitlist-api/internal/models"
)

func newTestSMTPNotifier(t *testing.T) *SMTPNotifier {
	t.Helper()

	cfg := DefaultConfig()
	cfg.SMTPUser = "ops@clixs.io"
	cfg.SMTPPass = "secret"
	renderer, err := NewRenderer(cfg)
	require.NoError(t, err)

	return NewSMTPNotifier(cfg, renderer)
}

func TestSMTPNotifier_BuildsMultipartMessage(t *testing.T) {
	n := newTestSMTPNotifier(t)

	msg, err := n.buildMessage(&models.Submission{Email: "ada@example.com", ReceivedAt: receivedAt})
	require.NoError(t, err)

	recipients, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"team@clixs.io"}, recipients)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: New Waitlist Signup: ada@example.com")
	assert.Contains(t, raw, "ops@clixs.io")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
}

func TestSMTPNotifier_NotifyUsesSender(t *testing.T) {
	n := newTestSMTPNotifier(t)

	var sent *mail.Msg
	n.send = func(_ context.Context, msg *mail.Msg) error {
		sent = msg
		return nil
	}

	require.NoError(t, n.Notify(context.Background(), &models.Submission{Email: "ada@example.com", ReceivedAt: receivedAt}))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"New Waitlist Signup: ada@example.com"}, sent.GetGenHeader(mail.HeaderSubject))
}

func TestSMTPNotifier_SendFailure(t *testing.T) {
	n := newTestSMTPNotifier(t)
	n.send = func(context.Context, *mail.Msg) error {
		return errors.New("535 authentication failed")
	}

	err := n.Notify(context.Background(), &models.Submission{Email: "ada@example.com", ReceivedAt: receivedAt})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "535")
}

func TestSMTPNotifier_InvalidSender(t *testing.T) {
	n := newTestSMTPNotifier(t)
	n.from = "not an address"

	_, err := n.buildMessage(&models.Submission{Email: "ada@example.com", ReceivedAt: receivedAt})
	assert.Error(t, err)
}
