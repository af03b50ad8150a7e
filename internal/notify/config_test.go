package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Clixs Website Waitlist", cfg.Source)
	assert.Equal(t, "https://api.resend.com/emails", cfg.ResendEndpoint)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "Clixs Waitlist <noreply@clixs.io>", cfg.Sender)
	assert.Equal(t, "he-IL", cfg.Locale)
	assert.Equal(t, "Asia/Jerusalem", cfg.TimeZone)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Zero(t, cfg.BreakerThreshold, "circuit breaker is opt-in")
	assert.Empty(t, cfg.EnabledChannels(), "no channel is enabled without credentials")
}

func TestLoadConfigFrom_EnablesChannelsIndependently(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{
		"WAITLIST_WEBHOOK_URL": "https://hooks.example.com/waitlist",
		"SMTP_USER":            "ops@clixs.io",
		"SMTP_PASS":            "secret",
		"MAILGUN_DOMAIN":       "mg.clixs.io",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{ChannelWebhook, ChannelSMTP}, cfg.EnabledChannels())
	assert.Equal(t, "ops@clixs.io", cfg.SMTPSender(), "sender falls back to the SMTP user")

	cfg.SMTPFrom = "alerts@clixs.io"
	assert.Equal(t, "alerts@clixs.io", cfg.SMTPSender())
}

func TestLoadConfigFrom_AllChannels(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{
		"WAITLIST_WEBHOOK_URL": "https://hooks.example.com/waitlist",
		"RESEND_API_KEY":       "re_123",
		"MAILGUN_DOMAIN":       "mg.clixs.io",
		"MAILGUN_API_KEY":      "key-123",
		"SMTP_USER":            "ops@clixs.io",
		"SMTP_PASS":            "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{ChannelWebhook, ChannelResend, ChannelMailgun, ChannelSMTP}, cfg.EnabledChannels())
}

func TestLoadConfigFrom_RejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"timezone":  {"WAITLIST_NOTIFY_TIMEZONE": "Mars/Olympus"},
		"locale":    {"WAITLIST_NOTIFY_LOCALE": "not a locale!"},
		"timeout":   {"WAITLIST_NOTIFY_TIMEOUT": "0s"},
		"smtp port": {"SMTP_PORT": "70000"},
		"threshold": {"WAITLIST_NOTIFY_BREAKER_THRESHOLD": "-1"},
		"duration":  {"WAITLIST_NOTIFY_TIMEOUT": "soon"},
	}

	for name, environ := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfigFrom(environ)
			assert.Error(t, err)
		})
	}
}
