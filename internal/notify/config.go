package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// Config enables each channel independently: a channel is active exactly when
// its credentials are present. Everything else has a working default.
type Config struct {
	// WebhookURL receives a JSON POST per submission.
	WebhookURL string `env:"WAITLIST_WEBHOOK_URL"`
	// Source is the fixed tag sent in webhook payloads.
	Source string `env:"WAITLIST_SOURCE" envDefault:"Clixs Website Waitlist"`

	ResendAPIKey   string `env:"RESEND_API_KEY"`
	ResendEndpoint string `env:"RESEND_API_URL" envDefault:"https://api.resend.com/emails"`

	MailgunDomain  string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey  string `env:"MAILGUN_API_KEY"`
	MailgunAPIBase string `env:"MAILGUN_API_BASE"`

	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	// SMTPFrom falls back to SMTPUser.
	SMTPFrom string `env:"SMTP_FROM"`

	Sender    string `env:"WAITLIST_NOTIFY_FROM" envDefault:"Clixs Waitlist <noreply@clixs.io>"`
	Recipient string `env:"WAITLIST_NOTIFY_TO" envDefault:"team@clixs.io"`
	SiteName  string `env:"WAITLIST_SITE_NAME" envDefault:"Clixs Website"`
	Locale    string `env:"WAITLIST_NOTIFY_LOCALE" envDefault:"he-IL"`
	TimeZone  string `env:"WAITLIST_NOTIFY_TIMEZONE" envDefault:"Asia/Jerusalem"`

	// Timeout bounds each channel call.
	Timeout time.Duration `env:"WAITLIST_NOTIFY_TIMEOUT" envDefault:"10s"`
	// BreakerThreshold is the consecutive-failure count that opens a channel's
	// circuit. The default 0 leaves dispatch stateless: every submission is
	// attempted on every channel.
	BreakerThreshold int           `env:"WAITLIST_NOTIFY_BREAKER_THRESHOLD" envDefault:"0"`
	BreakerRecovery  time.Duration `env:"WAITLIST_NOTIFY_BREAKER_RECOVERY" envDefault:"1m"`
}

// DefaultConfig returns a config with every default applied and no channel enabled.
func DefaultConfig() *Config {
	cfg, err := LoadConfigFrom(map[string]string{})
	if err != nil {
		// Defaults are static; failing here is a programming error.
		panic(fmt.Sprintf("notify: invalid default config: %v", err))
	}
	return cfg
}

// LoadConfig reads the process environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("notify: parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadConfigFrom reads environ instead of the process environment.
func LoadConfigFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("notify: parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("notify: WAITLIST_NOTIFY_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.BreakerThreshold < 0 {
		return fmt.Errorf("notify: WAITLIST_NOTIFY_BREAKER_THRESHOLD must not be negative")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("notify: SMTP_PORT must be between 1 and 65535, got %d", c.SMTPPort)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("notify: invalid WAITLIST_NOTIFY_LOCALE %q: %w", c.Locale, err)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("notify: invalid WAITLIST_NOTIFY_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return nil
}

func (c *Config) WebhookEnabled() bool {
	return strings.TrimSpace(c.WebhookURL) != ""
}

func (c *Config) ResendEnabled() bool {
	return strings.TrimSpace(c.ResendAPIKey) != ""
}

func (c *Config) MailgunEnabled() bool {
	return c.MailgunDomain != "" && c.MailgunAPIKey != ""
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

func (c *Config) SMTPSender() string {
	if c.SMTPFrom != "" {
		return c.SMTPFrom
	}
	return c.SMTPUser
}

// EnabledChannels lists active channels in dispatch order.
func (c *Config) EnabledChannels() []string {
	var channels []string
	if c.WebhookEnabled() {
		channels = append(channels, ChannelWebhook)
	}
	if c.ResendEnabled() {
		channels = append(channels, ChannelResend)
	}
	if c.MailgunEnabled() {
		channels = append(channels, ChannelMailgun)
	}
	if c.SMTPEnabled() {
		channels = append(channels, ChannelSMTP)
	}
	return channels
}
