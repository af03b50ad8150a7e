package notify

// BuildNotifiers constructs a notifier for every channel cfg enables, in the
// order webhook, Resend, Mailgun, SMTP.
func BuildNotifiers(cfg *Config) ([]Notifier, error) {
	renderer, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}

	client := NewHTTPClient(cfg.Timeout)

	var notifiers []Notifier
	if cfg.WebhookEnabled() {
		notifiers = append(notifiers, NewWebhookNotifier(client, cfg.WebhookURL, cfg.Source))
	}
	if cfg.ResendEnabled() {
		notifiers = append(notifiers, NewResendNotifier(client, cfg, renderer))
	}
	if cfg.MailgunEnabled() {
		notifiers = append(notifiers, NewMailgunNotifier(cfg, renderer))
	}
	if cfg.SMTPEnabled() {
		notifiers = append(notifiers, NewSMTPNotifier(cfg, renderer))
	}

	return notifiers, nil
}

// NewDispatcherFromConfig wires BuildNotifiers into a Dispatcher using cfg's
// timeout and breaker settings.
func NewDispatcherFromConfig(cfg *Config, opts DispatcherOptions) (*Dispatcher, error) {
	notifiers, err := BuildNotifiers(cfg)
	if err != nil {
		return nil, err
	}

	opts.Timeout = cfg.Timeout
	opts.BreakerThreshold = cfg.BreakerThreshold
	opts.BreakerRecovery = cfg.BreakerRecovery

	return NewDispatcher(notifiers, opts), nil
}
