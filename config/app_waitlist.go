package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/clixs/waitlist-api/internal/notify"
)

const (
	// EmailValidationLenient accepts any non-empty string containing "@".
	EmailValidationLenient = "lenient"
	// EmailValidationStrict requires a well-formed address.
	EmailValidationStrict = "strict"
)

type WaitlistConfig struct {
	ValidationMode string `env:"WAITLIST_EMAIL_VALIDATION" envDefault:"lenient"`
	Notify         notify.Config
}

func NewWaitlistConfig() (*WaitlistConfig, error) {
	cfg := &WaitlistConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse waitlist env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (wc *WaitlistConfig) Validate() error {
	switch wc.ValidationMode {
	case EmailValidationLenient, EmailValidationStrict:
	default:
		return fmt.Errorf("config: WAITLIST_EMAIL_VALIDATION must be %q or %q, got %q",
			EmailValidationLenient, EmailValidationStrict, wc.ValidationMode)
	}

	return wc.Notify.Validate()
}
