// Package notify fans a waitlist submission out to the configured notification
// channels. Every channel is best-effort: its failure is logged and reported in
// an Outcome but never propagated to the caller.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/clixs/waitlist-api/internal/models"
)

const (
	ChannelWebhook = "webhook"
	ChannelResend  = "resend"
	ChannelMailgun = "mailgun"
	ChannelSMTP    = "smtp"
)

// Notifier delivers one submission over one channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, sub *models.Submission) error
}

// Outcome is the per-channel result of a dispatch.
type Outcome struct {
	Channel  string
	Err      error
	Duration time.Duration
	// Skipped is set when the channel's circuit was open and no call was made.
	Skipped bool
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// ErrNoSubmission is returned by notifiers handed a nil submission.
var ErrNoSubmission = errors.New("notify: nil submission")

// CountFailed returns the number of outcomes carrying an error.
func CountFailed(outcomes []Outcome) int {
	failed := 0
	for _, o := range outcomes {
		if !o.OK() {
			failed++
		}
	}
	return failed
}
