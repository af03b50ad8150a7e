package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/clixs/waitlist-api/internal/log"
	"github.com/clixs/waitlist-api/internal/models"
	"github.com/clixs/waitlist-api/internal/notify"
)

// dispatcherFactory is replaced in tests.
type dispatcherFactory func(cfg *notify.Config, logger *log.Logger) (sender, error)

type sender interface {
	Dispatch(ctx context.Context, sub *models.Submission) []notify.Outcome
	Channels() []string
}

func defaultDispatcherFactory(cfg *notify.Config, logger *log.Logger) (sender, error) {
	dispatcher, err := notify.NewDispatcherFromConfig(cfg, notify.DispatcherOptions{Logger: logger})
	if err != nil {
		return nil, err
	}
	return dispatcher, nil
}

func newRootCommand(logger *log.Logger) *cobra.Command {
	return newRootCommandWith(logger, notify.LoadConfig, defaultDispatcherFactory)
}

func newRootCommandWith(logger *log.Logger, loadConfig func() (*notify.Config, error), newSender dispatcherFactory) *cobra.Command {
	root := &cobra.Command{
		Use:          "waitlistctl",
		Short:        "Inspect and test waitlist notification channels",
		SilenceUsage: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "channels",
		Short: "List the notification channels enabled by the environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return printChannels(cmd.OutOrStdout(), cfg.EnabledChannels())
		},
	})

	var email string
	var timeout time.Duration
	sendTest := &cobra.Command{
		Use:   "send-test",
		Short: "Send a test signup through every enabled channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.Contains(email, "@") {
				return fmt.Errorf("--email must contain '@'")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("timeout") {
				if timeout <= 0 {
					return fmt.Errorf("--timeout must be positive, got %s", timeout)
				}
				cfg.Timeout = timeout
			}
			s, err := newSender(cfg, logger)
			if err != nil {
				return err
			}
			if len(s.Channels()) == 0 {
				return fmt.Errorf("no notification channel is configured")
			}

			outcomes := s.Dispatch(cmd.Context(), &models.Submission{
				ID:         uuid.NewString(),
				Email:      email,
				ReceivedAt: time.Now().UTC(),
			})
			printOutcomes(cmd.OutOrStdout(), outcomes)

			if failed := notify.CountFailed(outcomes); failed > 0 {
				return fmt.Errorf("%d of %d channels failed", failed, len(outcomes))
			}
			return nil
		},
	}
	sendTest.Flags().StringVar(&email, "email", "", "address to put in the test signup")
	sendTest.Flags().DurationVar(&timeout, "timeout", 0, "deadline for each channel (default WAITLIST_NOTIFY_TIMEOUT)")
	_ = sendTest.MarkFlagRequired("email")
	root.AddCommand(sendTest)

	return root
}

func printChannels(w io.Writer, channels []string) error {
	if len(channels) == 0 {
		_, err := fmt.Fprintln(w, "no notification channels configured")
		return err
	}
	for _, c := range channels {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}

func printOutcomes(w io.Writer, outcomes []notify.Outcome) {
	for _, o := range outcomes {
		switch {
		case o.OK():
			fmt.Fprintf(w, "%-8s ok      %s\n", o.Channel, o.Duration.Round(time.Millisecond))
		case o.Skipped:
			fmt.Fprintf(w, "%-8s skipped %v\n", o.Channel, o.Err)
		default:
			fmt.Fprintf(w, "%-8s failed  %v\n", o.Channel, o.Err)
		}
	}
}
