package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/clixs/waitlist-api/internal/log"
	"github.com/clixs/waitlist-api/internal/models"
	"github.com/clixs/waitlist-api/pkg/circuitbreaker"
)

const tracerName = "github.com/clixs/waitlist-api/internal/notify"

type DispatcherOptions struct {
	// Timeout bounds each channel call. Zero means no per-channel deadline.
	Timeout time.Duration
	// BreakerThreshold > 0 gives each channel a circuit breaker shared by all
	// submissions. Zero keeps no state between Dispatch calls.
	BreakerThreshold int
	BreakerRecovery  time.Duration
	Logger           *log.Logger
	// Registerer receives the notification metrics; nil skips registration.
	Registerer prometheus.Registerer
}

// Dispatcher runs every notifier for a submission concurrently and waits for
// all of them. A failing, slow or panicking channel never affects the others.
type Dispatcher struct {
	notifiers []Notifier
	breakers  []circuitbreaker.CircuitBreaker
	timeout   time.Duration
	logger    *log.Logger
	metrics   *metrics
}

func NewDispatcher(notifiers []Notifier, opts DispatcherOptions) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewLoggerWithJSONOutput()
	}

	d := &Dispatcher{
		notifiers: notifiers,
		timeout:   opts.Timeout,
		logger:    logger,
		metrics:   newMetrics(opts.Registerer),
	}

	if opts.BreakerThreshold <= 0 {
		return d
	}

	d.breakers = make([]circuitbreaker.CircuitBreaker, len(notifiers))
	for i, n := range notifiers {
		d.breakers[i] = circuitbreaker.NewCircuitBreaker(&circuitbreaker.Config{
			Name:             n.Name(),
			FailureThreshold: opts.BreakerThreshold,
			RecoveryTimeout:  opts.BreakerRecovery,
			OnStateChange:    d.onCircuitStateChange,
		})
		d.metrics.setCircuitState(n.Name(), circuitbreaker.Closed)
	}

	return d
}

// Channels lists the active channel names in dispatch order.
func (d *Dispatcher) Channels() []string {
	names := make([]string, len(d.notifiers))
	for i, n := range d.notifiers {
		names[i] = n.Name()
	}
	return names
}

// Dispatch returns one Outcome per notifier, in notifier order. Cancelling ctx
// does not abort in-flight deliveries; only the per-channel timeout does.
func (d *Dispatcher) Dispatch(ctx context.Context, sub *models.Submission) []Outcome {
	if len(d.notifiers) == 0 {
		return nil
	}

	logger := log.GetLoggerInstanceFromContext(ctx, d.logger)
	detached := context.WithoutCancel(ctx)

	outcomes := make([]Outcome, len(d.notifiers))
	var wg sync.WaitGroup
	for i := range d.notifiers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = d.deliver(detached, i, sub, logger)
		}()
	}
	wg.Wait()

	return outcomes
}

func (d *Dispatcher) deliver(ctx context.Context, i int, sub *models.Submission, logger *log.Logger) Outcome {
	n := d.notifiers[i]
	channel := n.Name()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "notify."+channel)
	defer span.End()
	span.SetAttributes(attribute.String("waitlist.channel", channel))

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	var err error
	if d.breakers != nil {
		err = d.breakers[i].Call(func() error {
			return safeNotify(ctx, n, sub)
		})
	} else {
		err = safeNotify(ctx, n, sub)
	}
	outcome := Outcome{
		Channel:  channel,
		Err:      err,
		Duration: time.Since(start),
		Skipped:  errors.Is(err, circuitbreaker.ErrCircuitOpen),
	}
	d.metrics.observe(outcome)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("Notification channel failed",
			"channel", channel,
			"submission_id", submissionID(sub),
			"skipped", outcome.Skipped,
			"duration_ms", outcome.Duration.Milliseconds(),
			"error", err.Error(),
		)
		return outcome
	}

	logger.Debug("Notification channel delivered",
		"channel", channel,
		"submission_id", submissionID(sub),
		"duration_ms", outcome.Duration.Milliseconds(),
	)
	return outcome
}

func safeNotify(ctx context.Context, n Notifier, sub *models.Submission) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", n.Name(), r)
		}
	}()
	return n.Notify(ctx, sub)
}

func (d *Dispatcher) onCircuitStateChange(channel string, from, to circuitbreaker.CircuitState) {
	d.metrics.setCircuitState(channel, to)
	d.logger.Warn("Notification circuit state changed",
		"channel", channel,
		"from", from.String(),
		"to", to.String(),
	)
}

func submissionID(sub *models.Submission) string {
	if sub == nil {
		return ""
	}
	return sub.ID
}
