package waitlist

//go:generate mockgen -source=service.go -destination=mock_service.go -package=waitlist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/clixs/waitlist-api/internal/log"
	"github.com/clixs/waitlist-api/internal/models"
	"github.com/clixs/waitlist-api/internal/notify"
	"github.com/clixs/waitlist-api/pkg/constants"
	apperrors "github.com/clixs/waitlist-api/pkg/errors"
)

type WaitlistService interface {
	// Submit validates the email and notifies every configured channel. Channel
	// failures are logged, never returned.
	Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error)
}

// NotificationDispatcher is satisfied by *notify.Dispatcher.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, sub *models.Submission) []notify.Outcome
	Channels() []string
}

type waitlistService struct {
	logger     *log.Logger
	validator  EmailValidator
	dispatcher NotificationDispatcher
	metrics    *submissionMetrics
	now        func() time.Time
}

func NewWaitlistService(
	logger *log.Logger,
	validator EmailValidator,
	dispatcher NotificationDispatcher,
	registerer prometheus.Registerer,
) WaitlistService {
	return &waitlistService{
		logger:     logger,
		validator:  validator,
		dispatcher: dispatcher,
		metrics:    newSubmissionMetrics(registerer),
		now:        time.Now,
	}
}

func (s *waitlistService) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	var raw any
	if req != nil {
		raw = req.Email
	}

	email, err := s.validator.Validate(raw)
	if err != nil {
		logger.Info("Waitlist submission rejected", "reason", rejectionReason(err))
		s.metrics.observe(resultRejected)
		return nil, err
	}

	sub := &models.Submission{
		ID:         uuid.NewString(),
		Email:      email,
		ReceivedAt: s.now().UTC(),
	}

	outcomes := s.dispatcher.Dispatch(ctx, sub)

	logger.Info("New waitlist signup",
		"email", sub.Email,
		"submission_id", sub.ID,
		"received_at", constants.FormatISO8601UTC(sub.ReceivedAt),
		"channels", len(outcomes),
		"failed_channels", notify.CountFailed(outcomes),
	)
	s.metrics.observe(resultAccepted)

	return &SubmitResponse{Success: true}, nil
}

var _ NotificationDispatcher = (*notify.Dispatcher)(nil)

// errSubmissionFailed is what clients see for any failure past validation.
var errSubmissionFailed = apperrors.NewInternalServerError("waitlist submission failed", nil)
