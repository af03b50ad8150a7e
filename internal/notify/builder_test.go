package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clixs/waitlist-api/internal/log"
	"github.com/clixs/waitlist-api/internal/models"
)

func TestBuildNotifiers_FollowsConfig(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{
		"WAITLIST_WEBHOOK_URL": "https://hooks.example.com/waitlist",
		"RESEND_API_KEY":       "re_123",
		"MAILGUN_DOMAIN":       "mg.clixs.io",
		"MAILGUN_API_KEY":      "key-123",
		"MAILGUN_API_BASE":     "https://api.eu.mailgun.net/v3",
		"SMTP_USER":            "ops@clixs.io",
		"SMTP_PASS":            "secret",
	})
	require.NoError(t, err)

	d, err := NewDispatcherFromConfig(cfg, DispatcherOptions{})
	require.NoError(t, err)

	assert.Equal(t, cfg.EnabledChannels(), d.Channels())
	assert.Equal(t, cfg.Timeout, d.timeout)
}

func TestBuildNotifiers_NoneConfigured(t *testing.T) {
	notifiers, err := BuildNotifiers(DefaultConfig())

	require.NoError(t, err)
	assert.Empty(t, notifiers)
}

func TestDispatcherFromDefaultConfig_AttemptsEverySubmission(t *testing.T) {
	var posts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg, err := LoadConfigFrom(map[string]string{"WAITLIST_WEBHOOK_URL": srv.URL})
	require.NoError(t, err)

	d, err := NewDispatcherFromConfig(cfg, DispatcherOptions{Logger: log.NewLoggerWithWriter(io.Discard)})
	require.NoError(t, err)

	const submissions = 8
	for i := 0; i < submissions; i++ {
		outcomes := d.Dispatch(context.Background(), &models.Submission{
			ID:         fmt.Sprintf("sub-%d", i),
			Email:      fmt.Sprintf("user%d@example.com", i),
			ReceivedAt: time.Now(),
		})
		require.Len(t, outcomes, 1)
		assert.Error(t, outcomes[0].Err)
		assert.False(t, outcomes[0].Skipped, "submission %d was skipped", i)
	}

	assert.Equal(t, int32(submissions), posts.Load())
}
