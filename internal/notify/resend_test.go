package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clixs/waitlist-api/internal/models"
)

func TestResendNotifier_SendsEmail(t *testing.T) {
	var (
		gotAuth string
		gotBody map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.ResendAPIKey = "re_test"
	cfg.ResendEndpoint = srv.URL
	renderer, err := NewRenderer(cfg)
	require.NoError(t, err)

	n := NewResendNotifier(NewHTTPClient(time.Second), cfg, renderer)
	err = n.Notify(context.Background(), &models.Submission{Email: "ada@example.com", ReceivedAt: receivedAt})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test", gotAuth)
	assert.Equal(t, "Clixs Waitlist <noreply@clixs.io>", gotBody["from"])
	assert.Equal(t, cfg.Recipient, gotBody["to"])
	assert.Equal(t, "New Waitlist Signup: ada@example.com", gotBody["subject"])
	assert.Contains(t, gotBody["html"], "ada@example.com")
	assert.NotContains(t, gotBody, "text")
}

func TestResendNotifier_RejectedKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.ResendAPIKey = "re_revoked"
	cfg.ResendEndpoint = srv.URL
	renderer, err := NewRenderer(cfg)
	require.NoError(t, err)

	err = NewResendNotifier(NewHTTPClient(time.Second), cfg, renderer).
		Notify(context.Background(), &models.Submission{Email: "ada@example.com", ReceivedAt: receivedAt})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
