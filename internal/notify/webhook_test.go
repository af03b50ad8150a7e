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

func TestWebhookNotifier_PostsPayload(t *testing.T) {
	var (
		gotMethod      string
		gotContentType string
		gotBody        WebhookPayload
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(NewHTTPClient(time.Second), srv.URL, "Clixs Website Waitlist")
	err := n.Notify(context.Background(), &models.Submission{Email: "ada@example.com", ReceivedAt: receivedAt})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, WebhookPayload{
		Email:     "ada@example.com",
		Timestamp: "2026-10-18T09:05:03.123Z",
		Source:    "Clixs Website Waitlist",
	}, gotBody)
}

func TestWebhookNotifier_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(NewHTTPClient(time.Second), srv.URL, "src")
	err := n.Notify(context.Background(), &models.Submission{Email: "ada@example.com", ReceivedAt: receivedAt})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestWebhookNotifier_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	n := NewWebhookNotifier(NewHTTPClient(time.Second), url, "src")
	err := n.Notify(context.Background(), &models.Submission{Email: "ada@example.com", ReceivedAt: receivedAt})

	assert.Error(t, err)
	assert.Equal(t, ChannelWebhook, n.Name())
}
