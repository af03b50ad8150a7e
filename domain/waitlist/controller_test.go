package waitlist

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/clixs/waitlist-api/config/router"
	"github.com/clixs/waitlist-api/internal/log"
	apperrors "github.com/clixs/waitlist-api/pkg/errors"
)

func newTestRouter(t *testing.T, service WaitlistService) *router.RouterService {
	t.Helper()

	rs := router.CreateRouterService(log.NewLoggerWithWriter(io.Discard), nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
		MaxBodyBytes:      1024,
		DisableMetrics:    true,
	})
	rs.MountController(NewWaitlistController(service))
	return rs
}

func post(rs *router.RouterService, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	return w
}

func TestSubmitWaitlistHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		service := NewMockWaitlistService(ctrl)
		service.EXPECT().
			Submit(gomock.Any(), &SubmitRequest{Email: "ada@example.com"}).
			Return(&SubmitResponse{Success: true}, nil)

		w := post(newTestRouter(t, service), "/waitlist", `{"email":"ada@example.com"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
	})

	t.Run("alias path", func(t *testing.T) {
		service := NewMockWaitlistService(ctrl)
		service.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&SubmitResponse{Success: true}, nil)

		w := post(newTestRouter(t, service), "/api/waitlist", `{"email":"ada@example.com"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())
	})

	t.Run("validation error", func(t *testing.T) {
		service := NewMockWaitlistService(ctrl)
		service.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewValidationError(InvalidEmailMessage, nil))

		w := post(newTestRouter(t, service), "/waitlist", `{"email":"nope"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid email address"}`, w.Body.String())
	})

	t.Run("internal error hides the cause", func(t *testing.T) {
		service := NewMockWaitlistService(ctrl)
		service.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewInternalServerError("dial tcp 10.0.0.7:443: refused", nil))

		w := post(newTestRouter(t, service), "/waitlist", `{"email":"ada@example.com"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})

	t.Run("malformed JSON is an internal error", func(t *testing.T) {
		service := NewMockWaitlistService(ctrl)
		service.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

		rs := newTestRouter(t, service)
		for _, body := range []string{`{"email":`, `not json`, ``, `null`} {
			w := post(rs, "/waitlist", body)

			assert.Equal(t, http.StatusInternalServerError, w.Code, "body %q", body)
			assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
		}
	})

	t.Run("JSON that is not an object has no email", func(t *testing.T) {
		service := NewMockWaitlistService(ctrl)
		service.EXPECT().
			Submit(gomock.Any(), &SubmitRequest{}).
			Return(nil, apperrors.NewValidationError(InvalidEmailMessage, nil)).
			Times(4)

		rs := newTestRouter(t, service)
		for _, body := range []string{`[]`, `["ada@example.com"]`, `"ada@example.com"`, `1`} {
			w := post(rs, "/waitlist", body)

			assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
			assert.JSONEq(t, `{"error":"Invalid email address"}`, w.Body.String())
		}
	})

	t.Run("panic in the service becomes a 500", func(t *testing.T) {
		service := NewMockWaitlistService(ctrl)
		service.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, *SubmitRequest) (*SubmitResponse, error) {
				panic("boom")
			})

		rs := newTestRouter(t, service)
		w := post(rs, "/waitlist", `{"email":"ada@example.com"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})

	t.Run("GET is not allowed", func(t *testing.T) {
		rs := newTestRouter(t, NewMockWaitlistService(ctrl))

		w := httptest.NewRecorder()
		rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/waitlist", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestSubmitWaitlistHandler_WithRealService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dispatcher := NewMockNotificationDispatcher(ctrl)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	validator, err := NewEmailValidator("")
	require.NoError(t, err)
	rs := newTestRouter(t, NewWaitlistService(log.NewLoggerWithWriter(io.Discard), validator, dispatcher, nil))

	cases := []struct {
		body string
		code int
		want string
	}{
		{`{"email":"@"}`, http.StatusOK, `{"success":true}`},
		{`{}`, http.StatusBadRequest, `{"error":"Invalid email address"}`},
		{`{"email":null}`, http.StatusBadRequest, `{"error":"Invalid email address"}`},
		{`{"email":12}`, http.StatusBadRequest, `{"error":"Invalid email address"}`},
		{`{"email":"no-at-sign"}`, http.StatusBadRequest, `{"error":"Invalid email address"}`},
		{`["ada@example.com"]`, http.StatusBadRequest, `{"error":"Invalid email address"}`},
		{`"ada@example.com"`, http.StatusBadRequest, `{"error":"Invalid email address"}`},
	}

	for _, tc := range cases {
		w := post(rs, "/waitlist", tc.body)
		assert.Equal(t, tc.code, w.Code, tc.body)
		assert.JSONEq(t, tc.want, w.Body.String(), tc.body)
	}
}

func TestSubmitWaitlistHandler_OversizedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockWaitlistService(ctrl)
	service.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

	body := `{"email":"` + string(bytes.Repeat([]byte("a"), 2048)) + `@example.com"}`
	w := post(newTestRouter(t, service), "/waitlist", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
