package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/alwaseet-adapter/internal/rate"
)

func newExec(client *http.Client) *Executor {
	return New(zap.NewNop(), nil, client, "test")
}

// ─── Basic success ────────────────────────────────────────────────────────────

func TestDoJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	}))
	defer srv.Close()

	exec := newExec(srv.Client())
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)

	var out map[string]string
	require.NoError(t, exec.DoJSON(context.Background(), req, "k", &out))
	assert.Equal(t, "ok", out["result"])
}

// ─── 5xx: single attempt, typed error ────────────────────────────────────────

func TestDoJSON_ServerErrorNotRetried(t *testing.T) {
	var count atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		count.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	exec := newExec(srv.Client())
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)

	err := exec.DoJSON(context.Background(), req, "k", nil)
	require.Error(t, err)
	assert.EqualValues(t, 1, count.Load(), "no retries expected")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream down", string(statusErr.Body))
	assert.Contains(t, err.Error(), "test returned 502")
}

// ─── 4xx ──────────────────────────────────────────────────────────────────────

func TestDoJSON_ClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	exec := newExec(srv.Client())
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)

	var statusErr *StatusError
	require.ErrorAs(t, exec.DoJSON(context.Background(), req, "k", nil), &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

// ─── Decode failure ───────────────────────────────────────────────────────────

func TestDoJSON_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	exec := newExec(srv.Client())
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)

	var out map[string]any
	err := exec.DoJSON(context.Background(), req, "k", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode failed")
}

// ─── Transport failure ────────────────────────────────────────────────────────

func TestDoJSON_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	exec := newExec(&http.Client{Timeout: time.Second})
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)

	err := exec.DoJSON(context.Background(), req, "k", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test request failed")

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

// ─── Context deadline bounds the call ────────────────────────────────────────

func TestDoJSON_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	defer close(release)

	exec := newExec(srv.Client())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)

	start := time.Now()
	err := exec.DoJSON(ctx, req, "k", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

// ─── Rate limiter wait honours context ───────────────────────────────────────

func TestDoJSON_RateLimitWaitCanceled(t *testing.T) {
	var count atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		count.Add(1)
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	mgr := rate.NewManager(rate.Config{RequestsPerSecond: 1, Burst: 1})
	exec := New(zap.NewNop(), mgr, srv.Client(), "test")

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, exec.DoJSON(context.Background(), req, "merchant", nil))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	req2, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	err := exec.DoJSON(ctx, req2, "merchant", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
	assert.EqualValues(t, 1, count.Load())
}

// ─── Query strings are redacted from transport errors ────────────────────────

func TestDoJSON_RedactsQueryOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	exec := newExec(&http.Client{Timeout: time.Second})
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, base+"/citys?token=super-secret", nil)

	err := exec.DoJSON(context.Background(), req, "k", nil)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret")
	assert.Contains(t, err.Error(), "/citys")
}
