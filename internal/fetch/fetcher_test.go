package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() Config {
	return Config{
		UserAgent:    "test-agent",
		Timeout:      5 * time.Second,
		MaxRetries:   3,
		RetryBackoff: time.Millisecond,
		RequestDelay: 0,
	}
}

func TestFetchSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-agent", r.UserAgent())
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><h1 class="entry-title">Comptable</h1></body></html>`))
	}))
	defer server.Close()

	f := New(testConfig(), zap.NewNop())
	page, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, page.StatusCode)
	require.Equal(t, server.URL, page.URL)
	require.NotNil(t, page.Doc)
	require.Equal(t, "Comptable", page.Doc.Find("h1.entry-title").Text())
}

func TestFetchRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer server.Close()

	f := New(testConfig(), zap.NewNop())
	page, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, page.StatusCode)
	require.EqualValues(t, 3, calls.Load())
}

func TestFetchExhaustsRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxRetries = 2
	f := New(cfg, zap.NewNop())

	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "after 2 attempts")
	require.Contains(t, err.Error(), "status 500")
	require.EqualValues(t, 2, calls.Load())
}

func TestFetchPaysDelayAfterEveryFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.RequestDelay = 100 * time.Millisecond
	f := New(cfg, zap.NewNop())

	start := time.Now()
	_, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)

	_, err = f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestFetchCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(testConfig(), zap.NewNop())
	_, err := f.Fetch(ctx, "http://127.0.0.1:0/never")
	require.ErrorIs(t, err, context.Canceled)
}

func TestFetchStopsRetryingOnCancel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.RetryBackoff = time.Minute
	f := New(cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := f.Fetch(ctx, server.URL)
	require.Error(t, err)
	require.Less(t, time.Since(start), 10*time.Second)
}
