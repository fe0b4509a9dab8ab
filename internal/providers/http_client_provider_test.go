package providers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codefolio/internal/retry"
	"codefolio/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func httpTestConfig(timeout time.Duration) *structures.Config {
	return &structures.Config{
		Sources: structures.SourcesConfig{
			HttpTimeout: timeout,
			UserAgent:   "codefolio-test",
		},
	}
}

func TestHttpClient_GetSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "codefolio-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewHttpClientProvider(httpTestConfig(time.Second))
	resp, err := c.Get(context.Background(), srv.URL, map[string]string{"Accept": "application/json"})

	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, `{"ok":true}`, string(resp.Body))
}

func TestHttpClient_PostSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"query":"q"}`, string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewHttpClientProvider(httpTestConfig(time.Second))
	resp, err := c.Post(context.Background(), srv.URL, nil, []byte(`{"query":"q"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
}

func TestHttpClient_StatusErrorIsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHttpClientProvider(httpTestConfig(time.Second))
	resp, err := c.Get(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestHttpClient_TransportErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewHttpClientProvider(httpTestConfig(time.Second))
	_, err := c.Get(context.Background(), url, nil)

	require.Error(t, err)
	assert.True(t, retry.IsRetryable(err))
}

func TestHttpClient_TimeoutIsRetryable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewHttpClientProvider(httpTestConfig(50 * time.Millisecond))
	_, err := c.Get(context.Background(), srv.URL, nil)

	require.Error(t, err)
	assert.True(t, retry.IsRetryable(err))
}

func TestHttpClient_CancelledContextNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewHttpClientProvider(httpTestConfig(time.Second))
	_, err := c.Get(ctx, srv.URL, nil)

	require.Error(t, err)
	assert.False(t, retry.IsRetryable(err))
	assert.ErrorIs(t, err, context.Canceled)
}
