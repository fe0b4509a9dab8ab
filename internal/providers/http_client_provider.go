package providers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"codefolio/internal/retry"
	"codefolio/internal/structures"
)

const maxResponseBytes = 16 << 20

type HttpResponse struct {
	Status int
	Body   []byte
}

func (r *HttpResponse) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

type HttpClientInterface interface {
	Get(ctx context.Context, url string, headers map[string]string) (*HttpResponse, error)
	Post(ctx context.Context, url string, headers map[string]string, body []byte) (*HttpResponse, error)
}

type HttpClientProvider struct {
	client    *http.Client
	userAgent string
}

func NewHttpClientProvider(conf *structures.Config) HttpClientInterface {
	timeout := conf.Sources.HttpTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HttpClientProvider{
		client:    &http.Client{Timeout: timeout},
		userAgent: conf.Sources.UserAgent,
	}
}

func (c *HttpClientProvider) Get(ctx context.Context, url string, headers map[string]string) (*HttpResponse, error) {
	return c.do(ctx, http.MethodGet, url, headers, nil)
}

func (c *HttpClientProvider) Post(ctx context.Context, url string, headers map[string]string, body []byte) (*HttpResponse, error) {
	return c.do(ctx, http.MethodPost, url, headers, body)
}

// do performs a single request. Failures below HTTP (dial, reset, client
// timeout, truncated body) are marked retryable; any status code is a
// response, not an error.
func (c *HttpClientProvider) do(ctx context.Context, method, url string, headers map[string]string, body []byte) (*HttpResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s %s: %w", method, url, ctx.Err())
		}
		return nil, retry.Retryable(fmt.Errorf("%s %s: %w", method, url, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, retry.Retryable(fmt.Errorf("reading %s: %w", url, err))
	}

	return &HttpResponse{Status: resp.StatusCode, Body: data}, nil
}
