package sources

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"codefolio/internal/providers"
	"codefolio/internal/retry"
	"codefolio/internal/structures"

	json "github.com/goccy/go-json"
)

// Deps are the collaborators every adapter shares.
type Deps struct {
	Client providers.HttpClientInterface
	Retry  *retry.Policy
	Clock  providers.Clock
	Logger providers.Logger
}

func NewDeps(conf *structures.Config, client providers.HttpClientInterface, clock providers.Clock, logger providers.Logger) *Deps {
	return &Deps{
		Client: client,
		Retry:  retry.NewPolicy(conf.Sources.RetryAttempts, conf.Sources.RetryBaseDelay),
		Clock:  clock,
		Logger: logger,
	}
}

func baseURL(override, def string) string {
	if override == "" {
		return def
	}
	return strings.TrimRight(override, "/")
}

func (d *Deps) get(ctx context.Context, platform, url string, headers map[string]string) ([]byte, error) {
	resp, err := d.getResponse(ctx, platform, url, headers)
	if err != nil {
		return nil, err
	}
	return checkStatus(platform, url, resp)
}

func (d *Deps) post(ctx context.Context, platform, url string, headers map[string]string, body []byte) ([]byte, error) {
	resp, err := d.call(ctx, platform, url, func(ctx context.Context) (*providers.HttpResponse, error) {
		return d.Client.Post(ctx, url, headers, body)
	})
	if err != nil {
		return nil, err
	}
	return checkStatus(platform, url, resp)
}

// getResponse returns the response whatever its status, for upstreams that
// put meaningful bodies on error statuses.
func (d *Deps) getResponse(ctx context.Context, platform, url string, headers map[string]string) (*providers.HttpResponse, error) {
	return d.call(ctx, platform, url, func(ctx context.Context) (*providers.HttpResponse, error) {
		return d.Client.Get(ctx, url, headers)
	})
}

// call runs one upstream request under the retry policy. Only transport
// failures are retried, any HTTP status is final.
func (d *Deps) call(ctx context.Context, platform, url string, do func(ctx context.Context) (*providers.HttpResponse, error)) (*providers.HttpResponse, error) {
	var resp *providers.HttpResponse
	err := d.Retry.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = do(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			return nil, newError(platform, KindUnavailable, err, "%s unreachable after %d attempts", url, d.Retry.MaxAttempts())
		}
		return nil, newError(platform, KindUnavailable, err, "request %s failed", url)
	}
	return resp, nil
}

func checkStatus(platform, url string, resp *providers.HttpResponse) ([]byte, error) {
	switch {
	case resp.OK():
		return resp.Body, nil
	case resp.Status == http.StatusNotFound:
		return nil, newError(platform, KindNotFound, nil, "%s returned 404", url)
	default:
		return nil, newError(platform, KindUnavailable, nil, "%s returned status %d", url, resp.Status)
	}
}

func decode(platform string, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return newError(platform, KindMalformed, err, "unexpected payload")
	}
	return nil
}

func requireUsername(platform, username string) (string, error) {
	u := strings.TrimSpace(username)
	if u == "" {
		return "", newError(platform, KindValidation, nil, "username cannot be empty")
	}
	return u, nil
}
