package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codefolio/internal/providers"
	"codefolio/internal/retry"
	"codefolio/internal/structures"
	"codefolio/internal/testutil"

	"go.uber.org/atomic"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func testConfig(url string) *structures.Config {
	return &structures.Config{
		Sources: structures.SourcesConfig{
			HttpTimeout:    2 * time.Second,
			AdapterTimeout: 5 * time.Second,
			RetryAttempts:  3,
			RetryBaseDelay: time.Millisecond,
			UserAgent:      "codefolio-test",
			Endpoints: structures.Endpoints{
				CodeChef:             url,
				CodeChefProfile:      url,
				Codeforces:           url,
				LeetCode:             url,
				GeeksforGeeks:        url,
				GeeksforGeeksProfile: url,
				HackerRank:           url,
				AtCoder:              url,
				GitHub:               url,
			},
		},
	}
}

type testEnv struct {
	conf   *structures.Config
	deps   *Deps
	clock  *testutil.FakeClock
	logger *testutil.MockLogger
}

// newTestEnv serves handler over httptest and builds adapter deps against it.
func newTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := testConfig(srv.URL)
	clock := testutil.NewFakeClock(testNow)
	logger := &testutil.MockLogger{}
	return &testEnv{
		conf:   conf,
		deps:   NewDeps(conf, providers.NewHttpClientProvider(conf), clock, logger),
		clock:  clock,
		logger: logger,
	}
}

// respond serves a fixed body per path.
func respond(t *testing.T, routes map[string]string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	})
}

// scriptedClient replays results in order and counts calls.
type scriptedClient struct {
	results []scriptedResult
	calls   int
}

type scriptedResult struct {
	resp *providers.HttpResponse
	err  error
}

func (c *scriptedClient) next() (*providers.HttpResponse, error) {
	r := c.results[min(c.calls, len(c.results)-1)]
	c.calls++
	return r.resp, r.err
}

func (c *scriptedClient) Get(_ context.Context, _ string, _ map[string]string) (*providers.HttpResponse, error) {
	return c.next()
}

func (c *scriptedClient) Post(_ context.Context, _ string, _ map[string]string, _ []byte) (*providers.HttpResponse, error) {
	return c.next()
}

func scriptedDeps(client providers.HttpClientInterface) *Deps {
	return &Deps{
		Client: client,
		Retry:  retry.NewPolicy(3, time.Millisecond),
		Clock:  testutil.NewFakeClock(testNow),
		Logger: &testutil.MockLogger{},
	}
}

func countingHandler(hits *atomic.Int32, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Inc()
		next.ServeHTTP(w, r)
	})
}
