package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"codefolio/internal/models"
	"codefolio/internal/normalize"
	"codefolio/internal/providers"

	"go.uber.org/atomic"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// FakeClock implements providers.Clock with a settable time.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) NowMillis() int64 {
	return c.Now().UnixMilli()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockCache implements providers.CacheProviderInterface. A non-nil SetErr
// makes every Set fail without storing.
type MockCache struct {
	mu     sync.Mutex
	Data   map[string][]byte
	SetErr error
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = value
	return nil
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// requests and source outcomes.
type MockMetrics struct {
	mu             sync.Mutex
	Requests       map[string]int // key: "endpoint status"
	SourceOutcomes map[string]int // key: "platform:outcome"
	Profiles       int
	Persisted      int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Requests:       make(map[string]int),
		SourceOutcomes: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[fmt.Sprintf("%s %d", endpoint, status)]++
}

func (m *MockMetrics) Request(endpoint string, status int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Requests[fmt.Sprintf("%s %d", endpoint, status)]
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObserveSourceDuration(_ string, _ time.Duration)  {}

func (m *MockMetrics) IncSourceFetch(platform string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceOutcomes[platform+":"+outcome]++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persisted++
}

func (m *MockMetrics) SetProfilesTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Profiles = count
}

func (m *MockMetrics) Outcome(platform, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SourceOutcomes[platform+":"+outcome]
}

// MockContestSource implements sources.ContestSource. Records are filtered by
// the requested class. With Hang set the call ignores ctx and blocks until
// Release is closed.
type MockContestSource struct {
	Name    string
	Records []models.ContestRecord
	Err     error
	Delay   time.Duration
	Hang    bool
	Release chan struct{}

	calls atomic.Int32
}

func (m *MockContestSource) Platform() string { return m.Name }

func (m *MockContestSource) FetchContests(ctx context.Context, class models.ClassFilter) ([]models.ContestRecord, error) {
	m.calls.Inc()
	if m.Hang {
		<-m.Release
	}
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.ContestRecord, 0, len(m.Records))
	for _, r := range m.Records {
		if normalize.Matches(r.Status, class) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockContestSource) Calls() int {
	return int(m.calls.Load())
}

// MockProfileSource implements sources.ProfileSource with per-username
// results.
type MockProfileSource struct {
	Name   models.Platform
	Stats  map[string]*models.ProfileStats
	Errors map[string]error

	calls atomic.Int32
}

func (m *MockProfileSource) Platform() models.Platform { return m.Name }

func (m *MockProfileSource) FetchProfile(_ context.Context, username string) (*models.ProfileStats, error) {
	m.calls.Inc()
	if err, ok := m.Errors[username]; ok {
		return nil, err
	}
	if st, ok := m.Stats[username]; ok {
		return st.Clone(), nil
	}
	return models.NewProfileStats(), nil
}

func (m *MockProfileSource) Calls() int {
	return int(m.calls.Load())
}

// MockCompressor implements the persistence compressor with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
