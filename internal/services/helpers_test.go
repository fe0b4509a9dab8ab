package services

import (
	"time"

	"codefolio/internal/models"
	"codefolio/internal/structures"
	"codefolio/internal/testutil"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestConfig() *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{Enabled: true, Size: 1, TTL: time.Minute},
		Sources: structures.SourcesConfig{
			AdapterTimeout: 200 * time.Millisecond,
			RetryAttempts:  1,
		},
	}
}

type cacheEnv struct {
	cache   *ResultCache
	backing *testutil.MockCache
	clock   *testutil.FakeClock
	logger  *testutil.MockLogger
}

func newCacheEnv() *cacheEnv {
	backing := testutil.NewMockCache()
	clock := testutil.NewFakeClock(testNow)
	logger := &testutil.MockLogger{}
	return &cacheEnv{
		cache:   NewResultCache(newTestConfig(), backing, clock, logger),
		backing: backing,
		clock:   clock,
		logger:  logger,
	}
}

func contest(platform, id string, start int64, status models.ContestStatus) models.ContestRecord {
	return models.ContestRecord{
		Key:       models.ContestKey(platform, id),
		Name:      platform + " " + id,
		Platform:  platform,
		StartTime: start,
		Duration:  3600_000,
		Status:    status,
	}
}
