package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"codefolio/internal/models"
	"codefolio/internal/providers"
	"codefolio/internal/sources"
	"codefolio/internal/structures"

	"go.uber.org/atomic"
)

const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

type ContestServiceInterface interface {
	ListContests(ctx context.Context, class models.ClassFilter) []models.ContestRecord
	ClearCache()
	ResetCache()
	Health() AggregationHealth
}

// AggregationHealth describes the last contest aggregation that reached the
// sources.
type AggregationHealth struct {
	Sources      int       `json:"sources"`
	Succeeded    int       `json:"succeeded"`
	Failed       int       `json:"failed"`
	Aggregations int64     `json:"aggregations"`
	LastRun      time.Time `json:"lastRun"`
}

type ContestService struct {
	registry *sources.ContestRegistry
	cache    *ResultCache
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
	clock    providers.Clock
	timeout  time.Duration

	aggregations atomic.Int64
	lastRun      atomic.Int64
	succeeded    atomic.Int32
	failed       atomic.Int32
}

func NewContestService(conf *structures.Config, registry *sources.ContestRegistry, cache *ResultCache, metrics providers.MetricsProviderInterface, logger providers.Logger, clock providers.Clock) ContestServiceInterface {
	return &ContestService{
		registry: registry,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		clock:    clock,
		timeout:  conf.Sources.AdapterTimeout,
	}
}

// ListContests never fails: sources that error or time out contribute no
// records, and total failure yields an empty list that is not cached.
func (cs *ContestService) ListContests(ctx context.Context, class models.ClassFilter) []models.ContestRecord {
	return remember(cs.cache, string(class), func() ([]models.ContestRecord, bool) {
		records := cs.aggregate(ctx, class)
		return records, len(records) > 0 && ctx.Err() == nil
	})
}

func (cs *ContestService) aggregate(ctx context.Context, class models.ClassFilter) []models.ContestRecord {
	srcs := cs.registry.Sources()
	results := fanOut(ctx, srcs, cs.timeout, func(ctx context.Context, s sources.ContestSource) ([]models.ContestRecord, error) {
		return s.FetchContests(ctx, class)
	})

	var ok, failed int32
	merged := make([]models.ContestRecord, 0)
	seen := make(map[string]struct{})
	for i, res := range results {
		platform := srcs[i].Platform()
		cs.metrics.ObserveSourceDuration(platform, res.Duration)

		if res.Err != nil {
			failed++
			cs.recordFailure(platform, res.Err)
			continue
		}
		ok++
		cs.metrics.IncSourceFetch(platform, OutcomeOK)
		cs.logger.Debugf(providers.TypeSource, "%s: %d %s contests in %s", platform, len(res.Value), class, res.Duration)

		for _, r := range res.Value {
			if _, dup := seen[r.Key]; dup {
				continue
			}
			seen[r.Key] = struct{}{}
			merged = append(merged, r)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].StartTime < merged[j].StartTime })

	cs.aggregations.Inc()
	cs.lastRun.Store(cs.clock.NowMillis())
	cs.succeeded.Store(ok)
	cs.failed.Store(failed)
	if ok == 0 && len(srcs) > 0 {
		cs.logger.Errorf(providers.TypeSource, "All %d contest sources failed for %s", len(srcs), class)
	}
	return merged
}

func (cs *ContestService) recordFailure(platform string, err error) {
	if errors.Is(err, ErrSourceTimeout) {
		cs.metrics.IncSourceFetch(platform, OutcomeTimeout)
		cs.logger.Warnf(providers.TypeSource, "%s: abandoned: %s", platform, err)
		return
	}
	cs.metrics.IncSourceFetch(platform, OutcomeError)
	cs.logger.Warnf(providers.TypeSource, "%s: %s", platform, err)
}

func (cs *ContestService) ClearCache() {
	for _, class := range models.ClassFilters {
		cs.cache.Invalidate(string(class))
	}
}

// ResetCache drops every cached result, profile stats included.
func (cs *ContestService) ResetCache() {
	cs.cache.Clear()
}

func (cs *ContestService) Health() AggregationHealth {
	h := AggregationHealth{
		Sources:      len(cs.registry.Sources()),
		Succeeded:    int(cs.succeeded.Load()),
		Failed:       int(cs.failed.Load()),
		Aggregations: cs.aggregations.Load(),
	}
	if ms := cs.lastRun.Load(); ms > 0 {
		h.LastRun = time.UnixMilli(ms).UTC()
	}
	return h
}
