package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"codefolio/internal/models"
	"codefolio/internal/providers"
	"codefolio/internal/sources"
	"codefolio/internal/store"
	"codefolio/internal/structures"
)

type ProfileServiceInterface interface {
	CreateProfile(ctx context.Context, userID string, input ProfileInput) (*RefreshResult, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	RefreshProfile(ctx context.Context, userID string) (*RefreshResult, error)
	UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*RefreshResult, error)
	LinkPlatform(ctx context.Context, userID string, platform string, username string) (*RefreshResult, error)
	GetPlatformStats(ctx context.Context, userID string, platform string) (*PlatformStats, error)
	DeleteProfile(ctx context.Context, userID string) error
}

// ProfileInput carries contact fields and usernames. Empty contact fields are
// left unchanged on update; a present but empty username unlinks.
type ProfileInput struct {
	Email     string                     `json:"email"`
	Name      string                     `json:"name"`
	Usernames map[models.Platform]string `json:"usernames"`
}

// RefreshResult is the saved profile plus the platforms whose fetch failed.
// Failed platforms keep their previous stats.
type RefreshResult struct {
	Profile  *models.Profile
	Failures map[models.Platform]error
}

// PlatformStats is one platform's stats. Stale is set when the upstream
// could not be reached and the stored stats are returned instead.
type PlatformStats struct {
	Platform  models.Platform      `json:"platform"`
	Username  string               `json:"username"`
	Stats     *models.ProfileStats `json:"stats"`
	FetchedAt time.Time            `json:"fetchedAt"`
	Stale     bool                 `json:"stale"`
}

type ProfileService struct {
	store    store.ProfileStoreInterface
	registry *sources.ProfileRegistry
	cache    *ResultCache
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
	clock    providers.Clock
	timeout  time.Duration

	// serializes read-modify-write of stored profiles, fetches run outside it
	mu sync.Mutex
}

func NewProfileService(conf *structures.Config, st store.ProfileStoreInterface, registry *sources.ProfileRegistry, cache *ResultCache, metrics providers.MetricsProviderInterface, logger providers.Logger, clock providers.Clock) ProfileServiceInterface {
	return &ProfileService{
		store:    st,
		registry: registry,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		clock:    clock,
		timeout:  conf.Sources.AdapterTimeout,
	}
}

func (ps *ProfileService) find(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := ps.store.FindByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
	}
	return p, err
}

func parsePlatform(raw string) (models.Platform, error) {
	platform, ok := models.ParsePlatform(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, raw)
	}
	return platform, nil
}

func (ps *ProfileService) CreateProfile(ctx context.Context, userID string, input ProfileInput) (*RefreshResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: user id, email and name are required", ErrInvalidInput)
	}
	for platform := range input.Usernames {
		if _, err := parsePlatform(string(platform)); err != nil {
			return nil, err
		}
	}

	ps.mu.Lock()
	_, err := ps.store.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		ps.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrProfileExists, userID)
	case !errors.Is(err, store.ErrNotFound):
		ps.mu.Unlock()
		return nil, err
	}

	p := models.NewProfile(userID, strings.TrimSpace(input.Email), strings.TrimSpace(input.Name), ps.clock.Now())
	for platform, username := range input.Usernames {
		p.SetUsername(platform, username)
	}
	err = ps.store.Save(ctx, p)
	ps.mu.Unlock()
	if err != nil {
		return nil, err
	}

	ps.logger.Infof(providers.TypeStore, "Created profile %s", userID)
	ps.updateProfileGauge(ctx)
	return ps.refresh(ctx, userID, p.LinkedPlatforms())
}

func (ps *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return ps.find(ctx, userID)
}

// RefreshProfile refetches every linked platform concurrently.
func (ps *ProfileService) RefreshProfile(ctx context.Context, userID string) (*RefreshResult, error) {
	p, err := ps.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ps.refresh(ctx, userID, p.LinkedPlatforms())
}

func (ps *ProfileService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*RefreshResult, error) {
	for platform := range input.Usernames {
		if _, err := parsePlatform(string(platform)); err != nil {
			return nil, err
		}
	}

	ps.mu.Lock()
	p, err := ps.find(ctx, userID)
	if err != nil {
		ps.mu.Unlock()
		return nil, err
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		p.Email = email
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		p.Name = name
	}
	var changed []models.Platform
	for _, platform := range models.Platforms {
		username, ok := input.Usernames[platform]
		if !ok {
			continue
		}
		if p.SetUsername(platform, username) {
			ps.cache.Invalidate(statsKey(userID, string(platform)))
			if p.Username(platform) != "" {
				changed = append(changed, platform)
			}
		}
	}
	p.LastUpdated = ps.clock.Now()
	err = ps.store.Save(ctx, p)
	ps.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return ps.refresh(ctx, userID, changed)
}

// LinkPlatform sets one username and fetches its stats. An upstream that
// does not know the user, or a blank username, leaves the profile untouched.
// An unreachable upstream still links the username with zeroed stats and
// reports the failure.
func (ps *ProfileService) LinkPlatform(ctx context.Context, userID string, rawPlatform string, username string) (*RefreshResult, error) {
	platform, err := parsePlatform(rawPlatform)
	if err != nil {
		return nil, err
	}
	if _, err := ps.find(ctx, userID); err != nil {
		return nil, err
	}
	source, err := ps.registry.Get(platform)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, ps.timeout)
	stats, fetchErr := ps.fetchOne(fetchCtx, source, username)
	cancel()
	switch sources.KindOf(fetchErr) {
	case sources.KindValidation, sources.KindNotFound:
		return nil, fetchErr
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	p, err := ps.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.SetUsername(platform, username)
	ps.cache.Invalidate(statsKey(userID, string(platform)))

	result := &RefreshResult{Profile: p, Failures: map[models.Platform]error{}}
	if fetchErr != nil {
		result.Failures[platform] = fetchErr
	} else {
		p.Stats[platform] = stats
		ps.cache.Put(statsKey(userID, string(platform)), stats)
	}
	p.LastUpdated = ps.clock.Now()
	if err := ps.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return result, nil
}

// GetPlatformStats serves cached stats within the TTL, otherwise fetches.
// When the upstream is unreachable the stored stats are returned as stale.
func (ps *ProfileService) GetPlatformStats(ctx context.Context, userID string, rawPlatform string) (*PlatformStats, error) {
	platform, err := parsePlatform(rawPlatform)
	if err != nil {
		return nil, err
	}
	p, err := ps.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	username := p.Username(platform)
	if username == "" {
		return nil, fmt.Errorf("%w: %s", ErrPlatformNotLinked, platform)
	}

	key := statsKey(userID, string(platform))
	var cached models.ProfileStats
	if storedAt, ok := ps.cache.Get(key, &cached); ok {
		cached.Normalize()
		return &PlatformStats{Platform: platform, Username: username, Stats: &cached, FetchedAt: storedAt}, nil
	}

	result, err := ps.refresh(ctx, userID, []models.Platform{platform})
	if err != nil {
		return nil, err
	}
	stats := result.Profile.Stats[platform]
	fetchErr, failed := result.Failures[platform]
	if !failed {
		return &PlatformStats{Platform: platform, Username: username, Stats: stats, FetchedAt: result.Profile.LastUpdated}, nil
	}
	switch sources.KindOf(fetchErr) {
	case sources.KindNotFound, sources.KindValidation:
		return nil, fetchErr
	}
	ps.logger.Warnf(providers.TypeSource, "Serving stored %s stats of %s: %s", platform, userID, fetchErr)
	return &PlatformStats{Platform: platform, Username: username, Stats: stats, FetchedAt: p.LastUpdated, Stale: true}, nil
}

func (ps *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	ps.mu.Lock()
	err := ps.store.Delete(ctx, userID)
	ps.mu.Unlock()
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
	}
	if err != nil {
		return err
	}

	for _, platform := range models.Platforms {
		ps.cache.Invalidate(statsKey(userID, string(platform)))
	}
	ps.logger.Infof(providers.TypeStore, "Deleted profile %s", userID)
	ps.updateProfileGauge(ctx)
	return nil
}

type platformFetch struct {
	platform models.Platform
	username string
}

// refresh fetches the given platforms concurrently and saves the successes.
// A platform whose username changed while fetching is left alone.
func (ps *ProfileService) refresh(ctx context.Context, userID string, platforms []models.Platform) (*RefreshResult, error) {
	p, err := ps.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobs := make([]platformFetch, 0, len(platforms))
	for _, platform := range platforms {
		if username := p.Username(platform); username != "" {
			jobs = append(jobs, platformFetch{platform: platform, username: username})
		}
	}
	if len(jobs) == 0 {
		return &RefreshResult{Profile: p, Failures: map[models.Platform]error{}}, nil
	}

	results := fanOut(ctx, jobs, ps.timeout, func(ctx context.Context, job platformFetch) (*models.ProfileStats, error) {
		source, err := ps.registry.Get(job.platform)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, err)
		}
		return ps.fetchOne(ctx, source, job.username)
	})

	ps.mu.Lock()
	defer ps.mu.Unlock()
	p, err = ps.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	failures := make(map[models.Platform]error)
	updated := false
	for i, res := range results {
		job := jobs[i]
		if res.Err != nil {
			failures[job.platform] = res.Err
			ps.logger.Warnf(providers.TypeSource, "Refresh of %s for %s failed: %s", job.platform, userID, res.Err)
			continue
		}
		if p.Username(job.platform) != job.username {
			continue
		}
		p.Stats[job.platform] = res.Value
		ps.cache.Put(statsKey(userID, string(job.platform)), res.Value)
		updated = true
	}
	if updated {
		p.LastUpdated = ps.clock.Now()
		if err := ps.store.Save(ctx, p); err != nil {
			return nil, err
		}
	}
	return &RefreshResult{Profile: p, Failures: failures}, nil
}

func (ps *ProfileService) fetchOne(ctx context.Context, source sources.ProfileSource, username string) (*models.ProfileStats, error) {
	platform := string(source.Platform())
	started := time.Now()
	stats, err := source.FetchProfile(ctx, username)
	ps.metrics.ObserveSourceDuration(platform, time.Since(started))
	if err != nil {
		ps.metrics.IncSourceFetch(platform, OutcomeError)
		return nil, err
	}
	ps.metrics.IncSourceFetch(platform, OutcomeOK)
	stats.Normalize()
	return stats, nil
}

func (ps *ProfileService) updateProfileGauge(ctx context.Context) {
	n, err := ps.store.Count(ctx)
	if err != nil {
		ps.logger.Warnf(providers.TypeStore, "Can't count profiles: %s", err)
		return
	}
	ps.metrics.SetProfilesTotal(n)
}
