package store

import (
	"context"
	"errors"
	"fmt"

	"codefolio/internal/models"
	"codefolio/internal/providers"
	"codefolio/internal/structures"
)

var ErrNotFound = errors.New("store: profile not found")

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// ProfileStoreInterface persists profiles by user id. Returned profiles are
// copies, mutating them never changes stored state.
type ProfileStoreInterface interface {
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, userID string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// Snapshotter is implemented by stores that live in process memory and need
// file persistence.
type Snapshotter interface {
	Snapshot() []*models.Profile
	Restore(profiles []*models.Profile)
}

func NewProfileStore(conf *structures.Config, logger providers.Logger) (ProfileStoreInterface, error) {
	switch conf.Store.Driver {
	case DriverRedis:
		s, err := NewRedisStore(conf.Store.RedisUrl)
		if err != nil {
			return nil, err
		}
		logger.Infof(providers.TypeStore, "Using redis profile store")
		return s, nil
	case DriverPostgres:
		s, err := NewPostgresStore(context.Background(), conf.Store.PostgresDsn)
		if err != nil {
			return nil, err
		}
		logger.Infof(providers.TypeStore, "Using postgres profile store")
		return s, nil
	case DriverMemory, "":
		logger.Infof(providers.TypeStore, "Using in-memory profile store")
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", conf.Store.Driver)
}

func validate(profile *models.Profile) error {
	if profile == nil || profile.UserID == "" {
		return errors.New("store: profile without user id")
	}
	return nil
}
