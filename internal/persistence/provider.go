package persistence

import (
	"codefolio/internal/persistence/interfaces"
	"codefolio/internal/providers"
	"codefolio/internal/store"
	"codefolio/internal/structures"
)

// NewProfileScheduler persists the store when it lives in process memory.
// External stores get a scheduler that does nothing.
func NewProfileScheduler(conf *structures.Config, logger providers.Logger, st store.ProfileStoreInterface, clock providers.Clock, metrics providers.MetricsProviderInterface) (interfaces.SchedulerInterface, error) {
	snapshotter, ok := st.(store.Snapshotter)
	if !ok {
		logger.Infof(providers.TypeStore, "Profile store is external, file persistence disabled")
		return NewNoopScheduler(), nil
	}

	compressor, err := NewZstdCompressor()
	if err != nil {
		return nil, err
	}
	fm := NewFileManager(compressor, snapshotter, clock, logger)
	return NewScheduler(conf, logger, fm, metrics), nil
}
