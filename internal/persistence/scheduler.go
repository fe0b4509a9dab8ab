package persistence

import (
	"sync"
	"time"

	"codefolio/internal/persistence/interfaces"
	"codefolio/internal/providers"
	"codefolio/internal/structures"

	"github.com/roylee0704/gron"
)

// Scheduler periodically saves the in-memory profile store. It never
// refreshes upstream data.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Persistence.SaveInterval

	s.cron.AddFunc(gron.Every(interval), func() {
		if err := s.save(); err != nil {
			s.logger.Errorf(providers.TypeStore, "Error while persisting profiles: %s", err)
			return
		}
		s.logger.Debugf(providers.TypeStore, "Persisted profiles to %s", s.config.Persistence.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.logger.Infof(providers.TypeStore, "Persisting profiles to file...")
	if err := s.save(); err != nil {
		s.logger.Errorf(providers.TypeStore, "Error while persisting profiles: %s", err)
		return err
	}
	return nil
}

func (s *Scheduler) save() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	started := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(started))
	return err
}

func NewScheduler(config *structures.Config, logger providers.Logger, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		fileManager: fileManager,
		metrics:     metrics,
	}
}

// noopScheduler is used when profiles live outside the process.
type noopScheduler struct{}

func (noopScheduler) Init()          {}
func (noopScheduler) Stop()          {}
func (noopScheduler) Restore() error { return nil }
func (noopScheduler) Persist() error { return nil }

func NewNoopScheduler() interfaces.SchedulerInterface {
	return noopScheduler{}
}
