package persistence

import (
	"fmt"
	"os"
	"time"

	"codefolio/internal/models"
	"codefolio/internal/persistence/interfaces"
	"codefolio/internal/providers"
	"codefolio/internal/store"

	json "github.com/goccy/go-json"
)

const snapshotVersion = 1

// Snapshot is the on-disk envelope of the in-memory profile store.
type Snapshot struct {
	Version  int               `json:"version"`
	SavedAt  time.Time         `json:"savedAt"`
	Profiles []*models.Profile `json:"profiles"`
}

type FileManager struct {
	store      store.Snapshotter
	compressor interfaces.CompressorInterface
	clock      providers.Clock
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, st store.Snapshotter, clock providers.Clock, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      st,
		clock:      clock,
		logger:     logger,
	}
}

// SaveToFile writes the snapshot next to fileName and renames it into place.
func (f *FileManager) SaveToFile(fileName string) error {
	snap := Snapshot{
		Version:  snapshotVersion,
		SavedAt:  f.clock.Now().UTC(),
		Profiles: f.store.Snapshot(),
	}

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the store from fileName. A missing file is not an
// error, there is simply nothing to restore yet.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snap Snapshot
	if err := json.Unmarshal(decompressedData, &snap); err != nil {
		return err
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	for _, p := range snap.Profiles {
		p.Normalize()
	}
	f.store.Restore(snap.Profiles)
	f.logger.Infof(providers.TypeStore, "Restored %d profiles saved at %s", len(snap.Profiles), snap.SavedAt.Format(time.RFC3339))
	return nil
}
