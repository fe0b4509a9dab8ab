package store

import (
	"context"
	"sort"
	"sync"

	"codefolio/internal/models"
)

type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*models.Profile)}
}

func (m *MemoryStore) FindByUserID(_ context.Context, userID string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, profile *models.Profile) error {
	if err := validate(profile); err != nil {
		return err
	}
	m.mu.Lock()
	m.profiles[profile.UserID] = profile.Clone()
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[userID]; !ok {
		return ErrNotFound
	}
	delete(m.profiles, userID)
	return nil
}

func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles), nil
}

func (m *MemoryStore) Close() error { return nil }

// Snapshot returns copies of every profile ordered by user id.
func (m *MemoryStore) Snapshot() []*models.Profile {
	m.mu.RLock()
	out := make([]*models.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p.Clone())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// Restore replaces the whole content with profiles.
func (m *MemoryStore) Restore(profiles []*models.Profile) {
	next := make(map[string]*models.Profile, len(profiles))
	for _, p := range profiles {
		if validate(p) != nil {
			continue
		}
		c := p.Clone()
		next[c.UserID] = c
	}
	m.mu.Lock()
	m.profiles = next
	m.mu.Unlock()
}
