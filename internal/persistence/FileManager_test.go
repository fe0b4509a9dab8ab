package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codefolio/internal/models"
	"codefolio/internal/store"
	"codefolio/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func seededStore(t *testing.T, userIDs ...string) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore()
	for _, id := range userIDs {
		p := models.NewProfile(id, id+"@example.com", "User "+id, testNow)
		p.SetUsername(models.PlatformLeetCode, id+"-lc")
		p.Stats[models.PlatformLeetCode].TotalSolved = 10
		require.NoError(t, st.Save(context.Background(), p))
	}
	return st
}

func newTestFileManager(compressor *testutil.MockCompressor, st store.Snapshotter) *FileManager {
	return NewFileManager(compressor, st, testutil.NewFakeClock(testNow), &testutil.MockLogger{})
}

func TestFileManager_SaveToFile_AtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.dat")
	fm := newTestFileManager(&testutil.MockCompressor{}, seededStore(t, "u1"))

	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.dat")
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	src := seededStore(t, "u1", "u2")
	require.NoError(t, NewFileManager(compressor, src, testutil.NewFakeClock(testNow), &testutil.MockLogger{}).SaveToFile(path))

	dst := store.NewMemoryStore()
	fm := NewFileManager(compressor, dst, testutil.NewFakeClock(testNow), &testutil.MockLogger{})
	require.NoError(t, fm.LoadFromFile(path))

	n, err := dst.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	p, err := dst.FindByUserID(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, "u2-lc", p.Username(models.PlatformLeetCode))
	assert.Equal(t, 10, p.Stats[models.PlatformLeetCode].TotalSolved)
	assert.Len(t, p.Stats, len(models.Platforms))
}

func TestFileManager_LoadFromFile_FileNotExist(t *testing.T) {
	fm := newTestFileManager(&testutil.MockCompressor{}, store.NewMemoryStore())
	assert.NoError(t, fm.LoadFromFile("/nonexistent/path/file.dat"))
}

func TestFileManager_LoadFromFile_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	st := seededStore(t, "keep")
	fm := newTestFileManager(&testutil.MockCompressor{}, st)

	assert.Error(t, fm.LoadFromFile(path))
	n, _ := st.Count(context.Background())
	assert.Equal(t, 1, n)
}

func TestFileManager_LoadFromFile_UnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.dat")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":9,"profiles":[]}`), 0644))
	fm := newTestFileManager(&testutil.MockCompressor{}, store.NewMemoryStore())

	err := fm.LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "version 9")
}

func TestFileManager_SaveToFile_CompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.dat")
	comp := &testutil.MockCompressor{CompressFn: func([]byte) ([]byte, error) {
		return nil, errors.New("compress failed")
	}}
	fm := newTestFileManager(comp, store.NewMemoryStore())

	assert.Error(t, fm.SaveToFile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_SaveToFile_BadDirectory(t *testing.T) {
	fm := newTestFileManager(&testutil.MockCompressor{}, store.NewMemoryStore())
	assert.Error(t, fm.SaveToFile("/nonexistent/dir/profiles.dat"))
}
