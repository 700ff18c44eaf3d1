package highscore_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/highscore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ engine.HighScoreStore = (*highscore.FileStore)(nil)
	_ engine.HighScoreStore = (*highscore.MemoryStore)(nil)
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "best")
	store := highscore.NewFileStore(path)
	assert.Equal(t, path, store.Path())

	best, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, best, "missing file reads as zero")

	require.NoError(t, store.Save(300))
	best, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, 300, best)

	require.NoError(t, store.Save(100))
	best, err = highscore.NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 300, best, "lower scores never overwrite")

	assert.Error(t, store.Save(-1))
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best")
	require.NoError(t, os.WriteFile(path, []byte("not a number"), 0o644))

	store := highscore.NewFileStore(path)
	_, err := store.Load()
	assert.Error(t, err)

	require.NoError(t, store.Save(50))
	best, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 50, best)

	require.NoError(t, os.WriteFile(path, []byte("-5\n"), 0o644))
	_, err = store.Load()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))
	best, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, best)
}

func TestFileStoreConcurrentSaves(t *testing.T) {
	store := highscore.NewFileStore(filepath.Join(t.TempDir(), "best"))

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			assert.NoError(t, store.Save(score*10))
		}(i)
	}
	wg.Wait()

	best, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 500, best)
}

func TestMemoryStore(t *testing.T) {
	store := highscore.NewMemoryStore(-4)
	best, _ := store.Load()
	assert.Equal(t, 0, best)

	require.NoError(t, store.Save(70))
	require.NoError(t, store.Save(20))
	best, _ = store.Load()
	assert.Equal(t, 70, best)
}

func TestEngineWithFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best")
	require.NoError(t, os.WriteFile(path, []byte("1200\n"), 0o644))

	e, err := engine.New(engine.DefaultConfig(),
		engine.WithScheduler(engine.NewManualScheduler()),
		engine.WithHighScores(highscore.NewFileStore(path)))
	require.NoError(t, err)
	assert.Equal(t, 1200, e.Snapshot().HighScore)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best")
	store, err := highscore.Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
}
