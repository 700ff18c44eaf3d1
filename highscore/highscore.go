// Package highscore persists the single best score between sessions.
package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// FileStore keeps the best score as a decimal integer in a text file.
// Save is a read-compare-write under one lock, so concurrent sessions sharing
// a store never lower the stored value.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is the best-score file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "blockfall", "highscore"), nil
}

func (s *FileStore) Path() string { return s.path }

// Load returns the stored best, or 0 when the file does not exist yet.
func (s *FileStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", s.path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	score, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("parsing %s: negative score %d", s.path, score)
	}
	return score, nil
}

// Save writes score if it beats the stored best. A corrupt file is
// overwritten.
func (s *FileStore) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("negative score %d", score)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if best, err := s.load(); err == nil && best >= score {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(s.path), err)
	}

	// Write beside the target and rename so readers never see a partial file.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".highscore-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.Itoa(score) + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore keeps the best score in memory.
type MemoryStore struct {
	mu   sync.Mutex
	best int
}

func NewMemoryStore(initial int) *MemoryStore {
	return &MemoryStore{best: max(initial, 0)}
}

func (m *MemoryStore) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

func (m *MemoryStore) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.best {
		m.best = score
	}
	return nil
}

// Open returns a FileStore at path, or at DefaultPath when path is empty.
func Open(path string) (*FileStore, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	return NewFileStore(path), nil
}
