package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sovdevs/weirdFlights/internal/models"
)

// Store persists the dataset between runs. Load returns an empty dataset
// when nothing has been saved yet; any other failure is an error the
// caller treats as fatal.
type Store interface {
	Load(ctx context.Context) (*models.Dataset, error)
	Save(ctx context.Context, ds *models.Dataset) error
	Close() error
}

// FileStore keeps the dataset as one JSON document on disk, written
// atomically via a temp file rename.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (*models.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &models.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return &ds, nil
}

func (s *FileStore) Save(ctx context.Context, ds *models.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(s.path), err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// MemoryStore holds the dataset in process. Used in tests.
type MemoryStore struct {
	mu sync.Mutex
	ds *models.Dataset
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*models.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ds == nil {
		return &models.Dataset{}, nil
	}
	return s.ds, nil
}

func (s *MemoryStore) Save(ctx context.Context, ds *models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
