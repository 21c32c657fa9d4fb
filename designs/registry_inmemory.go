package designs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// InMemoryRegistry is a thread-safe in-memory implementation of Registry
type InMemoryRegistry struct {
	mu    sync.RWMutex
	paths map[string]string
}

func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		paths: make(map[string]string),
	}
}

func (r *InMemoryRegistry) MarkImported(designID, localPath string) error {
	if designID == "" {
		return errors.New("design id cannot be empty")
	}
	if localPath == "" {
		return errors.New("local path cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.paths[designID] = localPath
	return nil
}

func (r *InMemoryRegistry) IsImported(designID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.paths[designID]
	return ok
}

func (r *InMemoryRegistry) LocalPath(designID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, ok := r.paths[designID]
	return path, ok
}

// Rehydrate scans dir for <designId>.png files and registers each one, so
// earlier imports stay visible across restarts. A missing directory is not
// an error; it just means nothing has been imported yet.
func (r *InMemoryRegistry) Rehydrate(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("registry.Rehydrate read %q: %w", dir, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	recovered := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".png") {
			continue
		}
		designID := strings.TrimSuffix(name, ".png")
		if designID == "" {
			continue
		}
		r.paths[designID] = filepath.Join(dir, name)
		recovered++
	}

	if recovered > 0 {
		log.Info().Int("designs", recovered).Str("dir", dir).Msg("Rehydrated import registry from disk")
	}
	return recovered, nil
}
