// Package guard owns every temporary filesystem object created during
// one pipeline run and guarantees cleanup on all exit paths.
package guard

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Guard tracks temp files and directories for a single pipeline scope.
// Handles are uuid-named, so concurrent runs sharing a base directory
// never collide.
type Guard struct {
	base string
	log  zerolog.Logger

	mu      sync.Mutex
	handles []string
}

// New opens a guard scope rooted at base. An empty base falls back to
// the system temp directory.
func New(base string, log zerolog.Logger) *Guard {
	if base == "" {
		base = os.TempDir()
	}
	return &Guard{base: base, log: log}
}

// File allocates an empty guarded temp file with the given extension
// (e.g. ".mp3") and returns its path.
func (g *Guard) File(ext string) (string, error) {
	path := filepath.Join(g.base, uuid.NewString()+ext)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("guard: create temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("guard: close temp file: %w", err)
	}
	g.track(path)
	return path, nil
}

// Dir allocates a guarded temp directory and returns its path.
func (g *Guard) Dir() (string, error) {
	path := filepath.Join(g.base, uuid.NewString())
	if err := os.Mkdir(path, 0o700); err != nil {
		return "", fmt.Errorf("guard: create temp dir: %w", err)
	}
	g.track(path)
	return path, nil
}

// Release eagerly frees a single handle before the scope closes. Used
// when an intermediate resource is known to be dead weight (the
// uploaded video after its audio track has been extracted).
func (g *Guard) Release(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, h := range g.handles {
		if h == path {
			g.handles = append(g.handles[:i], g.handles[i+1:]...)
			g.remove(h)
			return
		}
	}
}

// ReleaseAll frees every remaining handle. A handle that fails to
// delete is logged and skipped; cleanup of the rest continues.
func (g *Guard) ReleaseAll() {
	g.mu.Lock()
	handles := g.handles
	g.handles = nil
	g.mu.Unlock()

	for _, h := range handles {
		g.remove(h)
	}
}

// Active reports how many handles are currently tracked.
func (g *Guard) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.handles)
}

func (g *Guard) track(path string) {
	g.mu.Lock()
	g.handles = append(g.handles, path)
	g.mu.Unlock()
}

func (g *Guard) remove(path string) {
	if err := os.RemoveAll(path); err != nil {
		g.log.Warn().Err(err).Str("path", path).Msg("failed to release temp resource")
	}
}
