// Package staging provides the per-request scratch directory that holds the
// HTML documents handed to the browser and the images captured from it.
package staging

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"html2doc/internal/infra/logging"
)

// Dir is an exclusively owned temporary directory. Callers defer Cleanup
// right after New succeeds.
type Dir struct {
	path string
	once sync.Once
}

// New creates a uniquely named directory under the system temp dir.
func New(prefix string) (*Dir, error) {
	p, err := os.MkdirTemp("", prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("cannot create staging dir: %w", err)
	}
	logging.Debug("Created staging directory", "dir", p)
	return &Dir{path: p}, nil
}

// Path returns the absolute directory path.
func (d *Dir) Path() string { return d.path }

// Join returns the path of name inside the directory.
func (d *Dir) Join(name string) string { return filepath.Join(d.path, name) }

// WriteFile stores data under name and returns the full path.
func (d *Dir) WriteFile(name string, data []byte) (string, error) {
	p := d.Join(name)
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return "", fmt.Errorf("cannot stage %s: %w", name, err)
	}
	return p, nil
}

// URL returns the file:// URL a browser can navigate to for name.
func (d *Dir) URL(name string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(d.Join(name))}).String()
}

// Cleanup removes the directory tree. Only the first call does any work;
// failures are logged, never returned.
func (d *Dir) Cleanup() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		if err := os.RemoveAll(d.path); err != nil {
			logging.Error("Error cleaning up staging directory", "dir", d.path, "error", err)
			return
		}
		logging.Info("Cleaned up staging directory", "dir", d.path)
	})
}
