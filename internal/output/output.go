// Package output owns the user-facing directory where finished documents
// land. Files only ever appear there complete.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"html2doc/internal/infra/logging"
)

// DownloadsDir returns $HOME/Downloads.
func DownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// Publisher writes artifacts into one directory.
type Publisher struct {
	dir string
}

// NewPublisher uses dir, or the downloads folder when dir is empty. The
// directory is created lazily on first publish.
func NewPublisher(dir string) (*Publisher, error) {
	if dir == "" {
		d, err := DownloadsDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve output dir %s: %w", dir, err)
	}
	return &Publisher{dir: abs}, nil
}

// Dir is the absolute output directory.
func (p *Publisher) Dir() string { return p.dir }

// Path returns where base+ext would be written.
func (p *Publisher) Path(base, ext string) string {
	return filepath.Join(p.dir, base+ext)
}

// Publish atomically writes data to <dir>/<base><ext>, replacing any existing
// file, and returns the absolute path. base must already be a validated
// plain file name.
func (p *Publisher) Publish(base, ext string, data []byte) (string, error) {
	if base == "" || strings.ContainsAny(base, `/\`) {
		return "", fmt.Errorf("refusing to publish %q", base)
	}
	if len(data) == 0 {
		return "", errors.New("refusing to publish an empty document")
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create output dir %s: %w", p.dir, err)
	}

	final := p.Path(base, ext)
	tmp, err := os.CreateTemp(p.dir, "."+base+"-*.part")
	if err != nil {
		return "", fmt.Errorf("cannot create temp output file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
				logging.Warn("Failed to remove partial output", "file", tmpName, "error", rmErr)
			}
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("cannot write %s: %w", final, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("cannot flush %s: %w", final, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("cannot close %s: %w", final, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("cannot set permissions on %s: %w", final, err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		return "", fmt.Errorf("cannot move output into place: %w", err)
	}
	committed = true

	logging.Info("Document saved", "path", final, "bytes", len(data))
	return final, nil
}
