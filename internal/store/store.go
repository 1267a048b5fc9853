package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/fakeyudi/timetrack/internal/tracker"
)

// ErrNoState is returned by Load when no state file exists on disk.
var ErrNoState = errors.New("no saved state")

// StateStore persists a tracker.Snapshot between runs.
type StateStore interface {
	Save(s tracker.Snapshot) error
	Load() (tracker.Snapshot, error) // returns ErrNoState if none exists
	Delete() error
	Path() string
}

// diskStore is the concrete StateStore that writes to the data directory.
type diskStore struct {
	path string // full path to state.json
}

// NewStateStore returns a StateStore rooted at dir. An empty dir selects the
// XDG data directory: $XDG_DATA_HOME/timetrack or ~/.local/share/timetrack.
func NewStateStore(dir string) (StateStore, error) {
	if dir == "" {
		var err error
		if dir, err = dataDir(); err != nil {
			return nil, fmt.Errorf("resolving data directory: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &diskStore{path: filepath.Join(dir, "state.json")}, nil
}

// dataDir returns the timetrack-specific XDG data directory.
func dataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "timetrack"), nil
}

func (d *diskStore) Path() string { return d.path }

// Save encodes s and writes it atomically via a temp file + os.Rename.
func (d *diskStore) Save(s tracker.Snapshot) (err error) {
	data, err := sonic.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	// Same directory so os.Rename is atomic.
	tmp, err := os.CreateTemp(filepath.Dir(d.path), "state-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist state: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	if err = os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// Load reads and decodes the state file.
// Returns ErrNoState if the file does not exist.
func (d *diskStore) Load() (tracker.Snapshot, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tracker.Snapshot{}, ErrNoState
		}
		return tracker.Snapshot{}, fmt.Errorf("failed to read state: %w", err)
	}

	var s tracker.Snapshot
	if err := sonic.Unmarshal(data, &s); err != nil {
		return tracker.Snapshot{}, fmt.Errorf("failed to parse state %s: %w", d.path, err)
	}
	return s, nil
}

// Delete removes the state file from disk.
func (d *diskStore) Delete() error {
	if err := os.Remove(d.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}
