// Package localstate manages the per-user data directory used for
// non-authoritative client-side state (cached location, local sqlite file).
package localstate

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	envHome      = "TIMECARD_STATE_HOME" // override for tests
	dirName      = ".timecard"           // default under $HOME
	dbFilename   = "timecard.db"
	locationFile = "last_location.json"
)

// DataDir returns the directory where local state is stored (~/.timecard).
// It creates the directory with 0700 permissions if it does not exist.
func DataDir() (string, error) {
	if custom := os.Getenv(envHome); custom != "" {
		if err := os.MkdirAll(custom, 0o700); err != nil {
			return "", err
		}
		return custom, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// DBPath returns the default sqlite database path inside the data dir.
func DBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFilename), nil
}

// CachedLocation is the last successfully resolved city/state pair. It is a
// convenience placeholder only and may be stale if the user has moved.
type CachedLocation struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// ReadCachedLocation loads the cached location, returning nil when no cache
// exists or it cannot be parsed. A broken cache is never an error.
func ReadCachedLocation() *CachedLocation {
	dir, err := DataDir()
	if err != nil {
		return nil
	}
	raw, err := os.ReadFile(filepath.Join(dir, locationFile))
	if err != nil {
		return nil
	}
	var loc CachedLocation
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil
	}
	return &loc
}

// WriteCachedLocation overwrites the cached location.
func WriteCachedLocation(loc CachedLocation) error {
	dir, err := DataDir()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, locationFile), raw, 0o600)
}
