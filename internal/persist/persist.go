package persist

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/keith-kurak/i-didnt-park/internal/model"
)

// StoreName is the logical namespace all state is persisted under,
// regardless of backend.
const StoreName = "commuteStore"

// Adapter is the durable-storage contract. Both implementations
// serialize the exact model shapes losslessly: absent optional fields
// round-trip as absent, not as defaults.
type Adapter interface {
	// LoadAll returns the last durably saved state, or the defaults
	// (empty collection, default settings) if nothing was ever saved.
	LoadAll() ([]model.Commute, model.Settings, error)

	// SaveAll durably persists the full state, replacing whatever was
	// previously stored. A failed save leaves the prior state intact.
	SaveAll([]model.Commute, model.Settings) error

	Close() error
}

// Backend names a persistence implementation.
type Backend string

const (
	// BackendAuto probes the host and picks the best available backend
	BackendAuto Backend = "auto"

	// BackendSQLite forces the embedded relational store
	BackendSQLite Backend = "sqlite"

	// BackendKV forces the flat key-value store
	BackendKV Backend = "kv"
)

// ParseBackend converts a string tag to a Backend. The empty string
// parses to BackendAuto.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "":
		return BackendAuto, nil
	case BackendAuto, BackendSQLite, BackendKV:
		return Backend(s), nil
	}

	return "", fmt.Errorf("unknown backend %q", s)
}

// Open selects and opens a persistence backend rooted at dir. With
// BackendAuto it prefers the structured store and falls back to the
// flat store when the host lacks a full filesystem or the structured
// engine cannot open. The choice happens once; callers use the
// returned Adapter without ever branching on platform.
func Open(dir string, backend Backend, logger *slog.Logger) (Adapter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch backend {
	case BackendSQLite:
		return OpenSQLite(dir)
	case BackendKV:
		return OpenKV(dir, NewCipher(dir, logger))
	}

	// Sandboxed runtimes offer key-value persistence only.
	if runtime.GOOS == "js" || runtime.GOOS == "wasip1" {
		return OpenKV(dir, nil)
	}

	ad, err := OpenSQLite(dir)
	if err == nil {
		return ad, nil
	}

	logger.Warn("structured store unavailable, falling back to key-value store", "error", err)

	return OpenKV(dir, NewCipher(dir, logger))
}
