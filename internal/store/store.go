package store

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultKey is the single key the analysis snapshot is stored under.
const DefaultKey = "swot-analysis"

// ErrTagStoreUnavailable marks failures of the underlying key-value store.
var ErrTagStoreUnavailable = goerr.NewTag("store_unavailable")

// KV is an opaque string key-value store.
type KV interface {
	// Get returns the stored value and true, or "" and false when key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open returns the backend named by kind. path is a directory for "file" and a
// database file for "sqlite"; it is ignored for "memory".
func Open(ctx context.Context, kind, path string) (KV, error) {
	switch kind {
	case "file", "":
		return NewFile(path)
	case "sqlite":
		return NewSQLite(ctx, path)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, goerr.New("unknown store backend, supported backends are file, sqlite, memory",
			goerr.V("backend", kind), goerr.T(ErrTagStoreUnavailable))
	}
}
