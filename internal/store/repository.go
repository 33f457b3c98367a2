package store

import (
	"context"
	"sync/atomic"

	"github.com/m-mizutani/ctxlog"

	"github.com/dshills/swotboard/internal/schema"
	"github.com/dshills/swotboard/internal/schema/validate"
)

// Repository persists the analysis snapshot under a single key. Store failures never
// reach the caller: Load reports them as "no data", Save logs and drops them.
type Repository struct {
	kv       KV
	key      string
	failures atomic.Int64
}

// NewRepository wraps kv. An empty key selects DefaultKey.
func NewRepository(kv KV, key string) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{kv: kv, key: key}
}

// Load returns the decoded snapshot, not yet normalized, and true; or nil and false when
// nothing usable is stored.
func (r *Repository) Load(ctx context.Context) (any, bool) {
	logger := ctxlog.From(ctx)

	value, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		logger.Warn("loading snapshot failed", "key", r.key, "error", err)
		return nil, false
	}
	if !ok || value == "" {
		return nil, false
	}

	raw, err := validate.DecodeJSON(value)
	if err != nil {
		logger.Warn("stored snapshot is corrupt, ignoring it", "key", r.key, "error", err)
		return nil, false
	}
	return raw, true
}

// Save writes the full set. It never fails; see Failures.
func (r *Repository) Save(ctx context.Context, set schema.AnalysisSet) {
	logger := ctxlog.From(ctx)

	data, err := schema.EncodeJSON(set)
	if err != nil {
		r.failures.Add(1)
		logger.Error("encoding snapshot failed", "error", err)
		return
	}
	if err := r.kv.Set(ctx, r.key, string(data)); err != nil {
		r.failures.Add(1)
		logger.Warn("saving snapshot failed", "key", r.key, "error", err)
		return
	}
	logger.Debug("snapshot saved", "key", r.key, "bytes", len(data))
}

// Failures is the number of saves dropped since the repository was created.
func (r *Repository) Failures() int64 {
	return r.failures.Load()
}

// Close releases the underlying store.
func (r *Repository) Close() error {
	return r.kv.Close()
}
