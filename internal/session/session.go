package session

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dshills/swotboard/internal/analysis"
	"github.com/dshills/swotboard/internal/importer"
	"github.com/dshills/swotboard/internal/locale"
	"github.com/dshills/swotboard/internal/schema"
	"github.com/dshills/swotboard/internal/schema/validate"
)

var (
	ErrTagEmptyText       = goerr.NewTag("empty_text")
	ErrTagItemNotFound    = goerr.NewTag("item_not_found")
	ErrTagUnknownCategory = schema.ErrTagUnknownCategory
	ErrTagInvalidPriority = schema.ErrTagInvalidPriority
)

// Store is the persistence boundary a session writes through.
type Store interface {
	Load(ctx context.Context) (any, bool)
	Save(ctx context.Context, set schema.AnalysisSet)
}

// Session owns the analysis set for its lifetime. Every mutation is followed by a
// best-effort save and discards any previously generated findings.
type Session struct {
	store      Store
	catalog    *locale.Catalog
	normalizer *validate.Normalizer
	set        schema.AnalysisSet
	findings   []schema.Finding
}

// Option configures a Session.
type Option func(*Session)

// WithCatalog selects the narratives used by Analyze.
func WithCatalog(c *locale.Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

// WithClock fixes the time source for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.normalizer.Now = now }
}

// Open starts a session from the stored snapshot, if any. The snapshot goes through
// the normalizer like any other external input.
func Open(ctx context.Context, store Store, opts ...Option) *Session {
	s := &Session{
		store:      store,
		catalog:    locale.Default(),
		normalizer: &validate.Normalizer{},
		set:        schema.NewAnalysisSet(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if raw, ok := store.Load(ctx); ok {
		s.set = s.normalizer.Normalize(raw)
		ctxlog.From(ctx).Debug("session restored", "items", s.set.Len())
	}
	return s
}

// Data returns a copy of the current set.
func (s *Session) Data() schema.AnalysisSet {
	return s.set.Clone()
}

// TotalItems counts items across all categories.
func (s *Session) TotalItems() int {
	return s.set.Len()
}

// Catalog returns the session's locale catalog.
func (s *Session) Catalog() *locale.Catalog {
	return s.catalog
}

// Add appends a new item to category and returns it.
func (s *Session) Add(ctx context.Context, category schema.Category, text string, priority schema.Priority, responsible string) (schema.Item, error) {
	if err := checkCategory(category); err != nil {
		return schema.Item{}, err
	}
	if !schema.IsValidPriority(priority) {
		return schema.Item{}, goerr.New("invalid priority",
			goerr.V("priority", priority), goerr.T(ErrTagInvalidPriority))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return schema.Item{}, goerr.New("item text is required", goerr.T(ErrTagEmptyText))
	}

	now := s.now()
	item := schema.Item{
		ID:          s.newID(now),
		Text:        text,
		Priority:    priority,
		Responsible: strings.TrimSpace(responsible),
		CreatedAt:   now.UnixMilli(),
	}
	s.set.SetItems(category, append(s.set.Items(category), item))
	s.changed(ctx, "item added", "category", category, "id", item.ID)
	return item, nil
}

// Edit holds the fields to change; nil fields are left as they are.
type Edit struct {
	Text        *string
	Priority    *schema.Priority
	Responsible *string
}

// Edit updates an item in place. id and createdAt never change.
func (s *Session) Edit(ctx context.Context, category schema.Category, id string, e Edit) (schema.Item, error) {
	if err := checkCategory(category); err != nil {
		return schema.Item{}, err
	}
	items := s.set.Items(category)
	idx := indexOf(items, id)
	if idx < 0 {
		return schema.Item{}, goerr.New("item not found",
			goerr.V("category", category), goerr.V("id", id), goerr.T(ErrTagItemNotFound))
	}

	updated := items[idx]
	if e.Text != nil {
		text := strings.TrimSpace(*e.Text)
		if text == "" {
			return schema.Item{}, goerr.New("item text is required", goerr.T(ErrTagEmptyText))
		}
		updated.Text = text
	}
	if e.Priority != nil {
		if !schema.IsValidPriority(*e.Priority) {
			return schema.Item{}, goerr.New("invalid priority",
				goerr.V("priority", *e.Priority), goerr.T(ErrTagInvalidPriority))
		}
		updated.Priority = *e.Priority
	}
	if e.Responsible != nil {
		updated.Responsible = strings.TrimSpace(*e.Responsible)
	}

	next := make([]schema.Item, len(items))
	copy(next, items)
	next[idx] = updated
	s.set.SetItems(category, next)
	s.changed(ctx, "item edited", "category", category, "id", id)
	return updated, nil
}

// Remove deletes the item with id from category. It reports whether anything was
// removed; an unknown id changes nothing and does not save.
func (s *Session) Remove(ctx context.Context, category schema.Category, id string) bool {
	items := s.set.Items(category)
	idx := indexOf(items, id)
	if idx < 0 {
		return false
	}

	next := make([]schema.Item, 0, len(items)-1)
	next = append(next, items[:idx]...)
	next = append(next, items[idx+1:]...)
	s.set.SetItems(category, next)
	s.changed(ctx, "item removed", "category", category, "id", id)
	return true
}

// Clear empties every category.
func (s *Session) Clear(ctx context.Context) {
	s.set = schema.NewAnalysisSet()
	s.changed(ctx, "analysis cleared")
}

// Replace swaps in a copy of set wholesale.
func (s *Session) Replace(ctx context.Context, set schema.AnalysisSet) {
	s.set = set.Clone()
	s.changed(ctx, "analysis replaced", "items", s.set.Len())
}

// Import parses contents and replaces the set. On error nothing changes.
func (s *Session) Import(ctx context.Context, contents string) (schema.AnalysisSet, error) {
	set, err := importer.ImportWith(s.normalizer, contents)
	if err != nil {
		ctxlog.From(ctx).Warn("import rejected", "error", err)
		return schema.AnalysisSet{}, err
	}
	s.Replace(ctx, set)
	return set.Clone(), nil
}

// Analyze computes findings for the current set and keeps them until the next mutation.
func (s *Session) Analyze() []schema.Finding {
	s.findings = analysis.Analyze(s.set, s.catalog)
	return s.Findings()
}

// Findings returns the last generated findings, or nil if none are current.
func (s *Session) Findings() []schema.Finding {
	if s.findings == nil {
		return nil
	}
	out := make([]schema.Finding, len(s.findings))
	copy(out, s.findings)
	return out
}

// DiscardAnalysis drops the cached findings.
func (s *Session) DiscardAnalysis() {
	s.findings = nil
}

func (s *Session) changed(ctx context.Context, msg string, args ...any) {
	s.findings = nil
	ctxlog.From(ctx).Debug(msg, args...)
	s.store.Save(ctx, s.set)
}

func (s *Session) now() time.Time {
	if s.normalizer.Now != nil {
		return s.normalizer.Now()
	}
	return time.Now()
}

func (s *Session) newID(now time.Time) string {
	if s.normalizer.NewID != nil {
		return s.normalizer.NewID(now)
	}
	return schema.NewID(now)
}

func checkCategory(c schema.Category) error {
	if !schema.IsValidCategory(c) {
		return goerr.New("unknown category", goerr.V("category", c), goerr.T(ErrTagUnknownCategory))
	}
	return nil
}

func indexOf(items []schema.Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
