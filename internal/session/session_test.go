package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/dshills/swotboard/internal/schema"
	"github.com/dshills/swotboard/internal/schema/validate"
	"github.com/dshills/swotboard/internal/session"
	"github.com/dshills/swotboard/internal/store"
)

// countingStore records saves in memory.
type countingStore struct {
	raw   any
	saves int
	last  schema.AnalysisSet
}

func (c *countingStore) Load(context.Context) (any, bool) {
	return c.raw, c.raw != nil
}

func (c *countingStore) Save(_ context.Context, set schema.AnalysisSet) {
	c.saves++
	c.last = set.Clone()
}

func clock() func() time.Time {
	t := time.UnixMilli(1700000000000)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func newSession(t *testing.T) (*session.Session, *countingStore) {
	t.Helper()
	st := &countingStore{}
	return session.Open(context.Background(), st, session.WithClock(clock())), st
}

func ptr[T any](v T) *T { return &v }

func TestOpen_EmptyStore(t *testing.T) {
	s, _ := newSession(t)
	gt.Equal(t, s.Data(), schema.NewAnalysisSet())
	gt.Equal(t, s.TotalItems(), 0)
}

func TestOpen_NormalizesSnapshot(t *testing.T) {
	raw, err := validate.DecodeJSON(`{"strengths":[{"text":"  kept  ","priority":"bogus"},{"text":""}],"threats":5}`)
	gt.NoError(t, err)

	s := session.Open(context.Background(), &countingStore{raw: raw})
	data := s.Data()
	gt.A(t, data.Strengths).Length(1)
	gt.Equal(t, data.Strengths[0].Text, "kept")
	gt.Equal(t, data.Strengths[0].Priority, schema.PriorityMedium)
	gt.A(t, data.Threats).Length(0)
}

func TestAdd_PersistsAndRoundTrips(t *testing.T) {
	ctx := context.Background()
	for _, c := range schema.Categories {
		for _, p := range schema.Priorities {
			s, st := newSession(t)
			item, err := s.Add(ctx, c, "  text for "+string(c)+"  ", p, " owner ")
			gt.NoError(t, err).Required()

			gt.Equal(t, item.Text, "text for "+string(c))
			gt.Equal(t, item.Responsible, "owner")
			gt.Equal(t, st.saves, 1)

			encoded, err := schema.EncodeJSON(s.Data())
			gt.NoError(t, err)
			raw, err := validate.DecodeJSON(string(encoded))
			gt.NoError(t, err)
			back := validate.Normalize(raw).Items(c)
			gt.A(t, back).Length(1)
			gt.Equal(t, back[0].Text, item.Text)
			gt.Equal(t, back[0].Priority, p)
			gt.Equal(t, back[0].Responsible, "owner")
		}
	}
}

func TestAdd_EmptyTextRejected(t *testing.T) {
	s, st := newSession(t)
	_, err := s.Add(context.Background(), schema.CategoryThreats, "   ", schema.PriorityHigh, "")

	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, session.ErrTagEmptyText))
	gt.Equal(t, st.saves, 0)
	gt.Equal(t, s.TotalItems(), 0)
}

func TestAdd_UnknownCategoryRejected(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Add(context.Background(), "risks", "x", schema.PriorityHigh, "")
	gt.True(t, goerr.HasTag(err, session.ErrTagUnknownCategory))
}

func TestAdd_UniqueIDs(t *testing.T) {
	s, _ := newSession(t)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		item, err := s.Add(context.Background(), schema.CategoryStrengths, "x", schema.PriorityLow, "")
		gt.NoError(t, err)
		gt.False(t, seen[item.ID])
		seen[item.ID] = true
	}
}

func TestEdit_PreservesIdentity(t *testing.T) {
	ctx := context.Background()
	s, st := newSession(t)
	orig, err := s.Add(ctx, schema.CategoryWeaknesses, "slow", schema.PriorityLow, "")
	gt.NoError(t, err)

	updated, err := s.Edit(ctx, schema.CategoryWeaknesses, orig.ID, session.Edit{
		Text:        ptr("  very slow "),
		Priority:    ptr(schema.PriorityCritical),
		Responsible: ptr(" ops "),
	})
	gt.NoError(t, err)

	gt.Equal(t, updated.ID, orig.ID)
	gt.Equal(t, updated.CreatedAt, orig.CreatedAt)
	gt.Equal(t, updated.Text, "very slow")
	gt.Equal(t, updated.Priority, schema.PriorityCritical)
	gt.Equal(t, updated.Responsible, "ops")
	gt.Equal(t, s.Data().Weaknesses[0], updated)
	gt.Equal(t, st.saves, 2)
}

func TestEdit_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)
	orig, _ := s.Add(ctx, schema.CategoryOpportunities, "market", schema.PriorityHigh, "ana")

	updated, err := s.Edit(ctx, schema.CategoryOpportunities, orig.ID, session.Edit{Priority: ptr(schema.PriorityLow)})
	gt.NoError(t, err)
	gt.Equal(t, updated.Text, "market")
	gt.Equal(t, updated.Responsible, "ana")
	gt.Equal(t, updated.Priority, schema.PriorityLow)
}

func TestEdit_Errors(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)
	orig, _ := s.Add(ctx, schema.CategoryOpportunities, "market", schema.PriorityHigh, "")

	_, err := s.Edit(ctx, schema.CategoryOpportunities, "missing", session.Edit{Text: ptr("x")})
	gt.True(t, goerr.HasTag(err, session.ErrTagItemNotFound))

	_, err = s.Edit(ctx, schema.CategoryThreats, orig.ID, session.Edit{Text: ptr("x")})
	gt.True(t, goerr.HasTag(err, session.ErrTagItemNotFound))

	_, err = s.Edit(ctx, schema.CategoryOpportunities, orig.ID, session.Edit{Text: ptr(" ")})
	gt.True(t, goerr.HasTag(err, session.ErrTagEmptyText))
	gt.Equal(t, s.Data().Opportunities[0].Text, "market")
}

func TestRemove_OnlyTargetItem(t *testing.T) {
	ctx := context.Background()
	s, st := newSession(t)
	a, _ := s.Add(ctx, schema.CategoryStrengths, "a", schema.PriorityLow, "")
	b, _ := s.Add(ctx, schema.CategoryStrengths, "b", schema.PriorityLow, "")
	c, _ := s.Add(ctx, schema.CategoryThreats, "c", schema.PriorityLow, "")
	before := s.Data()

	gt.True(t, s.Remove(ctx, schema.CategoryStrengths, a.ID))

	after := s.Data()
	gt.A(t, after.Strengths).Length(1)
	gt.Equal(t, after.Strengths[0], b)
	gt.Equal(t, after.Threats, before.Threats)
	gt.Equal(t, after.Threats[0], c)
	gt.Equal(t, st.saves, 4)
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s, st := newSession(t)
	a, _ := s.Add(ctx, schema.CategoryStrengths, "a", schema.PriorityLow, "")
	before := s.Data()

	gt.False(t, s.Remove(ctx, schema.CategoryStrengths, "nope"))
	gt.False(t, s.Remove(ctx, schema.CategoryWeaknesses, a.ID))
	gt.Equal(t, s.Data(), before)
	gt.Equal(t, st.saves, 1)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s, st := newSession(t)
	_, _ = s.Add(ctx, schema.CategoryStrengths, "a", schema.PriorityLow, "")
	s.Analyze()

	s.Clear(ctx)
	gt.Equal(t, s.Data(), schema.NewAnalysisSet())
	gt.Equal(t, st.last, schema.NewAnalysisSet())
	gt.True(t, s.Findings() == nil)
}

func TestImport_ReplacesWholeSet(t *testing.T) {
	ctx := context.Background()
	s, st := newSession(t)
	_, _ = s.Add(ctx, schema.CategoryThreats, "old", schema.PriorityLow, "")

	set, err := s.Import(ctx, `{"strengths":[{"text":"x"}]}`)
	gt.NoError(t, err)
	gt.A(t, set.Strengths).Length(1)

	data := s.Data()
	gt.A(t, data.Strengths).Length(1)
	gt.A(t, data.Threats).Length(0)
	gt.Equal(t, st.last, data)
}

func TestImport_MalformedLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s, st := newSession(t)
	_, _ = s.Add(ctx, schema.CategoryThreats, "old", schema.PriorityLow, "")
	before := s.Data()

	_, err := s.Import(ctx, "<html>nope</html>")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, validate.ErrTagMalformedJSON))
	gt.Equal(t, s.Data(), before)
	gt.Equal(t, st.saves, 1)
}

func TestAnalyze_CacheDiscardedOnMutation(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)
	gt.True(t, s.Findings() == nil)

	_, _ = s.Add(ctx, schema.CategoryThreats, "t", schema.PriorityLow, "")
	_, _ = s.Add(ctx, schema.CategoryStrengths, "s", schema.PriorityCritical, "")
	findings := s.Analyze()
	gt.A(t, findings).Length(2)
	gt.Equal(t, findings[0].Urgency, 5)
	gt.Equal(t, s.Findings(), findings)

	_, _ = s.Add(ctx, schema.CategoryThreats, "t2", schema.PriorityLow, "")
	gt.True(t, s.Findings() == nil)
}

func TestAnalyze_FindingsDoNotAffectSource(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)
	_, _ = s.Add(ctx, schema.CategoryThreats, "t", schema.PriorityLow, "")

	findings := s.Analyze()
	findings[0].Item.Text = "changed"
	gt.Equal(t, s.Data().Threats[0].Text, "t")
}

func TestSession_WithRepository(t *testing.T) {
	ctx := context.Background()
	repo := store.NewRepository(store.NewMemory(), "")

	s := session.Open(ctx, repo)
	item, err := s.Add(ctx, schema.CategoryOpportunities, "partner", schema.PriorityHigh, "")
	gt.NoError(t, err)

	reopened := session.Open(ctx, repo)
	gt.Equal(t, reopened.Data().Opportunities[0], item)
}
