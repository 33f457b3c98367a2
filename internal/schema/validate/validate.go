package validate

import (
	"encoding/json"
	"io"
	"math"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/dshills/swotboard/internal/schema"
)

// ErrTagMalformedJSON marks input that could not be parsed as JSON.
var ErrTagMalformedJSON = goerr.NewTag("malformed_json")

// DecodeJSON parses s into a generic value without assuming any shape.
// Numbers are kept as json.Number so integer timestamps survive intact.
func DecodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, goerr.Wrap(err, "JSON parse failed", goerr.T(ErrTagMalformedJSON))
	}
	// Trailing content after the first value is not a single JSON document.
	if _, err := dec.Token(); err != io.EOF {
		return nil, goerr.New("JSON parse failed: unexpected data after top-level value",
			goerr.T(ErrTagMalformedJSON))
	}
	return v, nil
}

// Normalizer turns arbitrary decoded data into a well-formed AnalysisSet.
type Normalizer struct {
	Now   func() time.Time
	NewID func(time.Time) string
}

// Normalize uses wall-clock time and schema.NewID.
func Normalize(raw any) schema.AnalysisSet {
	return (&Normalizer{}).Normalize(raw)
}

// Normalize never fails. Anything that is not an object yields the empty set; categories
// that are not arrays yield empty sequences; elements without usable text are dropped.
// Unknown fields are discarded.
func (n *Normalizer) Normalize(raw any) schema.AnalysisSet {
	out := schema.NewAnalysisSet()

	obj, ok := raw.(map[string]any)
	if !ok {
		return out
	}

	now := n.now()
	for _, c := range schema.Categories {
		elems, ok := obj[string(c)].([]any)
		if !ok {
			continue
		}
		items := make([]schema.Item, 0, len(elems))
		for _, e := range elems {
			if item, ok := n.normalizeItem(e, now); ok {
				items = append(items, item)
			}
		}
		out.SetItems(c, items)
	}
	return out
}

func (n *Normalizer) normalizeItem(e any, now time.Time) (schema.Item, bool) {
	m, ok := e.(map[string]any)
	if !ok {
		return schema.Item{}, false
	}
	text, ok := m["text"].(string)
	if !ok {
		return schema.Item{}, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return schema.Item{}, false
	}

	item := schema.Item{
		ID:          n.coerceID(m["id"], now),
		Text:        text,
		Priority:    schema.CoercePriority(m["priority"]),
		Responsible: coerceString(m["responsible"]),
		CreatedAt:   coerceMillis(m["createdAt"]),
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = now.UnixMilli()
	}
	return item, true
}

func (n *Normalizer) coerceID(v any, now time.Time) string {
	switch id := v.(type) {
	case string:
		if id != "" {
			return id
		}
	case json.Number:
		return id.String()
	}
	return n.newID(now)
}

func coerceString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// coerceMillis returns a positive epoch-millisecond value or 0.
func coerceMillis(v any) int64 {
	var f float64
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			if i > 0 {
				return i
			}
			return 0
		}
		parsed, err := x.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		if x > 0 {
			return x
		}
		return 0
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 1 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

func (n *Normalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func (n *Normalizer) newID(now time.Time) string {
	if n.NewID != nil {
		return n.NewID(now)
	}
	return schema.NewID(now)
}
