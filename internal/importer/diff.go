package importer

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/swotboard/internal/schema"
)

// Diff returns a line-oriented preview of the change from before to after, using the
// canonical JSON of each set. Unchanged lines are prefixed with two spaces, removed
// lines with "- " and added lines with "+ ". An empty string means no change.
func Diff(before, after schema.AnalysisSet) (string, error) {
	a, err := schema.EncodeJSON(before)
	if err != nil {
		return "", err
	}
	b, err := schema.EncodeJSON(after)
	if err != nil {
		return "", err
	}
	return diffLines(string(a), string(b)), nil
}

func diffLines(a, b string) string {
	if a == b {
		return ""
	}

	dmp := diffmatchpatch.New()
	ra, rb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ra, rb, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(fmt.Sprintf("%s%s", prefix, strings.TrimSuffix(line, "\n")))
			out.WriteString("\n")
		}
	}
	return out.String()
}

// Stats counts added and removed lines in a Diff result.
func Stats(diff string) (added, removed int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+ "):
			added++
		case strings.HasPrefix(line, "- "):
			removed++
		}
	}
	return
}
