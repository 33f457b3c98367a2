package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/swotboard/internal/locale"
	"github.com/dshills/swotboard/internal/schema"
)

// List prints the data set grouped by category with colored priority badges.
// Only categories in filter are printed; an empty filter prints all four.
func List(w io.Writer, set schema.AnalysisSet, cat *locale.Catalog, filter ...schema.Category) error {
	if cat == nil {
		cat = locale.Default()
	}
	show := schema.Categories
	if len(filter) > 0 {
		show = filter
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(cat.ItemsTotal, set.Len()) + "\n")
	for _, c := range show {
		items := set.Items(c)
		title := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(schema.CategoryColor[c])).
			Render(fmt.Sprintf("%s (%d)", cat.CategoryTitle(c), len(items)))
		sb.WriteString("\n" + title + "\n")

		for _, item := range items {
			badge := lipgloss.NewStyle().
				Foreground(lipgloss.Color(schema.PriorityColor[item.Priority])).
				Render("● " + cat.PriorityLabel(item.Priority))
			line := fmt.Sprintf("  %s  %s  [%s]", badge, item.Text, item.ID)
			if item.Responsible != "" {
				line += fmt.Sprintf("  %s: %s", cat.ResponsibleField, item.Responsible)
			}
			sb.WriteString(line + "\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Terminal renders markdown for display in a terminal of the given width.
func Terminal(md []byte, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(string(md))
}
