package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/swotboard/internal/analysis"
	"github.com/dshills/swotboard/internal/importer"
	"github.com/dshills/swotboard/internal/logging"
	"github.com/dshills/swotboard/internal/render"
	"github.com/dshills/swotboard/internal/schema"
	"github.com/dshills/swotboard/internal/session"
	"github.com/dshills/swotboard/internal/store"
)

func parseCategoryArg(s string) (schema.Category, error) {
	c, err := schema.ParseCategory(s)
	if err != nil {
		return "", classify(err, "invalid category %q", s)
	}
	return c, nil
}

func parsePriorityFlag(s string) (schema.Priority, error) {
	p, err := schema.ParsePriority(s)
	if err != nil {
		return "", classify(err, "invalid priority %q", s)
	}
	return p, nil
}

// outputErr reports a failed write to stdout.
func outputErr(err error) error {
	if err == nil {
		return nil
	}
	return codeError(exitGeneric, "writing output: %s", err)
}

func newAddCmd(a *app) *cobra.Command {
	var priority, responsible string
	cmd := &cobra.Command{
		Use:   "add <category> <text>...",
		Short: "Add an item to a category",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}
			prio, err := parsePriorityFlag(priority)
			if err != nil {
				return err
			}
			item, err := a.sess.Add(cmd.Context(), category, strings.Join(args[1:], " "), prio, responsible)
			if err != nil {
				return classify(err, "adding item")
			}
			fmt.Fprintf(a.stdout, "%s %s\n", item.ID, a.catalog.CategoryTitle(category))
			return nil
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", string(schema.PriorityMedium), "Priority: low, medium, high or critical")
	cmd.Flags().StringVarP(&responsible, "responsible", "r", "", "Person or team responsible")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var text, priority, responsible string
	cmd := &cobra.Command{
		Use:   "edit <category> <id>",
		Short: "Change the text, priority or responsible of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}

			var e session.Edit
			f := cmd.Flags()
			if f.Changed("text") {
				e.Text = &text
			}
			if f.Changed("priority") {
				prio, err := parsePriorityFlag(priority)
				if err != nil {
					return err
				}
				e.Priority = &prio
			}
			if f.Changed("responsible") {
				e.Responsible = &responsible
			}
			if e.Text == nil && e.Priority == nil && e.Responsible == nil {
				return codeError(exitUsage, "nothing to change: set --text, --priority or --responsible")
			}

			item, err := a.sess.Edit(cmd.Context(), category, args[1], e)
			if err != nil {
				return classify(err, "editing item")
			}
			fmt.Fprintf(a.stdout, "%s updated\n", item.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New text")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority")
	cmd.Flags().StringVarP(&responsible, "responsible", "r", "", "New responsible; empty clears it")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <category> <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}
			if !a.sess.Remove(cmd.Context(), category, args[1]) {
				fmt.Fprintf(a.stderr, "no item %s in %s; nothing removed\n", args[1], category)
				return nil
			}
			fmt.Fprintf(a.stdout, "%s removed\n", args[1])
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var categories []string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the SWOT matrix",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter []schema.Category
			for _, s := range categories {
				c, err := parseCategoryArg(s)
				if err != nil {
					return err
				}
				filter = append(filter, c)
			}
			return outputErr(render.List(a.stdout, a.sess.Data(), a.catalog, filter...))
		},
	}
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Only show these categories (may be repeated)")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes && !a.confirm(fmt.Sprintf("Delete all %d items? [y/N] ", a.sess.TotalItems())) {
				fmt.Fprintln(a.stderr, "aborted; nothing deleted")
				return nil
			}
			a.sess.Clear(cmd.Context())
			fmt.Fprintln(a.stdout, "all items deleted")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// confirm reads one answer line from stdin; only y or yes confirms.
func (a *app) confirm(prompt string) bool {
	fmt.Fprint(a.stderr, prompt)
	line, _ := bufio.NewReader(a.stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count items per category and priority",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			sum := analysis.Summarize(a.sess.Data())
			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return outputErr(enc.Encode(sum))
			}

			fmt.Fprintf(a.stdout, a.catalog.ItemsTotal+"\n\n", sum.Total)
			for _, c := range schema.Categories {
				fmt.Fprintf(a.stdout, "  %-16s %d\n", a.catalog.CategoryTitle(c), sum.ByCategory[c])
			}
			fmt.Fprintln(a.stdout)
			for i := len(schema.Priorities) - 1; i >= 0; i-- {
				p := schema.Priorities[i]
				fmt.Fprintf(a.stdout, "  %-16s %d\n", a.catalog.PriorityLabel(p), sum.ByPriority[p])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print counts as JSON")
	return cmd
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var format, minPriority string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank every item by urgency with impact and recommendation",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			floor := schema.PriorityLow
			if minPriority != "" {
				p, err := parsePriorityFlag(minPriority)
				if err != nil {
					return err
				}
				floor = p
			}

			findings := analysis.FilterByUrgency(a.sess.Analyze(), floor)
			report := &render.Report{
				Data:        a.sess.Data(),
				Findings:    findings,
				GeneratedAt: time.Now(),
				Catalog:     a.catalog,
			}

			switch format {
			case "json":
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return outputErr(enc.Encode(findings))
			case "md":
				_, err := a.stdout.Write(render.FindingsMarkdown(report))
				return outputErr(err)
			case "text":
				md := render.FindingsMarkdown(report)
				f, ok := a.stdout.(*os.File)
				if !ok || !logging.IsTerminal(f) {
					_, err := a.stdout.Write(md)
					return outputErr(err)
				}
				width := 80
				if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
					width = w
				}
				out, err := render.Terminal(md, width)
				if err != nil {
					return codeError(exitGeneric, "rendering analysis: %s", err)
				}
				_, err = fmt.Fprint(a.stdout, out)
				return outputErr(err)
			default:
				return codeError(exitUsage, "--format must be text, md or json, got %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, md or json")
	cmd.Flags().StringVar(&minPriority, "min-priority", "", "Only show findings at or above this priority")
	return cmd
}

type exportFlags struct {
	out        string
	noAnalysis bool
}

func newExportCmd(a *app) *cobra.Command {
	var flags exportFlags
	cmd := &cobra.Command{
		Use:       "export <json|md|pdf>",
		Short:     "Write the matrix and its analysis to a file",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"json", "md", "pdf"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(args[0], flags)
		},
	}
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output file, or - for stdout (default <export dir>/<standard name>)")
	cmd.Flags().BoolVar(&flags.noAnalysis, "no-analysis", false, "Leave the analysis section out of md and pdf reports")
	return cmd
}

func (a *app) runExport(format string, flags exportFlags) error {
	// --- Step 1: Select renderer ---
	renderer, err := render.NewRenderer(format)
	if err != nil {
		return codeError(exitUsage, "invalid format: %s", err)
	}

	// --- Step 2: Build report; analysis is generated fresh unless disabled ---
	report := &render.Report{
		Data:        a.sess.Data(),
		GeneratedAt: time.Now(),
		Catalog:     a.catalog,
	}
	if !flags.noAnalysis {
		report.Findings = a.sess.Analyze()
	}

	// --- Step 3: Render fully before touching the destination ---
	out, err := renderer.Render(report)
	if err != nil {
		return classify(err, "rendering %s", format)
	}

	// --- Step 4: Write ---
	if flags.out == "-" {
		_, err := a.stdout.Write(out)
		return outputErr(err)
	}
	path := flags.out
	if path == "" {
		path = filepath.Join(a.cfg.Export.Dir, render.FileName(format))
	}
	if err := store.WriteFileAtomic(path, out, 0o644); err != nil {
		return codeError(exitExport, "writing %s: %s", path, err)
	}
	fmt.Fprintf(a.stdout, "exported %s (%d bytes)\n", path, len(out))
	return nil
}

func newImportCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the matrix with the contents of a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// --- Step 1: Read ---
			file, err := importer.LoadFile(args[0])
			if err != nil {
				return classify(err, "loading import file")
			}

			// --- Step 2: Preview only ---
			if dryRun {
				incoming, err := importer.Import(file.Contents)
				if err != nil {
					return classify(err, "parsing %s", file.Path)
				}
				diff, err := importer.Diff(a.sess.Data(), incoming)
				if err != nil {
					return codeError(exitGeneric, "computing diff: %s", err)
				}
				added, removed := importer.Stats(diff)
				fmt.Fprint(a.stdout, diff)
				fmt.Fprintf(a.stdout, "\n%d line(s) added, %d removed; %d items would replace %d (dry run, nothing changed)\n",
					added, removed, incoming.Len(), a.sess.TotalItems())
				return nil
			}

			// --- Step 3: Replace atomically ---
			set, err := a.sess.Import(ctx, file.Contents)
			if err != nil {
				return classify(err, "importing %s", file.Path)
			}
			fmt.Fprintf(a.stdout, "imported %d items from %s (%s)\n", set.Len(), file.Path, file.Hash)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without replacing anything")
	return cmd
}
