package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/swotboard/internal/config"
	"github.com/dshills/swotboard/internal/locale"
	"github.com/dshills/swotboard/internal/logging"
	"github.com/dshills/swotboard/internal/render"
	"github.com/dshills/swotboard/internal/schema/validate"
	"github.com/dshills/swotboard/internal/session"
	"github.com/dshills/swotboard/internal/store"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Exit codes.
const (
	exitGeneric   = 1
	exitMalformed = 2
	exitUsage     = 3
	exitExport    = 4
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// classify maps tagged errors to exit codes.
func classify(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...) + ": " + err.Error()
	switch {
	case goerr.HasTag(err, validate.ErrTagMalformedJSON):
		return &exitErr{code: exitMalformed, msg: msg}
	case goerr.HasTag(err, render.ErrTagExport):
		return &exitErr{code: exitExport, msg: msg}
	case goerr.HasTag(err, config.ErrTagInvalidConfig),
		goerr.HasTag(err, session.ErrTagEmptyText),
		goerr.HasTag(err, session.ErrTagInvalidPriority),
		goerr.HasTag(err, session.ErrTagUnknownCategory):
		return &exitErr{code: exitUsage, msg: msg}
	default:
		return &exitErr{code: exitGeneric, msg: msg}
	}
}

// globalFlags override configuration for a single invocation.
type globalFlags struct {
	configPath string
	store      string
	storePath  string
	locale     string
	logLevel   string
	logFormat  string
}

// app is the state shared by every command of one invocation.
type app struct {
	ctx     context.Context
	flags   globalFlags
	cfg     *config.Config
	repo    *store.Repository
	sess    *session.Session
	catalog *locale.Catalog

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(exitGeneric)
	}
}

// run executes one command line and prints any error to stderr. The store is closed
// on every path, including command errors. Errors cobra raises itself (unknown
// commands or flags, wrong argument counts) become usage errors.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root, a := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	a.close()
	if err == nil {
		return nil
	}

	var ee *exitErr
	if !errors.As(err, &ee) {
		ee = &exitErr{code: exitUsage, msg: err.Error() + "\nRun 'swot --help' for usage."}
	}
	fmt.Fprintln(stderr, "Error:", ee.msg)
	return ee
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) (*cobra.Command, *app) {
	a := &app{ctx: context.Background(), stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "swot",
		Short:         "Build and analyze a SWOT matrix",
		Long:          "swot records strengths, weaknesses, opportunities and threats, ranks them by urgency, and exports the result as JSON, Markdown or PDF.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			cmd.SetContext(a.ctx)
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Configuration file (default $SWOT_CONFIG or <user config dir>/swot/config.yaml)")
	pf.StringVar(&a.flags.store, "store", "", "Storage backend: file, sqlite or memory")
	pf.StringVar(&a.flags.storePath, "store-path", "", "Storage directory (file) or database file (sqlite)")
	pf.StringVar(&a.flags.locale, "locale", "", "Report language: en or pt-BR")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Diagnostic level: debug, info, warn or error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "Diagnostic format: auto, console or json")

	root.AddCommand(
		newAddCmd(a),
		newEditCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newClearCmd(a),
		newStatsCmd(a),
		newAnalyzeCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root, a
}

// open resolves configuration, builds the logger and opens the session.
func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// --- Step 1: Configuration (file, then env, then flags) ---
	cfg, err := config.Load(config.Path(a.flags.configPath))
	if err != nil {
		return classify(err, "loading configuration")
	}
	a.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return classify(err, "invalid configuration")
	}
	a.cfg = cfg

	// --- Step 2: Logger ---
	format, _ := logging.ParseFormat(cfg.Log.Format)
	logger := logging.NewLoggerWithFormat(logging.ParseLogLevel(cfg.Log.Level), a.stderr, format)
	ctx = ctxlog.With(ctx, logger)
	a.ctx = ctx

	// --- Step 3: Locale ---
	a.catalog, err = locale.Get(cfg.Locale)
	if err != nil {
		return codeError(exitUsage, "loading locale: %s", err)
	}

	// --- Step 4: Store and session ---
	kv, err := store.Open(ctx, cfg.Store.Backend, cfg.StorePath())
	if err != nil {
		return codeError(exitGeneric, "opening %s store: %s", cfg.Store.Backend, err)
	}
	a.repo = store.NewRepository(kv, cfg.Store.Key)
	a.sess = session.Open(ctx, a.repo, session.WithCatalog(a.catalog))

	logger.Debug("session opened",
		slog.String("backend", cfg.Store.Backend),
		slog.String("path", cfg.StorePath()),
		slog.Int("items", a.sess.TotalItems()),
	)
	return nil
}

func (a *app) applyFlags(cfg *config.Config) {
	overrides := []struct {
		value string
		field *string
	}{
		{a.flags.store, &cfg.Store.Backend},
		{a.flags.storePath, &cfg.Store.Path},
		{a.flags.locale, &cfg.Locale},
		{a.flags.logLevel, &cfg.Log.Level},
		{a.flags.logFormat, &cfg.Log.Format},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.field = o.value
		}
	}
}

// close releases the store and reports dropped saves without failing the command.
func (a *app) close() {
	if a.repo == nil {
		return
	}
	if n := a.repo.Failures(); n > 0 {
		fmt.Fprintf(a.stderr, "WARN: %d change(s) could not be saved; they are lost when this command exits\n", n)
	}
	if err := a.repo.Close(); err != nil {
		ctxlog.From(a.ctx).Warn("closing store failed", "error", err)
	}
	a.repo = nil
}
