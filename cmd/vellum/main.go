// Package main is the entry point for the Vellum editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/vellum-editor/vellum/internal/config"
	"github.com/vellum-editor/vellum/internal/dialog"
	"github.com/vellum-editor/vellum/internal/engine/buffer"
	"github.com/vellum-editor/vellum/internal/eventloop"
	"github.com/vellum-editor/vellum/internal/executor"
	"github.com/vellum-editor/vellum/internal/gutter"
	"github.com/vellum-editor/vellum/internal/highlight"
	"github.com/vellum-editor/vellum/internal/keymap"
	"github.com/vellum-editor/vellum/internal/lsp"
	"github.com/vellum-editor/vellum/internal/lspsync"
	"github.com/vellum-editor/vellum/internal/pluginhost"
	"github.com/vellum-editor/vellum/internal/render"
	"github.com/vellum-editor/vellum/internal/renderer/backend"
	"github.com/vellum-editor/vellum/internal/state"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the flags that shape this process's run of the editor,
// kept as a plain struct (rather than the teacher's app.Options, which
// also carried fields only the dead application wiring consumed).
type options struct {
	ConfigPath string
	Workspace  string
	LogLevel   string
	NoLSP      bool
	Files      []string
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	log := newLogger(opts.LogLevel)

	if opts.ConfigPath != "" {
		log.Debug("explicit config path requested but config.Load resolves its own search path", "path", opts.ConfigPath)
	}
	configCtx, configCancel := context.WithCancel(context.Background())
	sys, err := config.NewConfigSystem(configCtx,
		config.WithSystemProjectConfigDir(opts.Workspace),
		config.WithSystemWatcher(true),
	)
	if err != nil {
		log.Warn("config load failed, continuing with defaults", "error", err)
		sys, err = config.NewConfigSystem(configCtx, config.WithSystemWatcher(false))
		if err != nil {
			configCancel()
			fmt.Fprintf(os.Stderr, "Error: failed to initialize configuration: %v\n", err)
			return 1
		}
	}
	defer configCancel()
	defer sys.Close()
	if health := sys.Health(); health.Status != config.HealthOK {
		log.Warn("configuration system degraded", "errors", health.ErrorCount, "load_time", health.LoadTime)
	}

	km := sys.Keymaps()
	if err := km.LoadDefaults(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load default keymap: %v\n", err)
		return 1
	}
	if err := km.LoadFromConfig(); err != nil {
		log.Warn("keymap config overlay failed, using defaults only", "error", err)
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	width, height := term.Size()
	st := state.New(width, height)
	openInitialBuffers(st, opts.Files, log)

	root := opts.Workspace
	if root == "" {
		if wd, err := os.Getwd(); err == nil {
			root = wd
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	var lspClient *lsp.Client
	if !opts.NoLSP {
		lspClient = lsp.NewClient(lsp.WithWorkspaceRoot(root))
		if err := lspClient.Start(ctx); err != nil {
			log.Warn("lsp client failed to start, continuing without it", "error", err)
			lspClient = nil
		} else {
			defer lspClient.Shutdown(context.Background())
		}
	}

	plugins := pluginhost.New()
	if err := plugins.LoadAll(ctx); err != nil {
		log.Warn("plugin load failed", "error", err)
	}
	defer plugins.Shutdown(context.Background())

	docSync := lspsync.NewDocSync(lspClient, log)
	ex := executor.New(st, docSync, dialogFactory(), root)

	gut := gutter.New(gutter.DefaultConfig())
	theme := render.DefaultTheme()

	var highlighter *highlight.Session
	if path, ok := firstOpenFilePath(st); ok {
		reg := highlight.NewRegistry()
		if sess, ok := reg.Open(path); ok {
			highlighter = sess
		}
	}

	resolver := keymap.NewResolver(km.Keymap())
	loop := eventloop.New(term, st, resolver, ex, gut, theme, highlighter, lspClient, plugins)
	loop.HoverFactory = func(h *lsp.Hover) state.Component { return dialog.NewHoverPopup(h) }

	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openInitialBuffers opens every file argument in order, falling back to a
// single empty scratch buffer when none were given so the editor always
// has a current buffer to operate on.
func openInitialBuffers(st *state.EditorState, files []string, log *slog.Logger) {
	opened := 0
	for _, path := range files {
		buf, err := buffer.NewFromFile(path)
		if err != nil {
			log.Warn("failed to open file, creating it empty instead", "path", path, "error", err)
			buf = buffer.NewBufferFromString("")
			buf.SetFilePath(path)
		}
		st.OpenBuffer(buf, path)
		opened++
	}
	if opened == 0 {
		st.OpenBuffer(buffer.NewBufferFromString(""), "[No Name]")
	}
}

func firstOpenFilePath(st *state.EditorState) (string, bool) {
	buf, ok := st.CurrentBuffer()
	if !ok {
		return "", false
	}
	path := buf.FilePath()
	return path, path != ""
}

func dialogFactory() *executor.DialogFactory {
	return &executor.DialogFactory{
		FilePicker: func(root string) state.Component { return dialog.NewFilePicker(root) },
		ItemPicker: func(title string, items []string, id string) state.Component {
			return dialog.NewItemPicker(title, items, id)
		},
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()
	return ctx, cancel
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (only logged; the config search path is unchanged)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand; only logged)")
	flag.StringVar(&opts.Workspace, "workspace", "", "Workspace/project directory")
	flag.StringVar(&opts.Workspace, "w", "", "Workspace/project directory (shorthand)")
	flag.StringVar(&opts.Workspace, "root", "", "Workspace/project directory (same as -workspace)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.NoLSP, "no-lsp", false, "Disable the LSP client")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Vellum - a modal terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vellum [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Vellum %s (commit %s, built %s)\n", version, commit, date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	opts.Files = flag.Args()
	if opts.Workspace == "" && len(opts.Files) > 0 {
		if abs, err := filepath.Abs(opts.Files[0]); err == nil {
			opts.Workspace = filepath.Dir(abs)
		}
	}
	return opts
}
