package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/scribble/internal/app"
	"github.com/marcus/scribble/internal/bulk"
	"github.com/marcus/scribble/internal/config"
	"github.com/marcus/scribble/internal/keymap"
	"github.com/marcus/scribble/internal/port"
	"github.com/marcus/scribble/internal/repo"
	"github.com/marcus/scribble/internal/store"
	"github.com/marcus/scribble/internal/styles"
	"github.com/marcus/scribble/internal/undo"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	dbPath       = flag.String("db", "", "path to the notes database")
	importPath   = flag.String("import", "notes_import.json", "file read by the import command")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("scribble version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flag beats config beats platform default.
	path := cfg.Store.Path
	if *dbPath != "" {
		path = *dbPath
	}
	if path == "" {
		path = store.DefaultPath()
	}

	st, err := store.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	notes, err := st.LoadNotes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load notes: %v\n", err)
		os.Exit(1)
	}

	// Config sets the theme; a previously saved preference wins.
	theme := cfg.UI.Theme
	if saved, err := st.Theme(); err == nil && saved != "" {
		theme = saved
	}
	styles.ApplyTheme(theme)

	repository := repo.New(st, notes, logger)
	coordinator := bulk.New(repository, undo.NewBuffer())

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	var transcript port.TranscriptSource
	if cfg.Transcriber.Command != "" {
		transcript = &port.ExecSource{
			Command: cfg.Transcriber.Command,
			Args:    cfg.Transcriber.Args,
		}
	}

	// Hot reload of the config file. Best effort: a missing directory just
	// means no live updates.
	done := make(chan struct{})
	defer close(done)
	var updates <-chan *config.Config
	watchPath := *configPath
	if watchPath == "" {
		watchPath = config.ConfigPath()
	}
	if watchPath != "" {
		if ch, err := config.Watch(watchPath, logger, done); err == nil {
			updates = ch
		} else {
			logger.Warn("config watch unavailable", "path", watchPath, "err", err)
		}
	}

	model := app.New(app.Options{
		Config:        cfg,
		Repo:          repository,
		Coordinator:   coordinator,
		ThemeStore:    st,
		Keymap:        km,
		Clipboard:     port.SystemClipboard{},
		Transcript:    transcript,
		Picker:        port.StaticPicker{Path: *importPath},
		ConfigUpdates: updates,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}

	if err := repository.Flush(); err != nil {
		logger.Error("final flush failed", "err", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}

	return "devel"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: scribble [options]\n\n")
		fmt.Fprintf(os.Stderr, "A TUI for personal notes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
