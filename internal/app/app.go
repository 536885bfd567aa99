package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/config"
	"github.com/five82/gallery/internal/favorites"
	"github.com/five82/gallery/internal/kv"
	"github.com/five82/gallery/internal/listing"
	"github.com/five82/gallery/internal/logtail"
	"github.com/five82/gallery/internal/prefs"
	"github.com/five82/gallery/internal/state"
	"github.com/five82/gallery/internal/tabs"
	"github.com/five82/gallery/internal/ui"
)

// Options configure the gallery application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/gallery/prefs.toml
	StorePath  string // overrides store_path
	LogLevel   string // overrides log_level
}

// LoadConfig reads the config file and applies the command line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.StorePath); v != "" {
		cfg.StorePath = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return cfg, nil
}

// OpenLogger opens the session log file. The returned func closes it.
func OpenLogger(path, level string) (*log.Logger, func() error, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		Level:           lvl,
	})
	return logger, f.Close, nil
}

// Run boots the gallery TUI until the user quits or the context is
// cancelled. The favorites set is written back to the store on the way out,
// including when the UI fails.
func Run(ctx context.Context, opts Options) (err error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := OpenLogger(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := kv.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	favs, err := favorites.Load(ctx, store)
	switch {
	case errors.Is(err, favorites.ErrCorrupt):
		// the unreadable part is dropped when the set is saved on exit
		logger.Warn("stored favorites partly unreadable", "err", err, "kept", favs.Size())
	case err != nil:
		return err
	}
	saver := favorites.NewSaver(store, favs)
	defer func() {
		// the signal that ended the session has already cancelled ctx
		if ferr := saver.Flush(context.WithoutCancel(ctx)); ferr != nil {
			logger.Error("favorites not saved", "err", ferr)
			if err == nil {
				err = ferr
			}
			return
		}
		logger.Info("favorites saved", "count", favs.Size())
	}()

	var stats requestStats
	client, err := catalog.NewClient(cfg.APIBase,
		catalog.WithTimeout(cfg.Timeout),
		catalog.WithProbeRate(cfg.ProbeRate),
		catalog.WithLogger(logger),
		catalog.WithHooks(stats.hooks()),
	)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}
	defer func() {
		logger.Info("session finished", "requests", stats.started.Load(), "succeeded", stats.finished.Load())
	}()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	initial := state.TabCatalog
	if userPrefs.Tab == prefs.TabFavorites {
		initial = state.TabFavorites
	}

	session := state.NewSession(listing.DefaultTemplates(), favs)
	controller := tabs.New(session, tabs.WithLogger(logger))

	logger.Info("gallery starting", "api", cfg.APIBase, "store", cfg.StorePath, "favorites", favs.Size())

	return ui.Run(ui.Options{
		Context:    ctx,
		Fetcher:    client,
		Controller: controller,
		Logger:     logger,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		InitialTab: initial,
	})
}

// requestStats counts fetches through the client hooks. Hooks run on
// command goroutines.
type requestStats struct {
	started  atomic.Int64
	finished atomic.Int64
}

func (s *requestStats) hooks() catalog.Hooks {
	return catalog.Hooks{
		Started:  func(string, catalog.Query) { s.started.Add(1) },
		Finished: func(string, catalog.Query) { s.finished.Add(1) },
	}
}

// Favorites returns the stored favorite ids in insertion order. When the
// stored set is partly unreadable the readable ids come back together with
// an error matching favorites.ErrCorrupt.
func Favorites(ctx context.Context, opts Options) ([]catalog.ID, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	store, err := kv.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	favs, err := favorites.Load(ctx, store)
	if favs == nil {
		return nil, err
	}
	return favs.IDs(), err
}

// ClearFavorites empties the stored set and reports how many ids it held.
func ClearFavorites(ctx context.Context, opts Options) (int, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return 0, err
	}
	store, err := kv.Open(cfg.StorePath)
	if err != nil {
		return 0, fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	// An unreadable set is cleared all the same.
	favs, err := favorites.Load(ctx, store)
	if err != nil && !errors.Is(err, favorites.ErrCorrupt) {
		return 0, err
	}
	if err := store.Delete(ctx, favorites.StorageKey); err != nil {
		return 0, fmt.Errorf("clear favorites: %w", err)
	}
	return favs.Size(), nil
}

// Logs returns the last lines of the session log at or above level.
func Logs(opts Options, lines int, level string, w io.Writer, color bool) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	minLevel, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	tail, err := logtail.Read(cfg.LogPath, lines)
	if err != nil {
		return err
	}
	tail = logtail.Filter(tail, minLevel)
	if color {
		tail = logtail.ColorizeLines(tail)
	}
	for _, line := range tail {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
