package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/five82/gallery/internal/app"
	"github.com/five82/gallery/internal/config"
	"github.com/five82/gallery/internal/favorites"
)

// Runner holds the dependencies of the command actions.
type Runner struct {
	output   io.Writer
	colorize bool
	browse   func(context.Context, app.Options) error
}

// RunnerOpts configures a Runner. Zero values select stdout and the real TUI.
type RunnerOpts struct {
	Output io.Writer
	Color  *bool
	Browse func(context.Context, app.Options) error
}

// NewRunner creates a Runner with defaults filled in.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	colorize := isTerminal(opts.Output)
	if opts.Color != nil {
		colorize = *opts.Color
	}
	if opts.Browse == nil {
		opts.Browse = app.Run
	}
	return &Runner{output: opts.Output, colorize: colorize, browse: opts.Browse}
}

func (r *Runner) options(cmd *cli.Command) app.Options {
	return app.Options{
		ConfigPath: cmd.String("config"),
		PrefsPath:  cmd.String("prefs"),
		StorePath:  cmd.String("store"),
		LogLevel:   cmd.String("log-level"),
	}
}

// Browse starts the interactive gallery.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return fmt.Errorf("unknown command %q", cmd.Args().First())
	}
	return r.browse(ctx, r.options(cmd))
}

// FavoritesList prints one favorite id per line. A partly unreadable set
// lists what could be read and warns on stderr.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	ids, err := app.Favorites(ctx, r.options(cmd))
	if err != nil && !errors.Is(err, favorites.ErrCorrupt) {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (run \"gallery favorites clear\" to reset)\n", err)
	}
	if len(ids) == 0 {
		return r.writePlain("No favorites saved.\n")
	}
	for _, id := range ids {
		if err := r.writePlain("%s\n", id); err != nil {
			return err
		}
	}
	return nil
}

// FavoritesClear removes the saved favorites.
func (r *Runner) FavoritesClear(ctx context.Context, cmd *cli.Command) error {
	n, err := app.ClearFavorites(ctx, r.options(cmd))
	if err != nil {
		return err
	}
	return r.writePlain("Cleared %d favorite(s).\n", n)
}

// Logs prints the tail of the session log.
func (r *Runner) Logs(_ context.Context, cmd *cli.Command) error {
	lines := int(cmd.Int("lines"))
	if lines <= 0 {
		return fmt.Errorf("--lines must be positive, got %d", lines)
	}
	color := r.colorize && !cmd.Bool("no-color")
	return app.Logs(r.options(cmd), lines, cmd.String("level"), r.output, color)
}

// ConfigInit writes a default configuration file.
func (r *Runner) ConfigInit(_ context.Context, cmd *cli.Command) error {
	path, err := config.WriteDefault(cmd.String("path"), cmd.Bool("force"))
	if err != nil {
		return err
	}
	return r.writePlain("Wrote %s\n", path)
}

func (r *Runner) writePlain(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format, args...); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
