package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r := NewRunner(RunnerOpts{})
	if err := rootCommand(r).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "gallery: %v\n", err)
		return 1
	}
	return 0
}

func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "gallery",
		Usage:   "Browse users, albums and photos with favorites",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (default ~/.config/gallery/config.toml)",
			},
			&cli.StringFlag{
				Name:  "prefs",
				Usage: "Path to UI preferences file (default ~/.config/gallery/prefs.toml)",
			},
			&cli.StringFlag{
				Name:  "store",
				Usage: "Override the favorites database path",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the session log level (debug, info, warn, error)",
			},
		},
		Action: r.Browse,
		Commands: []*cli.Command{
			favoritesCommand(r),
			logsCommand(r),
			configCommand(r),
		},
	}
}

func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Inspect the saved favorites",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Print the favorite photo ids in the order they were added",
				Action: r.FavoritesList,
			},
			{
				Name:   "clear",
				Usage:  "Remove every saved favorite",
				Action: r.FavoritesClear,
			},
		},
	}
}

func logsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Print the tail of the session log",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "lines",
				Aliases: []string{"n"},
				Usage:   "Number of lines to read from the end of the log",
				Value:   50,
			},
			&cli.StringFlag{
				Name:  "level",
				Usage: "Minimum level to show",
				Value: "debug",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Action: r.Logs,
	}
}

func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration helpers",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Where to write the file (default ~/.config/gallery/config.toml)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
