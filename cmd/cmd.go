// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file (default: config.toml)",
	}
}

func setlistFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     "setlist",
		Aliases:  []string{"s"},
		Usage:    "Setlist ID",
		Required: true,
	}
}

func songFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     "song",
		Usage:    "Song ID",
		Required: true,
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve the setlist HTTP API until interrupted",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing, then initialize the database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// membersCommand manages the ordered songs of a setlist through a running server
func membersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "members",
		Aliases: []string{"m"},
		Usage:   "List, add, remove, and reorder the songs of a setlist",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show the songs of a setlist in order",
				Flags: []cli.Flag{
					setlistFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MembersList,
			},
			{
				Name:   "add",
				Usage:  "Append a song to the end of a setlist",
				Flags:  []cli.Flag{setlistFlag(), songFlag()},
				Action: r.MembersAdd,
			},
			{
				Name:   "remove",
				Usage:  "Remove a song from a setlist",
				Flags:  []cli.Flag{setlistFlag(), songFlag()},
				Action: r.MembersRemove,
			},
			{
				Name:  "reorder",
				Usage: "Replace the order of a setlist with a complete list of song IDs",
				Flags: []cli.Flag{
					setlistFlag(),
					&cli.StringFlag{
						Name:     "order",
						Usage:    "Comma-separated song IDs, first to last (e.g. 3,1,2)",
						Required: true,
					},
				},
				Action: r.MembersReorder,
			},
			{
				Name:  "move",
				Usage: "Move the song at one position to another and submit the resulting order",
				Flags: []cli.Flag{
					setlistFlag(),
					&cli.IntFlag{
						Name:     "from",
						Usage:    "Current position (zero-based)",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "to",
						Usage:    "Target position (zero-based)",
						Required: true,
					},
				},
				Action: r.MembersMove,
			},
			{
				Name:  "export",
				Usage: "Write a setlist to a CSV, Markdown lyric sheet, or text file",
				Flags: []cli.Flag{
					setlistFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, or text",
						Value:   "markdown",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: setlist-<id>.<ext>)",
					},
				},
				Action: r.MembersExport,
			},
		},
	}
}

// backupCommand exports many setlists at once into a directory
func backupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Export every setlist (or those given with --setlist) into a directory with a manifest",
		Flags: []cli.Flag{
			&cli.Int64SliceFlag{
				Name:    "setlist",
				Aliases: []string{"s"},
				Usage:   "Setlist ID to export (repeatable, default: all setlists)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: csv, markdown, or text",
				Value:   "markdown",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Output directory (default: setlists_export_<epoch>)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of concurrent writers (max 10)",
				Value: 4,
			},
			&cli.IntFlag{
				Name:  "rate",
				Usage: "Setlist fetches per second",
				Value: 5,
			},
		},
		Action: r.Backup,
	}
}

// tuiCommand returns the top-level TUI command for interactive reordering.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Reorder a setlist interactively",
		Flags:   []cli.Flag{setlistFlag()},
		Action:  r.TUI,
	}
}
