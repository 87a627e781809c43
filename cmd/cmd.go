// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// exportCommand runs the full channel export
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a channel's videos, statistics and comments",
		ArgsUsage: "[channel URL or @handle]",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "locator",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (extension follows --format)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Artifact format: xlsx, csv, json or sqlite",
			},
			&cli.IntFlag{
				Name:  "max-comments",
				Usage: "Approximate per-video comment cap (whole pages are kept)",
			},
			&cli.BoolFlag{
				Name:  "no-comments",
				Usage: "Skip fetching comments",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Action: r.Export,
	}
}

// resolveCommand prints the channel id behind a handle
func resolveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve a channel URL or @handle to its channel ID",
		ArgsUsage: "<channel URL or @handle>",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "locator",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Resolve,
	}
}

// runsCommand lists the export runs stored in a SQLite artifact
func runsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "runs",
		Usage:     "List export runs stored in a SQLite file",
		ArgsUsage: "<path>",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "path",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Runs,
	}
}

// setupCommand handles setup operations for configuration and SQLite artifacts.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write an example config.toml",
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Create a SQLite file with the export schema",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Path to the SQLite file",
						Value: "youtube_data.db",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
