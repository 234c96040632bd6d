package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"git-issue.sh/core/internal/clifmt"
	"git-issue.sh/core/internal/config"
	tlog "git-issue.sh/core/log"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Default().Error(err.Error())
		os.Exit(1)
	}

	logger := tlog.New("git-issue", cfg.CLI.Verbose)
	slog.SetDefault(logger)
	ctx = tlog.IntoContext(ctx, logger)

	cmd := &cli.Command{
		Name:  "git-issue",
		Usage: "an offline-first issue tracker stored in the git object database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "repo",
				Usage: "repository path",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
				Value: !cfg.CLI.Color,
			},
		},
		Commands: []*cli.Command{
			initCommand(),
			createCommand(),
			showCommand(),
			listCommand(),
			statusCommand(),
			commentCommand(),
			labelCommand(),
			titleCommand(),
			describeCommand(),
			assignCommand(),
			unassignCommand(),
			priorityCommand(),
			recreateByCommand(),
			editCommand(),
			syncCommand(),
		},
		Metadata: map[string]any{"config": cfg},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, clifmt.New(!cmd.Bool("no-color")).Error(err.Error()))
		os.Exit(1)
	}
}
