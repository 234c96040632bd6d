package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func createCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "create a new issue",
		ArgsUsage: "<title>",
		Flags: append(authorFlags(), &cli.StringFlag{
			Name:    "description",
			Aliases: []string{"d"},
			Usage:   "issue description",
		}),
		Action: runCreate,
	}
}

func runCreate(ctx context.Context, cmd *cli.Command) error {
	title := cmd.Args().Get(0)
	p := printer(cmd)
	if title == "" {
		return fmt.Errorf("create requires a title")
	}

	repo, store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	author := resolveAuthor(repo, cmd)

	issue, err := store.CreateIssue(ctx, title, cmd.String("description"), author, now())
	if err != nil {
		return err
	}

	fmt.Println(p.Success(fmt.Sprintf("created issue #%d", issue.ID)))
	return nil
}
