package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show an issue's full details",
		ArgsUsage: "<id>",
		Action:    runShow,
	}
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	id, err := issueIDArg(cmd, 0)
	if err != nil {
		return err
	}

	_, store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}

	issue, err := store.GetIssue(id)
	if err != nil {
		return err
	}

	fmt.Print(printer(cmd).Detailed(issue))
	return nil
}
