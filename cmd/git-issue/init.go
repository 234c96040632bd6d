package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"git-issue.sh/core/internal/gitrepo"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "create a git-issue repository in the current directory, if one doesn't exist",
		Action: runInit,
	}
}

func runInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Root().String("repo")
	p := printer(cmd)

	if _, err := gitrepo.Open(path); err == nil {
		fmt.Println(p.Success("git-issue repository already initialized at " + path))
		return nil
	} else if !errors.Is(err, gitrepo.ErrIO) {
		return err
	}

	if _, err := gitrepo.Init(path, false); err != nil {
		return err
	}
	fmt.Println(p.Success("initialized git-issue repository at " + path))
	return nil
}
