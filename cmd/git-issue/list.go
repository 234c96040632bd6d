package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"git-issue.sh/core/internal/domain"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list issues",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "filter by status"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "filter by priority"},
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "filter by label"},
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "include done issues"},
			&cli.BoolFlag{Name: "compact", Aliases: []string{"c"}, Usage: "one line per issue"},
		},
		Action: runList,
	}
}

func runList(ctx context.Context, cmd *cli.Command) error {
	_, store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}

	issues, err := store.ListIssues()
	if err != nil {
		return err
	}

	var statusFilter *domain.Status
	if cmd.IsSet("status") {
		s, err := domain.ParseStatus(cmd.String("status"))
		if err != nil {
			return err
		}
		statusFilter = &s
	}
	var priorityFilter *domain.Priority
	if cmd.IsSet("priority") {
		pr, err := domain.ParsePriority(cmd.String("priority"))
		if err != nil {
			return err
		}
		priorityFilter = &pr
	}
	labelFilter := cmd.String("label")

	p := printer(cmd)
	for _, issue := range issues {
		if statusFilter != nil {
			if issue.Status != *statusFilter {
				continue
			}
		} else if !cmd.Bool("all") && issue.Status == domain.StatusDone {
			continue
		}
		if priorityFilter != nil && issue.Priority != *priorityFilter {
			continue
		}
		if labelFilter != "" && !issue.HasLabel(labelFilter) {
			continue
		}

		if cmd.Bool("compact") {
			fmt.Println(p.Compact(issue))
		} else {
			fmt.Print(p.Detailed(issue))
		}
	}
	return nil
}
