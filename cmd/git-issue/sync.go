package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"git-issue.sh/core/internal/syncengine"
	tlog "git-issue.sh/core/log"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "push local issue/meta refs to a remote",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "remote", Usage: "remote to sync with (defaults to the current branch's remote, else origin)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "classify refs without pushing"},
			&cli.BoolFlag{Name: "force", Usage: "force-with-lease push for diverged/behind refs"},
			&cli.BoolFlag{Name: "force-without-lease", Usage: "unconditional force push for diverged/behind refs"},
			&cli.StringFlag{Name: "issues", Usage: "comma-separated issue ids to restrict sync to"},
		},
		Action: runSync,
	}
}

func runSync(ctx context.Context, cmd *cli.Command) error {
	repo, store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}

	var remote *string
	if cmd.IsSet("remote") {
		v := cmd.String("remote")
		remote = &v
	}

	var issueIDs []uint64
	if raw := cmd.String("issues"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := parseIssueID(strings.TrimSpace(part))
			if err != nil {
				return err
			}
			issueIDs = append(issueIDs, id)
		}
	}

	logger := tlog.SubLogger(tlog.FromContext(ctx), cmd.Name)
	engine := syncengine.New(repo, store, nil, logger)
	summary, err := engine.Sync(ctx, syncengine.Options{
		Remote:            remote,
		IssueIDs:          issueIDs,
		DryRun:            cmd.Bool("dry-run"),
		Force:             cmd.Bool("force"),
		ForceWithoutLease: cmd.Bool("force-without-lease"),
	})

	p := printer(cmd)
	for _, c := range summary.Classifications {
		fmt.Printf("%s: %s\n", c.Ref, c.Status)
	}
	for _, ref := range summary.Pushed {
		fmt.Println(p.Success("pushed " + ref))
	}
	for _, ref := range summary.Skipped {
		fmt.Println(ref + ": skipped")
	}
	for _, ref := range summary.Conflicts {
		fmt.Println(p.Warning(ref + ": conflicts with remote, rerun with --force or --force-without-lease"))
	}
	for _, f := range summary.Failed {
		fmt.Println(p.Error(fmt.Sprintf("%s: %v", f.Ref, f.Error)))
	}

	if err != nil {
		return err
	}
	return nil
}
