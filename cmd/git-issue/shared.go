package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"git-issue.sh/core/internal/authoring"
	"git-issue.sh/core/internal/clifmt"
	"git-issue.sh/core/internal/config"
	"git-issue.sh/core/internal/domain"
	"git-issue.sh/core/internal/gitrepo"
	"git-issue.sh/core/internal/issuestore"
	tlog "git-issue.sh/core/log"
)

// configFromCmd returns the Config loaded at process start, or an empty one
// if cmd's root carries none (as in tests that build a command tree without
// going through main).
func configFromCmd(cmd *cli.Command) *config.Config {
	if v, ok := cmd.Root().Metadata["config"].(*config.Config); ok && v != nil {
		return v
	}
	return &config.Config{}
}

func openRepo(cmd *cli.Command) (*gitrepo.Repo, error) {
	path := cmd.Root().String("repo")
	repo, err := gitrepo.Open(path)
	if err != nil {
		if errors.Is(err, gitrepo.ErrIO) {
			return nil, fmt.Errorf("no git-issue repository at %s (run `git-issue init` first)", path)
		}
		return nil, err
	}
	return repo, nil
}

func openStore(ctx context.Context, cmd *cli.Command) (*gitrepo.Repo, *issuestore.Store, error) {
	repo, err := openRepo(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := tlog.SubLogger(tlog.FromContext(ctx), cmd.Name)
	return repo, issuestore.New(repo, logger), nil
}

func printer(cmd *cli.Command) clifmt.Printer {
	return clifmt.New(!cmd.Root().Bool("no-color"))
}

func optionalString(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.String(name)
	return &v
}

func resolveAuthor(repo *gitrepo.Repo, cmd *cli.Command) domain.Identity {
	return authoring.Resolve(repo, authoring.OSEnv{}, optionalString(cmd, "author-name"), optionalString(cmd, "author-email"))
}

func authorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "author-name", Usage: "author name (defaults to $GIT_AUTHOR_NAME, then git config)"},
		&cli.StringFlag{Name: "author-email", Usage: "author email (defaults to $GIT_AUTHOR_EMAIL, then git config)"},
	}
}

func parseIssueID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a valid issue id", domain.ErrInvalidIssueID, s)
	}
	return id, nil
}

func issueIDArg(cmd *cli.Command, pos int) (uint64, error) {
	raw := cmd.Args().Get(pos)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing issue id argument", domain.ErrValidation)
	}
	return parseIssueID(raw)
}

func now() time.Time {
	return time.Now().UTC()
}
