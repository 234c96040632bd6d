package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"git-issue.sh/core/internal/domain"
	"git-issue.sh/core/internal/gitrepo"
	"git-issue.sh/core/internal/issuestore"
)

func assignTestApp() *cli.Command {
	return &cli.Command{
		Name: "git-issue",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "repo", Value: "."},
			&cli.BoolFlag{Name: "no-color"},
		},
		Commands: []*cli.Command{assignCommand(), unassignCommand()},
	}
}

func emails(ids []domain.Identity) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Email
	}
	return out
}

func TestAssignAddsToExistingAssigneesInsteadOfReplacing(t *testing.T) {
	dir := t.TempDir()
	repo, err := gitrepo.Init(dir, true)
	require.NoError(t, err)
	store := issuestore.New(repo, nil)
	ctx := context.Background()

	issue, err := store.CreateIssue(ctx, "T", "D", alice, now())
	require.NoError(t, err)
	require.NoError(t, store.UpdateAssignees(issue.ID, []domain.Identity{domain.NewIdentity("", "a@x")}, alice, now()))

	app := assignTestApp()
	require.NoError(t, app.Run(ctx, []string{"git-issue", "--repo", dir, "assign", fmt.Sprint(issue.ID), "b@x"}))

	updated, err := store.GetIssue(issue.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a@x", "b@x"}, emails(updated.Assignees))
}

func TestAssignSkipsAlreadyAssignedEmail(t *testing.T) {
	dir := t.TempDir()
	repo, err := gitrepo.Init(dir, true)
	require.NoError(t, err)
	store := issuestore.New(repo, nil)
	ctx := context.Background()

	issue, err := store.CreateIssue(ctx, "T", "D", alice, now())
	require.NoError(t, err)
	require.NoError(t, store.UpdateAssignees(issue.ID, []domain.Identity{domain.NewIdentity("", "a@x")}, alice, now()))

	app := assignTestApp()
	require.NoError(t, app.Run(ctx, []string{"git-issue", "--repo", dir, "assign", fmt.Sprint(issue.ID), "a@x"}))

	updated, err := store.GetIssue(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x"}, emails(updated.Assignees))
}

func TestAssignWithNoEmailsDefaultsToSelf(t *testing.T) {
	dir := t.TempDir()
	repo, err := gitrepo.Init(dir, true)
	require.NoError(t, err)
	store := issuestore.New(repo, nil)
	ctx := context.Background()

	issue, err := store.CreateIssue(ctx, "T", "D", alice, now())
	require.NoError(t, err)

	app := assignTestApp()
	require.NoError(t, app.Run(ctx, []string{
		"git-issue", "--repo", dir, "assign", fmt.Sprint(issue.ID),
		"--author-name", "Me", "--author-email", "me@x",
	}))

	updated, err := store.GetIssue(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"me@x"}, emails(updated.Assignees))
}
