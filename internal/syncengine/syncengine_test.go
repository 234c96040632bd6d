package syncengine_test

import (
	"context"
	"testing"
	"time"

	"git-issue.sh/core/internal/domain"
	"git-issue.sh/core/internal/gitrepo"
	"git-issue.sh/core/internal/issuestore"
	"git-issue.sh/core/internal/syncengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = domain.NewIdentity("Alice", "a@x")

func newLinkedRepos(t *testing.T) (local *gitrepo.Repo, remote *gitrepo.Repo) {
	t.Helper()
	local, err := gitrepo.Init(t.TempDir(), true)
	require.NoError(t, err)
	remote, err = gitrepo.Init(t.TempDir(), true)
	require.NoError(t, err)
	require.NoError(t, local.AddRemote("origin", remote.Path()))
	return local, remote
}

func TestSyncRejectsBothForceFlags(t *testing.T) {
	local, _ := newLinkedRepos(t)
	store := issuestore.New(local, nil)
	engine := syncengine.New(local, store, nil, nil)

	_, err := engine.Sync(context.Background(), syncengine.Options{Force: true, ForceWithoutLease: true})
	assert.ErrorIs(t, err, domain.ErrSync)
}

func TestSyncNoDefaultRemote(t *testing.T) {
	local, err := gitrepo.Init(t.TempDir(), true)
	require.NoError(t, err)
	store := issuestore.New(local, nil)
	engine := syncengine.New(local, store, nil, nil)

	_, err = engine.Sync(context.Background(), syncengine.Options{})
	assert.ErrorIs(t, err, domain.ErrSync)
}

func TestSyncNewRefPushesAndReportsPushed(t *testing.T) {
	local, remote := newLinkedRepos(t)
	store := issuestore.New(local, nil)
	ctx := context.Background()
	ts := time.Now().UTC()

	issue, err := store.CreateIssue(ctx, "T1", "D", alice, ts)
	require.NoError(t, err)

	engine := syncengine.New(local, store, nil, nil)
	summary, err := engine.Sync(ctx, syncengine.Options{})
	require.NoError(t, err)

	assert.Contains(t, summary.Pushed, issuestore.IssueRefName(issue.ID))
	assert.Empty(t, summary.Conflicts)
	assert.Empty(t, summary.Failed)

	remoteHash, err := remote.ReadRef(issuestore.IssueRefName(issue.ID))
	require.NoError(t, err)
	localHash, err := local.ReadRef(issuestore.IssueRefName(issue.ID))
	require.NoError(t, err)
	assert.Equal(t, localHash, remoteHash)
}

func TestSyncDryRunClassifiesWithoutPushing(t *testing.T) {
	local, _ := newLinkedRepos(t)
	store := issuestore.New(local, nil)
	ctx := context.Background()
	ts := time.Now().UTC()

	issue, err := store.CreateIssue(ctx, "T1", "D", alice, ts)
	require.NoError(t, err)

	engine := syncengine.New(local, store, nil, nil)
	summary, err := engine.Sync(ctx, syncengine.Options{DryRun: true})
	require.NoError(t, err)

	// the issue ref plus the id-counter meta ref; issue refs come first
	require.Len(t, summary.Classifications, 2)
	assert.Equal(t, syncengine.NewRef, summary.Classifications[0].Status)
	assert.Equal(t, issuestore.IssueRefName(issue.ID), summary.Classifications[0].Ref)
	assert.Empty(t, summary.Pushed)
}

func TestSyncUpToDateAfterPush(t *testing.T) {
	local, _ := newLinkedRepos(t)
	store := issuestore.New(local, nil)
	ctx := context.Background()
	ts := time.Now().UTC()

	_, err := store.CreateIssue(ctx, "T1", "D", alice, ts)
	require.NoError(t, err)

	engine := syncengine.New(local, store, nil, nil)
	_, err = engine.Sync(ctx, syncengine.Options{})
	require.NoError(t, err)

	summary, err := engine.Sync(ctx, syncengine.Options{DryRun: true})
	require.NoError(t, err)
	// the issue ref plus the id-counter meta ref; issue refs come first
	require.Len(t, summary.Classifications, 2)
	assert.Equal(t, syncengine.UpToDate, summary.Classifications[0].Status)
}

func TestSyncDivergedRequiresForce(t *testing.T) {
	local, remote := newLinkedRepos(t)
	store := issuestore.New(local, nil)
	ctx := context.Background()
	ts := time.Now().UTC()

	issue, err := store.CreateIssue(ctx, "T1", "D", alice, ts)
	require.NoError(t, err)

	engine := syncengine.New(local, store, nil, nil)
	_, err = engine.Sync(ctx, syncengine.Options{})
	require.NoError(t, err)

	// diverge: append directly on the remote's copy of the ref
	remoteStore := issuestore.New(remote, nil)
	require.NoError(t, remoteStore.UpdateTitle(issue.ID, "remote title", alice, ts))

	// and diverge locally too
	require.NoError(t, store.UpdateTitle(issue.ID, "local title", alice, ts))

	summary, err := engine.Sync(ctx, syncengine.Options{})
	assert.ErrorIs(t, err, domain.ErrSync)
	assert.Contains(t, summary.Conflicts, issuestore.IssueRefName(issue.ID))

	summaryForced, err := engine.Sync(ctx, syncengine.Options{Force: true})
	require.NoError(t, err)
	assert.Contains(t, summaryForced.Pushed, issuestore.IssueRefName(issue.ID))
}

func TestSyncRequestedIssueIDsMustExistLocally(t *testing.T) {
	local, _ := newLinkedRepos(t)
	store := issuestore.New(local, nil)
	engine := syncengine.New(local, store, nil, nil)

	_, err := engine.Sync(context.Background(), syncengine.Options{IssueIDs: []uint64{42}})
	assert.ErrorIs(t, err, domain.ErrIssueNotFound)
}
