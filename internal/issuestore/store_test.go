package issuestore_test

import (
	"context"
	"testing"
	"time"

	"git-issue.sh/core/internal/domain"
	"git-issue.sh/core/internal/gitrepo"
	"git-issue.sh/core/internal/issuestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = domain.NewIdentity("Alice", "a@x")

func newStore(t *testing.T) *issuestore.Store {
	t.Helper()
	repo, err := gitrepo.Init(t.TempDir(), true)
	require.NoError(t, err)
	return issuestore.New(repo, nil)
}

func TestCreateIssueAssignsSequentialIDs(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	ts := time.Now().UTC()

	i1, err := s.CreateIssue(ctx, "First", "d1", alice, ts)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), i1.ID)

	i2, err := s.CreateIssue(ctx, "Second", "d2", alice, ts)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), i2.ID)
}

func TestGetEventsMissingRefIsEmpty(t *testing.T) {
	s := newStore(t)
	events, err := s.GetEvents(999)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestGetIssueMissingIsNotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.GetIssue(999)
	assert.ErrorIs(t, err, domain.ErrIssueNotFound)
}

func TestMutationsAreNoOpsWhenUnchanged(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	ts := time.Now().UTC()

	issue, err := s.CreateIssue(ctx, "T", "D", alice, ts)
	require.NoError(t, err)

	require.NoError(t, s.UpdateTitle(issue.ID, "T", alice, ts))
	require.NoError(t, s.UpdateStatus(issue.ID, domain.StatusTodo, alice, ts))
	require.NoError(t, s.UpdatePriority(issue.ID, domain.PriorityNone, alice, ts))

	events, err := s.GetEvents(issue.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1, "no-op mutations must not append events")
}

func TestFullMutationLifecycle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	ts := time.Now().UTC()
	bob := domain.NewIdentity("Bob", "b@x")

	issue, err := s.CreateIssue(ctx, "Bug", "Broken", alice, ts)
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(issue.ID, domain.StatusInProgress, alice, ts))
	require.NoError(t, s.AddLabel(issue.ID, "bug", alice, ts))
	require.NoError(t, s.AddLabel(issue.ID, "bug", alice, ts)) // duplicate: no-op
	require.NoError(t, s.UpdateAssignee(issue.ID, &bob, alice, ts))
	require.NoError(t, s.UpdatePriority(issue.ID, domain.PriorityHigh, alice, ts))
	require.NoError(t, s.AddComment(issue.ID, "looking into it", bob, ts))
	require.NoError(t, s.UpdateTitle(issue.ID, "Bug: fixed", alice, ts))

	got, err := s.GetIssue(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bug: fixed", got.Title)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, []string{"bug"}, got.Labels)
	require.Len(t, got.Assignees, 1)
	assert.Equal(t, bob, got.Assignees[0])
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "1-1", got.Comments[0].ID)
}

func TestAddLabelRejectsWhitespace(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	ts := time.Now().UTC()
	issue, err := s.CreateIssue(ctx, "T", "D", alice, ts)
	require.NoError(t, err)

	err = s.AddLabel(issue.ID, "has space", alice, ts)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = s.AddLabel(issue.ID, "   ", alice, ts)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddLabelTrimsWhitespace(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	ts := time.Now().UTC()
	issue, err := s.CreateIssue(ctx, "T", "D", alice, ts)
	require.NoError(t, err)

	require.NoError(t, s.AddLabel(issue.ID, "  urgent  ", alice, ts))
	got, err := s.GetIssue(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent"}, got.Labels)
}

func TestListIssueIDsSortsAscending(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	ts := time.Now().UTC()

	for i := 0; i < 5; i++ {
		_, err := s.CreateIssue(ctx, "T", "D", alice, ts)
		require.NoError(t, err)
	}

	ids, err := s.ListIssueIDs()
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, ids)
}

func TestListIssuesReconstructsAll(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	ts := time.Now().UTC()

	_, err := s.CreateIssue(ctx, "First", "d1", alice, ts)
	require.NoError(t, err)
	_, err = s.CreateIssue(ctx, "Second", "d2", alice, ts)
	require.NoError(t, err)

	issues, err := s.ListIssues()
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "First", issues[0].Title)
	assert.Equal(t, "Second", issues[1].Title)
}

func TestUpdateCreatedByRecordsChange(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	ts := time.Now().UTC()
	bob := domain.NewIdentity("Bob", "b@x")

	issue, err := s.CreateIssue(ctx, "T", "D", alice, ts)
	require.NoError(t, err)

	require.NoError(t, s.UpdateCreatedBy(issue.ID, bob, alice, ts))
	got, err := s.GetIssue(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, bob, got.CreatedBy)
}

func TestUpdateAssigneesOrderSensitive(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	ts := time.Now().UTC()
	bob := domain.NewIdentity("Bob", "b@x")
	carol := domain.NewIdentity("Carol", "c@x")

	issue, err := s.CreateIssue(ctx, "T", "D", alice, ts)
	require.NoError(t, err)

	require.NoError(t, s.UpdateAssignees(issue.ID, []domain.Identity{bob, carol}, alice, ts))
	got, err := s.GetIssue(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Identity{bob, carol}, got.Assignees)

	// reordering is a genuine diff, not a no-op
	require.NoError(t, s.UpdateAssignees(issue.ID, []domain.Identity{carol, bob}, alice, ts))
	events, err := s.GetEvents(issue.ID)
	require.NoError(t, err)
	assert.Len(t, events, 3) // created + two assignees-changed
}
