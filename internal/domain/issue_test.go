package domain_test

import (
	"testing"
	"time"

	"git-issue.sh/core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = domain.NewIdentity("Alice", "a@x")

func TestFoldEventsRequiresCreatedFirst(t *testing.T) {
	ts := time.Now().UTC()
	_, err := domain.FoldEvents(1, []domain.Event{
		domain.NewStatusChangedEvent(domain.StatusTodo, domain.StatusDone, alice, ts),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEventSequence)
}

func TestFoldEventsEmpty(t *testing.T) {
	_, err := domain.FoldEvents(1, nil)
	assert.ErrorIs(t, err, domain.ErrIssueNotFound)
}

func TestFoldEventsDuplicateCreated(t *testing.T) {
	ts := time.Now().UTC()
	_, err := domain.FoldEvents(1, []domain.Event{
		domain.NewCreatedEvent("T1", "D", alice, ts),
		domain.NewCreatedEvent("T2", "D2", alice, ts),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEventSequence)
}

func TestFoldEventsScenario1(t *testing.T) {
	ts := time.Now().UTC()
	issue, err := domain.FoldEvents(1, []domain.Event{
		domain.NewCreatedEvent("T1", "D", alice, ts),
	})
	require.NoError(t, err)
	assert.Equal(t, "T1", issue.Title)
	assert.Equal(t, domain.StatusTodo, issue.Status)
	assert.Equal(t, domain.PriorityNone, issue.Priority)
	assert.Empty(t, issue.Labels)
	assert.Empty(t, issue.Assignees)
	assert.Equal(t, alice, issue.CreatedBy)
	assert.Equal(t, ts, issue.CreatedAt)
	assert.Equal(t, ts, issue.UpdatedAt)
}

func TestFoldEventsLabelAddRemove(t *testing.T) {
	ts := time.Now().UTC()
	events := []domain.Event{
		domain.NewCreatedEvent("T", "D", alice, ts),
		domain.NewLabelAddedEvent("bug", alice, ts),
		domain.NewLabelAddedEvent("urgent", alice, ts),
		domain.NewLabelRemovedEvent("bug", alice, ts),
	}
	issue, err := domain.FoldEvents(1, events)
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent"}, issue.Labels)
}

func TestFoldEventsAssigneesChangedWins(t *testing.T) {
	ts := time.Now().UTC()
	bob := domain.NewIdentity("Bob", "b@x")
	carol := domain.NewIdentity("Carol", "c@x")
	events := []domain.Event{
		domain.NewCreatedEvent("T", "D", alice, ts),
		domain.NewAssigneeChangedEvent(nil, &bob, alice, ts),
		domain.NewAssigneesChangedEvent([]domain.Identity{bob}, []domain.Identity{bob, carol}, alice, ts),
	}
	issue, err := domain.FoldEvents(1, events)
	require.NoError(t, err)
	assert.Equal(t, []domain.Identity{bob, carol}, issue.Assignees)
	primary, ok := issue.PrimaryAssignee()
	assert.True(t, ok)
	assert.Equal(t, bob, primary)
}

func TestCommentIDsAreDenseAndSequential(t *testing.T) {
	ts := time.Now().UTC()
	events := []domain.Event{
		domain.NewCreatedEvent("T", "D", alice, ts),
		domain.NewCommentAddedEvent(domain.CommentID(1, 1), "first", alice, ts),
		domain.NewCommentAddedEvent(domain.CommentID(1, 2), "second", alice, ts),
	}
	issue, err := domain.FoldEvents(1, events)
	require.NoError(t, err)
	require.Len(t, issue.Comments, 2)
	assert.Equal(t, "1-1", issue.Comments[0].ID)
	assert.Equal(t, "1-2", issue.Comments[1].ID)
}
