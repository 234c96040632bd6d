package clifmt_test

import (
	"testing"
	"time"

	"git-issue.sh/core/internal/clifmt"
	"git-issue.sh/core/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSuccessErrorWarningNoColor(t *testing.T) {
	p := clifmt.New(false)
	assert.Equal(t, "✓ done", p.Success("done"))
	assert.Equal(t, "✗ failed", p.Error("failed"))
	assert.Equal(t, "! careful", p.Warning("careful"))
}

func TestCompactNoColor(t *testing.T) {
	p := clifmt.New(false)
	issue := domain.Issue{ID: 7, Title: "fix the thing", Status: domain.StatusInProgress}
	assert.Equal(t, "#7 fix the thing [IN PROGRESS]", p.Compact(issue))
}

func TestDetailedIncludesCoreFields(t *testing.T) {
	p := clifmt.New(false)
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	issue := domain.Issue{
		ID:          3,
		Title:       "title",
		Description: "desc",
		Status:      domain.StatusDone,
		Priority:    domain.PriorityHigh,
		Labels:      []string{"bug", "urgent"},
		CreatedBy:   domain.NewIdentity("Alice", "a@x"),
		CreatedAt:   ts,
		UpdatedAt:   ts,
		Assignees:   []domain.Identity{domain.NewIdentity("Bob", "b@x")},
		Comments: []domain.Comment{
			{ID: "3-1", Content: "hi", Author: domain.NewIdentity("Alice", "a@x"), CreatedAt: ts},
		},
	}

	out := p.Detailed(issue)
	assert.Contains(t, out, "Issue #3: title")
	assert.Contains(t, out, "Status: DONE")
	assert.Contains(t, out, "Priority: high")
	assert.Contains(t, out, "Created by: Alice (a@x)")
	assert.Contains(t, out, "Assigned to: Bob (b@x)")
	assert.Contains(t, out, "Labels: bug, urgent")
	assert.Contains(t, out, "Description:\ndesc")
	assert.Contains(t, out, "3-1")
	assert.Contains(t, out, "hi")
}
