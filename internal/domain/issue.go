package domain

import (
	"fmt"
	"time"
)

// Issue is the derived aggregate reconstructed by folding an issue's event
// chain. It is never persisted directly — only the events are.
type Issue struct {
	ID          uint64
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Labels      []string // insertion order, no duplicates — see DESIGN.md
	Comments    []Comment
	Assignees   []Identity // first element is the primary assignee
	CreatedBy   Identity
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FoldEvents reconstructs the Issue for issueID by applying events in order.
// events[0] must be a Created event; applying Created anywhere else is an
// error.
func FoldEvents(issueID uint64, events []Event) (Issue, error) {
	if len(events) == 0 {
		return Issue{}, fmt.Errorf("%w: issue %d has no events", ErrIssueNotFound, issueID)
	}
	if events[0].Kind != EventCreated {
		return Issue{}, fmt.Errorf("%w: first event of issue %d is %s, want created", ErrInvalidEventSequence, issueID, events[0].Kind)
	}

	issue := Issue{
		ID:          issueID,
		Title:       events[0].Title,
		Description: events[0].Description,
		Status:      StatusTodo,
		Priority:    PriorityNone,
		CreatedBy:   events[0].Author,
		CreatedAt:   events[0].Timestamp,
		UpdatedAt:   events[0].Timestamp,
	}

	for _, ev := range events[1:] {
		if err := applyEvent(&issue, ev); err != nil {
			return Issue{}, err
		}
	}
	return issue, nil
}

// applyEvent folds one non-Created event into issue. updated_at advances on
// every event.
func applyEvent(issue *Issue, ev Event) error {
	switch ev.Kind {
	case EventCreated:
		return fmt.Errorf("%w: duplicate created event on issue %d", ErrInvalidEventSequence, issue.ID)
	case EventStatusChanged:
		issue.Status = ev.NewStatus
	case EventCommentAdded:
		issue.Comments = append(issue.Comments, Comment{
			ID:        ev.CommentID,
			Content:   ev.CommentContent,
			Author:    ev.Author,
			CreatedAt: ev.Timestamp,
		})
	case EventLabelAdded:
		issue.Labels = addLabel(issue.Labels, ev.Label)
	case EventLabelRemoved:
		issue.Labels = removeLabel(issue.Labels, ev.Label)
	case EventTitleChanged:
		issue.Title = ev.NewTitle
	case EventDescriptionChanged:
		issue.Description = ev.NewDescription
	case EventAssigneeChanged:
		if ev.NewAssignee != nil {
			issue.Assignees = []Identity{*ev.NewAssignee}
		} else {
			issue.Assignees = nil
		}
	case EventAssigneesChanged:
		issue.Assignees = append([]Identity(nil), ev.NewAssignees...)
	case EventPriorityChanged:
		issue.Priority = ev.NewPriority
	case EventCreatedByChanged:
		issue.CreatedBy = ev.NewCreatedBy
	default:
		return fmt.Errorf("%w: unknown event kind %q on issue %d", ErrInvalidEventSequence, ev.Kind, issue.ID)
	}
	issue.UpdatedAt = ev.Timestamp
	return nil
}

func addLabel(labels []string, label string) []string {
	for _, l := range labels {
		if l == label {
			return labels
		}
	}
	return append(labels, label)
}

func removeLabel(labels []string, label string) []string {
	out := labels[:0:0]
	for _, l := range labels {
		if l != label {
			out = append(out, l)
		}
	}
	return out
}

// HasLabel reports whether label is currently present on the issue.
func (i Issue) HasLabel(label string) bool {
	for _, l := range i.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// PrimaryAssignee returns the first assignee, or the zero Identity and false
// if the issue has none.
func (i Issue) PrimaryAssignee() (Identity, bool) {
	if len(i.Assignees) == 0 {
		return Identity{}, false
	}
	return i.Assignees[0], true
}
