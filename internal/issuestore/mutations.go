package issuestore

import (
	"fmt"
	"strings"
	"time"

	"git-issue.sh/core/internal/domain"
)

// UpdateStatus appends a StatusChanged event if to differs from the
// issue's current status; otherwise it is a no-op.
func (s *Store) UpdateStatus(issueID uint64, to domain.Status, author domain.Identity, ts time.Time) error {
	issue, err := s.GetIssue(issueID)
	if err != nil {
		return err
	}
	if issue.Status == to {
		return nil
	}

	head, err := s.headOf(issueID)
	if err != nil {
		return err
	}
	ev := domain.NewStatusChangedEvent(issue.Status, to, author, ts)
	_, err = s.append(issueID, ev, head)
	return err
}

// AddComment appends a CommentAdded event. The comment id is derived from
// the current comment count, so it is dense and sequential per issue.
func (s *Store) AddComment(issueID uint64, content string, author domain.Identity, ts time.Time) error {
	issue, err := s.GetIssue(issueID)
	if err != nil {
		return err
	}

	head, err := s.headOf(issueID)
	if err != nil {
		return err
	}
	commentID := domain.CommentID(issueID, len(issue.Comments)+1)
	ev := domain.NewCommentAddedEvent(commentID, content, author, ts)
	_, err = s.append(issueID, ev, head)
	return err
}

func normalizeLabel(label string) (string, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return "", fmt.Errorf("%w: label must not be empty", domain.ErrValidation)
	}
	if strings.ContainsAny(trimmed, " \t\n") {
		return "", fmt.Errorf("%w: label %q must not contain whitespace", domain.ErrValidation, label)
	}
	return trimmed, nil
}

// AddLabel appends a LabelAdded event unless label is already present, in
// which case it is a no-op.
func (s *Store) AddLabel(issueID uint64, label string, author domain.Identity, ts time.Time) error {
	label, err := normalizeLabel(label)
	if err != nil {
		return err
	}

	issue, err := s.GetIssue(issueID)
	if err != nil {
		return err
	}
	if issue.HasLabel(label) {
		return nil
	}

	head, err := s.headOf(issueID)
	if err != nil {
		return err
	}
	ev := domain.NewLabelAddedEvent(label, author, ts)
	_, err = s.append(issueID, ev, head)
	return err
}

// RemoveLabel appends a LabelRemoved event unless label is already absent,
// in which case it is a no-op.
func (s *Store) RemoveLabel(issueID uint64, label string, author domain.Identity, ts time.Time) error {
	label, err := normalizeLabel(label)
	if err != nil {
		return err
	}

	issue, err := s.GetIssue(issueID)
	if err != nil {
		return err
	}
	if !issue.HasLabel(label) {
		return nil
	}

	head, err := s.headOf(issueID)
	if err != nil {
		return err
	}
	ev := domain.NewLabelRemovedEvent(label, author, ts)
	_, err = s.append(issueID, ev, head)
	return err
}

// UpdateTitle appends a TitleChanged event if newTitle differs from the
// current title.
func (s *Store) UpdateTitle(issueID uint64, newTitle string, author domain.Identity, ts time.Time) error {
	if err := domain.ValidateTitle(newTitle); err != nil {
		return err
	}

	issue, err := s.GetIssue(issueID)
	if err != nil {
		return err
	}
	if issue.Title == newTitle {
		return nil
	}

	head, err := s.headOf(issueID)
	if err != nil {
		return err
	}
	ev := domain.NewTitleChangedEvent(issue.Title, newTitle, author, ts)
	_, err = s.append(issueID, ev, head)
	return err
}

// UpdateDescription appends a DescriptionChanged event if newDescription
// differs from the current description.
func (s *Store) UpdateDescription(issueID uint64, newDescription string, author domain.Identity, ts time.Time) error {
	issue, err := s.GetIssue(issueID)
	if err != nil {
		return err
	}
	if issue.Description == newDescription {
		return nil
	}

	head, err := s.headOf(issueID)
	if err != nil {
		return err
	}
	ev := domain.NewDescriptionChangedEvent(issue.Description, newDescription, author, ts)
	_, err = s.append(issueID, ev, head)
	return err
}

// UpdateAssignees diffs newAssignees against the issue's current assignee
// list by value and order (the first element is the primary assignee) and
// appends an AssigneesChanged event if they differ.
func (s *Store) UpdateAssignees(issueID uint64, newAssignees []domain.Identity, author domain.Identity, ts time.Time) error {
	issue, err := s.GetIssue(issueID)
	if err != nil {
		return err
	}
	if domain.IdentitiesEqual(issue.Assignees, newAssignees) {
		return nil
	}

	head, err := s.headOf(issueID)
	if err != nil {
		return err
	}
	ev := domain.NewAssigneesChangedEvent(issue.Assignees, newAssignees, author, ts)
	_, err = s.append(issueID, ev, head)
	return err
}

// UpdateAssignee is the single-assignee convenience wrapper (the assign/
// unassign verbs call UpdateAssignees directly): it builds the equivalent
// zero-or-one-element slice and delegates to UpdateAssignees so there is
// one code path for the fold-affecting logic.
func (s *Store) UpdateAssignee(issueID uint64, newAssignee *domain.Identity, author domain.Identity, ts time.Time) error {
	var assignees []domain.Identity
	if newAssignee != nil {
		assignees = []domain.Identity{*newAssignee}
	}
	return s.UpdateAssignees(issueID, assignees, author, ts)
}

// UpdatePriority appends a PriorityChanged event if to differs from the
// issue's current priority.
func (s *Store) UpdatePriority(issueID uint64, to domain.Priority, author domain.Identity, ts time.Time) error {
	issue, err := s.GetIssue(issueID)
	if err != nil {
		return err
	}
	if issue.Priority == to {
		return nil
	}

	head, err := s.headOf(issueID)
	if err != nil {
		return err
	}
	ev := domain.NewPriorityChangedEvent(issue.Priority, to, author, ts)
	_, err = s.append(issueID, ev, head)
	return err
}

// UpdateCreatedBy corrects the recorded creator of an issue, e.g. when
// importing issues authored elsewhere. It has no dedicated CLI verb in the
// distilled mutation set but is exposed here for programmatic use and
// backs the "recreate-by" command.
func (s *Store) UpdateCreatedBy(issueID uint64, newCreatedBy domain.Identity, author domain.Identity, ts time.Time) error {
	issue, err := s.GetIssue(issueID)
	if err != nil {
		return err
	}
	if issue.CreatedBy == newCreatedBy {
		return nil
	}

	head, err := s.headOf(issueID)
	if err != nil {
		return err
	}
	ev := domain.NewCreatedByChangedEvent(issue.CreatedBy, newCreatedBy, author, ts)
	_, err = s.append(issueID, ev, head)
	return err
}
