package domain

import "time"

// EventKind tags which variant of Event is populated. Only the fields
// relevant to Kind are meaningful; the rest are zero.
type EventKind string

const (
	EventCreated            EventKind = "created"
	EventStatusChanged      EventKind = "status_changed"
	EventCommentAdded       EventKind = "comment_added"
	EventLabelAdded         EventKind = "label_added"
	EventLabelRemoved       EventKind = "label_removed"
	EventTitleChanged       EventKind = "title_changed"
	EventDescriptionChanged EventKind = "description_changed"
	EventAssigneeChanged    EventKind = "assignee_changed"
	EventAssigneesChanged   EventKind = "assignees_changed"
	EventPriorityChanged    EventKind = "priority_changed"
	EventCreatedByChanged   EventKind = "created_by_changed"
)

// Event is the tagged union of every mutation the issue store can append.
// Old/new pairs are carried on every variant that has them for audit and
// inverse-folding purposes; replay (Fold) only ever consumes the New* side.
type Event struct {
	Kind EventKind

	Author    Identity
	Timestamp time.Time

	// Created
	Title       string
	Description string

	// StatusChanged
	OldStatus Status
	NewStatus Status

	// CommentAdded
	CommentID      string
	CommentContent string

	// LabelAdded / LabelRemoved
	Label string

	// TitleChanged
	OldTitle string
	NewTitle string

	// DescriptionChanged
	OldDescription string
	NewDescription string

	// AssigneeChanged (single-valued convenience variant)
	OldAssignee *Identity
	NewAssignee *Identity

	// AssigneesChanged (list-valued)
	OldAssignees []Identity
	NewAssignees []Identity

	// PriorityChanged
	OldPriority Priority
	NewPriority Priority

	// CreatedByChanged
	OldCreatedBy Identity
	NewCreatedBy Identity
}

func NewCreatedEvent(title, description string, author Identity, ts time.Time) Event {
	return Event{Kind: EventCreated, Title: title, Description: description, Author: author, Timestamp: ts}
}

func NewStatusChangedEvent(from, to Status, author Identity, ts time.Time) Event {
	return Event{Kind: EventStatusChanged, OldStatus: from, NewStatus: to, Author: author, Timestamp: ts}
}

func NewCommentAddedEvent(commentID, content string, author Identity, ts time.Time) Event {
	return Event{Kind: EventCommentAdded, CommentID: commentID, CommentContent: content, Author: author, Timestamp: ts}
}

func NewLabelAddedEvent(label string, author Identity, ts time.Time) Event {
	return Event{Kind: EventLabelAdded, Label: label, Author: author, Timestamp: ts}
}

func NewLabelRemovedEvent(label string, author Identity, ts time.Time) Event {
	return Event{Kind: EventLabelRemoved, Label: label, Author: author, Timestamp: ts}
}

func NewTitleChangedEvent(oldTitle, newTitle string, author Identity, ts time.Time) Event {
	return Event{Kind: EventTitleChanged, OldTitle: oldTitle, NewTitle: newTitle, Author: author, Timestamp: ts}
}

func NewDescriptionChangedEvent(oldDescription, newDescription string, author Identity, ts time.Time) Event {
	return Event{Kind: EventDescriptionChanged, OldDescription: oldDescription, NewDescription: newDescription, Author: author, Timestamp: ts}
}

func NewAssigneeChangedEvent(old, new_ *Identity, author Identity, ts time.Time) Event {
	return Event{Kind: EventAssigneeChanged, OldAssignee: old, NewAssignee: new_, Author: author, Timestamp: ts}
}

func NewAssigneesChangedEvent(old, new_ []Identity, author Identity, ts time.Time) Event {
	return Event{Kind: EventAssigneesChanged, OldAssignees: old, NewAssignees: new_, Author: author, Timestamp: ts}
}

func NewPriorityChangedEvent(old, new_ Priority, author Identity, ts time.Time) Event {
	return Event{Kind: EventPriorityChanged, OldPriority: old, NewPriority: new_, Author: author, Timestamp: ts}
}

func NewCreatedByChangedEvent(old, new_ Identity, author Identity, ts time.Time) Event {
	return Event{Kind: EventCreatedByChanged, OldCreatedBy: old, NewCreatedBy: new_, Author: author, Timestamp: ts}
}

// Summary renders the commit-message first line for this event: the variant
// name followed by a short human-readable delta.
func (e Event) Summary() string {
	switch e.Kind {
	case EventCreated:
		return "Created: " + e.Title
	case EventStatusChanged:
		return "StatusChanged: " + e.OldStatus.String() + " → " + e.NewStatus.String()
	case EventCommentAdded:
		return "CommentAdded: " + e.CommentID
	case EventLabelAdded:
		return "LabelAdded: " + e.Label
	case EventLabelRemoved:
		return "LabelRemoved: " + e.Label
	case EventTitleChanged:
		return "TitleChanged: " + e.OldTitle + " → " + e.NewTitle
	case EventDescriptionChanged:
		return "DescriptionChanged"
	case EventAssigneeChanged:
		return "AssigneeChanged: " + identityOrUnassigned(e.NewAssignee)
	case EventAssigneesChanged:
		return "AssigneesChanged"
	case EventPriorityChanged:
		return "PriorityChanged: " + e.OldPriority.String() + " → " + e.NewPriority.String()
	case EventCreatedByChanged:
		return "CreatedByChanged: " + e.NewCreatedBy.String()
	default:
		return string(e.Kind)
	}
}

func identityOrUnassigned(id *Identity) string {
	if id == nil {
		return "unassigned"
	}
	return id.Name
}
