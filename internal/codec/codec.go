// Package codec maps domain.Event values to and from the canonical
// event.json form stored in each commit's tree.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"git-issue.sh/core/internal/domain"
)

// wireIdentity mirrors domain.Identity for JSON purposes; kept distinct so
// that a future field never silently changes the wire format.
type wireIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toWire(id domain.Identity) wireIdentity {
	return wireIdentity{Name: id.Name, Email: id.Email}
}

func (w wireIdentity) toDomain() domain.Identity {
	return domain.NewIdentity(w.Name, w.Email)
}

func toWireIdentities(ids []domain.Identity) []wireIdentity {
	if ids == nil {
		return nil
	}
	out := make([]wireIdentity, len(ids))
	for i, id := range ids {
		out[i] = toWire(id)
	}
	return out
}

func toDomainIdentities(ids []wireIdentity) []domain.Identity {
	if ids == nil {
		return nil
	}
	out := make([]domain.Identity, len(ids))
	for i, id := range ids {
		out[i] = id.toDomain()
	}
	return out
}

// wireEvent is the canonical JSON shape for event.json: a discriminator
// field "kind" plus the union of the fields every variant might need.
// kind, author, timestamp, old_assignee and new_assignee are always
// written (the assignees as null when absent); every other field is
// omitted when empty, and Decode reads an omitted field as its zero value.
type wireEvent struct {
	Kind      string       `json:"kind"`
	Author    wireIdentity `json:"author"`
	Timestamp time.Time    `json:"timestamp"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	OldStatus string `json:"old_status,omitempty"`
	NewStatus string `json:"new_status,omitempty"`

	CommentID      string `json:"comment_id,omitempty"`
	CommentContent string `json:"comment_content,omitempty"`

	Label string `json:"label,omitempty"`

	OldTitle string `json:"old_title,omitempty"`
	NewTitle string `json:"new_title,omitempty"`

	OldDescription string `json:"old_description,omitempty"`
	NewDescription string `json:"new_description,omitempty"`

	OldAssignee *wireIdentity `json:"old_assignee"`
	NewAssignee *wireIdentity `json:"new_assignee"`

	OldAssignees []wireIdentity `json:"old_assignees,omitempty"`
	NewAssignees []wireIdentity `json:"new_assignees,omitempty"`

	OldPriority string `json:"old_priority,omitempty"`
	NewPriority string `json:"new_priority,omitempty"`

	OldCreatedBy *wireIdentity `json:"old_created_by,omitempty"`
	NewCreatedBy *wireIdentity `json:"new_created_by,omitempty"`
}

// Encode marshals ev into the canonical event.json bytes.
func Encode(ev domain.Event) ([]byte, error) {
	w := wireEvent{
		Kind:      string(ev.Kind),
		Author:    toWire(ev.Author),
		Timestamp: ev.Timestamp.UTC(),

		Title:       ev.Title,
		Description: ev.Description,

		OldStatus: ev.OldStatus.String(),
		NewStatus: ev.NewStatus.String(),

		CommentID:      ev.CommentID,
		CommentContent: ev.CommentContent,

		Label: ev.Label,

		OldTitle: ev.OldTitle,
		NewTitle: ev.NewTitle,

		OldDescription: ev.OldDescription,
		NewDescription: ev.NewDescription,

		OldAssignees: toWireIdentities(ev.OldAssignees),
		NewAssignees: toWireIdentities(ev.NewAssignees),

		OldPriority: ev.OldPriority.String(),
		NewPriority: ev.NewPriority.String(),
	}
	if ev.OldAssignee != nil {
		wi := toWire(*ev.OldAssignee)
		w.OldAssignee = &wi
	}
	if ev.NewAssignee != nil {
		wi := toWire(*ev.NewAssignee)
		w.NewAssignee = &wi
	}
	if ev.Kind == domain.EventCreatedByChanged {
		oc := toWire(ev.OldCreatedBy)
		nc := toWire(ev.NewCreatedBy)
		w.OldCreatedBy = &oc
		w.NewCreatedBy = &nc
	}

	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %s event: %v", domain.ErrSerialization, ev.Kind, err)
	}
	return append(data, '\n'), nil
}

// Decode parses the canonical event.json bytes back into a domain.Event.
// Unknown kinds fail with domain.ErrInvalidEventSequence.
func Decode(data []byte) (domain.Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Event{}, fmt.Errorf("%w: decoding event.json: %v", domain.ErrSerialization, err)
	}

	ev := domain.Event{
		Kind:        domain.EventKind(w.Kind),
		Author:      w.Author.toDomain(),
		Timestamp:   w.Timestamp.UTC(),
		Title:       w.Title,
		Description: w.Description,

		CommentID:      w.CommentID,
		CommentContent: w.CommentContent,

		Label: w.Label,

		OldTitle: w.OldTitle,
		NewTitle: w.NewTitle,

		OldDescription: w.OldDescription,
		NewDescription: w.NewDescription,

		OldAssignees: toDomainIdentities(w.OldAssignees),
		NewAssignees: toDomainIdentities(w.NewAssignees),
	}

	var err error
	if ev.OldStatus, err = domain.ParseStatus(orDefault(w.OldStatus, "todo")); err != nil {
		return domain.Event{}, fmt.Errorf("%w: old_status: %v", domain.ErrSerialization, err)
	}
	if ev.NewStatus, err = domain.ParseStatus(orDefault(w.NewStatus, "todo")); err != nil {
		return domain.Event{}, fmt.Errorf("%w: new_status: %v", domain.ErrSerialization, err)
	}
	if ev.OldPriority, err = domain.ParsePriority(orDefault(w.OldPriority, "none")); err != nil {
		return domain.Event{}, fmt.Errorf("%w: old_priority: %v", domain.ErrSerialization, err)
	}
	if ev.NewPriority, err = domain.ParsePriority(orDefault(w.NewPriority, "none")); err != nil {
		return domain.Event{}, fmt.Errorf("%w: new_priority: %v", domain.ErrSerialization, err)
	}

	if w.OldAssignee != nil {
		id := w.OldAssignee.toDomain()
		ev.OldAssignee = &id
	}
	if w.NewAssignee != nil {
		id := w.NewAssignee.toDomain()
		ev.NewAssignee = &id
	}
	if w.OldCreatedBy != nil {
		ev.OldCreatedBy = w.OldCreatedBy.toDomain()
	}
	if w.NewCreatedBy != nil {
		ev.NewCreatedBy = w.NewCreatedBy.toDomain()
	}

	switch ev.Kind {
	case domain.EventCreated, domain.EventStatusChanged, domain.EventCommentAdded,
		domain.EventLabelAdded, domain.EventLabelRemoved, domain.EventTitleChanged,
		domain.EventDescriptionChanged, domain.EventAssigneeChanged, domain.EventAssigneesChanged,
		domain.EventPriorityChanged, domain.EventCreatedByChanged:
		// known variant
	default:
		return domain.Event{}, fmt.Errorf("%w: unknown event kind %q", domain.ErrInvalidEventSequence, w.Kind)
	}

	return ev, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
