// Package domain holds the value types and fold logic shared by every
// issue-tracker event: identities, priorities, statuses, comments, events,
// and the Issue aggregate they fold into.
package domain

import "fmt"

// Identity identifies the author of an event or the assignee of an issue.
// It is a plain value type: two identities are equal iff their fields are.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewIdentity(name, email string) Identity {
	return Identity{Name: name, Email: email}
}

func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

func (i Identity) IsZero() bool {
	return i.Name == "" && i.Email == ""
}

// IdentitiesEqual reports whether two ordered slices of Identity hold the
// same values in the same order.
func IdentitiesEqual(a, b []Identity) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
