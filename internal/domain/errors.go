package domain

import "errors"

// Sentinel errors for the domain and issue-store layer. Callers match these
// with errors.Is; wrapping calls attach the offending id/field with %w.
var (
	ErrIssueNotFound         = errors.New("issue not found")
	ErrInvalidEventSequence  = errors.New("invalid event sequence")
	ErrInvalidIssueID        = errors.New("invalid issue id")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrConcurrentAllocation  = errors.New("concurrent allocation exhausted retry budget")
	ErrSerialization         = errors.New("serialization error")
	ErrValidation            = errors.New("validation error")
	ErrSync                  = errors.New("sync error")
)
