package gitrepo

import "errors"

var (
	// ErrObjectNotFound is returned when a blob, tree, or commit hash has no
	// corresponding object in the store.
	ErrObjectNotFound = errors.New("gitrepo: object not found")

	// ErrInvalidObjectData is returned when stored object bytes cannot be
	// decoded as the expected object type.
	ErrInvalidObjectData = errors.New("gitrepo: invalid object data")

	// ErrIO wraps unexpected failures from the underlying repository storage.
	ErrIO = errors.New("gitrepo: io error")

	// ErrOperationFailed wraps a go-git operation that failed for a reason
	// not covered by a more specific sentinel.
	ErrOperationFailed = errors.New("gitrepo: operation failed")

	// ErrRefAlreadyExists is returned by CreateRef when the ref is already
	// present.
	ErrRefAlreadyExists = errors.New("gitrepo: ref already exists")

	// ErrRefNotFound is returned when a ref lookup misses.
	ErrRefNotFound = errors.New("gitrepo: ref not found")

	// ErrConcurrentModification is returned by UpdateRef when the ref's
	// current value does not match the caller's expected previous value.
	ErrConcurrentModification = errors.New("gitrepo: ref changed concurrently")

	// ErrNoDefaultRemote is returned by DefaultPushRemote when neither the
	// current branch's remote nor a remote named "origin" is configured, and
	// wrapped by FetchRefs when the remote it was given does not exist.
	ErrNoDefaultRemote = errors.New("gitrepo: no default remote configured")
)
