package issuestore

import (
	"fmt"

	"git-issue.sh/core/internal/domain"
)

// concurrentModificationErr surfaces a ref-CAS conflict as
// domain.ErrConcurrentModification with the issue id in the message, so
// callers can match the sentinel without parsing text.
func concurrentModificationErr(issueID uint64) error {
	return fmt.Errorf("issue %d: %w", issueID, domain.ErrConcurrentModification)
}
