package domain

import (
	"fmt"
	"time"
)

// Comment is an append-only record attached to an issue. Its Id is
// "{issue_id}-{seq}" where seq is 1-based and dense within the issue.
type Comment struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Author    Identity `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentID formats the dense, 1-based comment identifier for issueID at
// sequence seq.
func CommentID(issueID uint64, seq int) string {
	return fmt.Sprintf("%d-%d", issueID, seq)
}
