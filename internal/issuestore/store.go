// Package issuestore implements the event-sourced issue log: appending
// events as commits on a per-issue ref, replaying a ref's chain into a
// domain.Issue, and the mutation operations layered on top.
package issuestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"

	"git-issue.sh/core/internal/codec"
	"git-issue.sh/core/internal/domain"
	"git-issue.sh/core/internal/gitrepo"
	"git-issue.sh/core/internal/idalloc"
)

// Namespace is the wire-compatible ref prefix every git-issue repository
// uses. It is a package constant, not a per-repository config option: two
// repositories disagreeing on the prefix could never sync with one
// another.
const Namespace = "refs/git-issue"

// Store is the event log for one repository's issues.
type Store struct {
	repo  *gitrepo.Repo
	alloc *idalloc.Allocator
	log   *slog.Logger
}

// New returns a Store backed by repo.
func New(repo *gitrepo.Repo, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{repo: repo, alloc: idalloc.New(repo), log: logger}
}

// IssueRefName returns the ref name for issueID.
func IssueRefName(issueID uint64) string {
	return fmt.Sprintf("%s/issues/%d", Namespace, issueID)
}

// MetaRefPrefix returns the prefix under which meta refs live.
func MetaRefPrefix() string {
	return Namespace + "/meta/"
}

func issuesRefPrefix() string {
	return Namespace + "/issues/"
}

// append encodes ev, writes its commit, and CAS-updates issueRef from
// expectedParent. On a ref-CAS conflict it returns
// domain.ErrConcurrentModification identifying issueID.
func (s *Store) append(issueID uint64, ev domain.Event, expectedParent plumbing.Hash) (plumbing.Hash, error) {
	data, err := codec.Encode(ev)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	blobHash, err := s.repo.WriteBlob(data)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	treeHash, err := s.repo.WriteTree([]gitrepo.TreeEntry{
		{Name: "event.json", Mode: filemode.Regular, Hash: blobHash},
	})
	if err != nil {
		return plumbing.ZeroHash, err
	}

	var parents []plumbing.Hash
	if expectedParent != plumbing.ZeroHash {
		parents = []plumbing.Hash{expectedParent}
	}

	commitHash, err := s.repo.WriteCommit(treeHash, parents, ev.Author.Name, ev.Author.Email, ev.Timestamp, ev.Summary())
	if err != nil {
		return plumbing.ZeroHash, err
	}

	refName := IssueRefName(issueID)
	if err := s.repo.UpdateRef(refName, commitHash, expectedParent); err != nil {
		if errors.Is(err, gitrepo.ErrConcurrentModification) {
			return plumbing.ZeroHash, concurrentModificationErr(issueID)
		}
		return plumbing.ZeroHash, err
	}

	s.log.Debug("appended event", "issue", issueID, "kind", ev.Kind, "commit", commitHash.String())
	return commitHash, nil
}

// GetEvents returns issueID's event chain, oldest first. A missing ref
// yields an empty, nil-error result.
func (s *Store) GetEvents(issueID uint64) ([]domain.Event, error) {
	refName := IssueRefName(issueID)
	head, err := s.repo.ReadRef(refName)
	if err != nil {
		if errors.Is(err, gitrepo.ErrRefNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var commits []gitrepo.CommitData
	for cur := head; cur != plumbing.ZeroHash; {
		c, err := s.repo.ReadCommit(cur)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
		if len(c.ParentHashes) == 0 {
			break
		}
		cur = c.ParentHashes[0]
	}

	events := make([]domain.Event, len(commits))
	for i, c := range commits {
		entries, err := s.repo.ReadTree(c.TreeHash)
		if err != nil {
			return nil, err
		}
		if len(entries) != 1 || entries[0].Name != "event.json" {
			return nil, fmt.Errorf("%w: commit %s for issue %d has %d tree entries, want exactly event.json",
				domain.ErrInvalidEventSequence, c.Hash, issueID, len(entries))
		}

		data, err := s.repo.ReadBlob(entries[0].Hash)
		if err != nil {
			return nil, err
		}
		ev, err := codec.Decode(data)
		if err != nil {
			return nil, err
		}
		// commits is newest-first; reverse into events so oldest is first.
		events[len(commits)-1-i] = ev
	}
	return events, nil
}

// GetIssue replays issueID's event chain into a domain.Issue.
func (s *Store) GetIssue(issueID uint64) (domain.Issue, error) {
	events, err := s.GetEvents(issueID)
	if err != nil {
		return domain.Issue{}, err
	}
	return domain.FoldEvents(issueID, events)
}

// headOf returns the current head commit of issueID's ref, or ZeroHash if
// it has none yet.
func (s *Store) headOf(issueID uint64) (plumbing.Hash, error) {
	head, err := s.repo.ReadRef(IssueRefName(issueID))
	if err != nil {
		if errors.Is(err, gitrepo.ErrRefNotFound) {
			return plumbing.ZeroHash, nil
		}
		return plumbing.ZeroHash, err
	}
	return head, nil
}

// ListIssueIDs enumerates the issue refs in the namespace, ascending.
// Malformed suffixes fail the whole call with domain.ErrInvalidIssueID.
func (s *Store) ListIssueIDs() ([]uint64, error) {
	names, err := s.repo.ListRefs(issuesRefPrefix())
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(names))
	for _, name := range names {
		suffix := strings.TrimPrefix(name, issuesRefPrefix())
		id, err := strconv.ParseUint(suffix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: ref %s has non-decimal issue suffix %q", domain.ErrInvalidIssueID, name, suffix)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// ListIssues reconstructs every issue in the namespace. An issue whose
// chain fails to decode is logged and skipped rather than failing the
// whole listing.
func (s *Store) ListIssues() ([]domain.Issue, error) {
	ids, err := s.ListIssueIDs()
	if err != nil {
		return nil, err
	}

	issues := make([]domain.Issue, 0, len(ids))
	for _, id := range ids {
		issue, err := s.GetIssue(id)
		if err != nil {
			s.log.Warn("skipping unreadable issue", "issue", id, "error", err)
			continue
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// NextIssueID reports the id that CreateIssue would assign next, without
// consuming it.
func (s *Store) NextIssueID() (uint64, error) {
	return s.alloc.Peek()
}

// CreateIssue allocates a new issue id, appends its Created event, and
// returns the resulting Issue.
func (s *Store) CreateIssue(ctx context.Context, title, description string, author domain.Identity, ts time.Time) (domain.Issue, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return domain.Issue{}, err
	}
	if err := domain.ValidateIdentity(author); err != nil {
		return domain.Issue{}, err
	}

	id, err := s.alloc.Allocate(ctx)
	if err != nil {
		return domain.Issue{}, err
	}

	ev := domain.NewCreatedEvent(title, description, author, ts)
	if _, err := s.append(id, ev, plumbing.ZeroHash); err != nil {
		return domain.Issue{}, err
	}
	return s.GetIssue(id)
}
