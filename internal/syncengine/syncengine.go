// Package syncengine classifies local issue/meta refs against a remote and
// pushes the ones that can move safely, per the same ref-CAS discipline
// the issue store uses locally.
package syncengine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"git-issue.sh/core/internal/domain"
	"git-issue.sh/core/internal/gitrepo"
	"git-issue.sh/core/internal/issuestore"
)

// Status classifies how a local ref relates to its remote counterpart.
type Status int

const (
	// UpToDate means the local and remote oids are identical.
	UpToDate Status = iota
	// FastForward means the local ref is strictly ahead of the remote.
	FastForward
	// Behind means the local ref is strictly behind the remote.
	Behind
	// Diverged means both sides have commits the other lacks.
	Diverged
	// NewRef means the ref exists locally but not on the remote.
	NewRef
	// LocallyDeleted means the ref exists on the remote but not locally.
	LocallyDeleted
)

func (s Status) String() string {
	switch s {
	case UpToDate:
		return "up-to-date"
	case FastForward:
		return "fast-forward"
	case Behind:
		return "behind"
	case Diverged:
		return "diverged"
	case NewRef:
		return "new-ref"
	case LocallyDeleted:
		return "locally-deleted"
	default:
		return "unknown"
	}
}

// RefClassification is the outcome of comparing one ref's local and remote
// state.
type RefClassification struct {
	Ref           string
	Status        Status
	LocalHash     plumbing.Hash
	RemoteHash    plumbing.Hash
	LocalCommits  int // commits reachable locally but not remotely
	RemoteCommits int // commits reachable remotely but not locally
}

// Options configures a Sync run, mirroring the CLI's `sync` flags.
type Options struct {
	Remote            *string
	IssueIDs          []uint64
	DryRun            bool
	Force             bool // force-with-lease
	ForceWithoutLease bool
}

// Failure records a push that failed for a ref that wasn't a plain
// conflict (e.g. a transport error).
type Failure struct {
	Ref   string
	Error error
}

// Summary reports the outcome of a Sync run.
type Summary struct {
	Classifications []RefClassification
	Pushed          []string
	Skipped         []string
	Conflicts       []string
	Failed          []Failure
}

// HasConflicts reports whether any ref was left in conflict.
func (s Summary) HasConflicts() bool {
	return len(s.Conflicts) > 0
}

// Engine drives sync for one repository.
type Engine struct {
	repo  *gitrepo.Repo
	store *issuestore.Store
	auth  transport.AuthMethod
	log   *slog.Logger
}

// New returns an Engine over repo, using store to enumerate issue refs and
// auth (which may be nil) to authenticate with the remote.
func New(repo *gitrepo.Repo, store *issuestore.Store, auth transport.AuthMethod, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{repo: repo, store: store, auth: auth, log: logger}
}

// Sync resolves the remote, classifies candidate refs, and — unless
// opts.DryRun — pushes what it safely can.
func (e *Engine) Sync(ctx context.Context, opts Options) (Summary, error) {
	if opts.Force && opts.ForceWithoutLease {
		return Summary{}, fmt.Errorf("%w: cannot specify both force and force-without-lease", domain.ErrSync)
	}

	remoteName, err := e.resolveRemote(ctx, opts.Remote)
	if err != nil {
		return Summary{}, err
	}

	refs, err := e.candidateRefs(opts.IssueIDs)
	if err != nil {
		return Summary{}, err
	}

	remoteRefs, err := e.repo.FetchRefs(ctx, remoteName, e.auth)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: listing remote refs on %s: %v", domain.ErrSync, remoteName, err)
	}
	remoteHashes := make(map[string]plumbing.Hash, len(remoteRefs))
	for _, rr := range remoteRefs {
		remoteHashes[rr.Name] = rr.Hash
	}

	classifications := make([]RefClassification, 0, len(refs))
	for _, ref := range refs {
		c, err := e.classify(ctx, ref, remoteHashes)
		if err != nil {
			return Summary{}, err
		}
		classifications = append(classifications, c)
	}

	summary := Summary{Classifications: classifications}
	if opts.DryRun {
		return summary, nil
	}

	for _, c := range classifications {
		e.act(ctx, remoteName, c, opts, &summary)
	}

	if summary.HasConflicts() && !opts.Force && !opts.ForceWithoutLease {
		return summary, fmt.Errorf("%w: %d ref(s) in conflict", domain.ErrSync, len(summary.Conflicts))
	}
	return summary, nil
}

func (e *Engine) resolveRemote(ctx context.Context, requested *string) (string, error) {
	if requested != nil {
		if !e.repo.RemoteExists(*requested) {
			return "", fmt.Errorf("%w: remote %q does not exist", domain.ErrSync, *requested)
		}
		return *requested, nil
	}
	name, err := e.repo.DefaultPushRemote(ctx)
	if err != nil {
		if errors.Is(err, gitrepo.ErrNoDefaultRemote) {
			return "", fmt.Errorf("%w: no default remote configured", domain.ErrSync)
		}
		return "", err
	}
	return name, nil
}

func (e *Engine) candidateRefs(issueIDs []uint64) ([]string, error) {
	if len(issueIDs) == 0 {
		issueRefs, err := e.repo.ListRefs(issueStorePrefix)
		if err != nil {
			return nil, err
		}
		metaRefs, err := e.repo.ListRefs(issuestore.MetaRefPrefix())
		if err != nil {
			return nil, err
		}
		return append(issueRefs, metaRefs...), nil
	}

	refs := make([]string, 0, len(issueIDs))
	for _, id := range issueIDs {
		name := issuestore.IssueRefName(id)
		if _, err := e.repo.ReadRef(name); err != nil {
			if errors.Is(err, gitrepo.ErrRefNotFound) {
				return nil, fmt.Errorf("issue %d: %w", id, domain.ErrIssueNotFound)
			}
			return nil, err
		}
		refs = append(refs, name)
	}
	return refs, nil
}

const issueStorePrefix = issuestore.Namespace + "/issues/"

func (e *Engine) classify(ctx context.Context, ref string, remoteHashes map[string]plumbing.Hash) (RefClassification, error) {
	localHash, localErr := e.repo.ReadRef(ref)
	hasLocal := localErr == nil
	if localErr != nil && !errors.Is(localErr, gitrepo.ErrRefNotFound) {
		return RefClassification{}, localErr
	}

	remoteHash, hasRemote := remoteHashes[ref]

	c := RefClassification{Ref: ref, LocalHash: localHash, RemoteHash: remoteHash}

	switch {
	case hasLocal && !hasRemote:
		c.Status = NewRef
	case !hasLocal && hasRemote:
		c.Status = LocallyDeleted
	case localHash == remoteHash:
		c.Status = UpToDate
	default:
		lc, rc, err := e.repo.CompareRefs(ctx, localHash, remoteHash)
		if err != nil {
			return RefClassification{}, err
		}
		c.LocalCommits, c.RemoteCommits = lc, rc
		switch {
		case rc == 0:
			c.Status = FastForward
		case lc == 0:
			c.Status = Behind
		default:
			c.Status = Diverged
		}
	}
	return c, nil
}

func (e *Engine) act(ctx context.Context, remoteName string, c RefClassification, opts Options, summary *Summary) {
	switch c.Status {
	case UpToDate, LocallyDeleted:
		summary.Skipped = append(summary.Skipped, c.Ref)
		return
	case NewRef, FastForward:
		if err := e.repo.PushRef(ctx, remoteName, c.Ref, c.LocalHash, nil, false, e.auth); err != nil {
			summary.Failed = append(summary.Failed, Failure{Ref: c.Ref, Error: err})
			return
		}
		summary.Pushed = append(summary.Pushed, c.Ref)
	case Behind, Diverged:
		switch {
		case opts.ForceWithoutLease:
			if err := e.repo.PushRef(ctx, remoteName, c.Ref, c.LocalHash, nil, true, e.auth); err != nil {
				summary.Failed = append(summary.Failed, Failure{Ref: c.Ref, Error: err})
				return
			}
			summary.Pushed = append(summary.Pushed, c.Ref)
		case opts.Force:
			lease := c.RemoteHash
			if err := e.repo.PushRef(ctx, remoteName, c.Ref, c.LocalHash, &lease, false, e.auth); err != nil {
				summary.Failed = append(summary.Failed, Failure{Ref: c.Ref, Error: err})
				return
			}
			summary.Pushed = append(summary.Pushed, c.Ref)
		default:
			summary.Conflicts = append(summary.Conflicts, c.Ref)
		}
	}
}
