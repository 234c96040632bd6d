package gitrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// DefaultRemoteName is the conventional remote git-issue syncs against.
const DefaultRemoteName = "origin"

// DefaultPushRemote returns the remote to sync against: the current branch's
// branch.<name>.remote if one is configured, otherwise DefaultRemoteName if
// it exists, otherwise ErrNoDefaultRemote.
func (r *Repo) DefaultPushRemote(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if name, ok := r.currentBranchRemote(); ok {
		return name, nil
	}

	if _, err := r.repo.Remote(DefaultRemoteName); err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", ErrNoDefaultRemote
		}
		return "", fmt.Errorf("%w: resolving default remote: %v", ErrIO, err)
	}
	return DefaultRemoteName, nil
}

// currentBranchRemote reads branch.<name>.remote for the branch HEAD
// currently points at, if any.
func (r *Repo) currentBranchRemote() (string, bool) {
	head, err := r.repo.Head()
	if err != nil || !head.Name().IsBranch() {
		return "", false
	}
	branch := head.Name().Short()

	cfg, err := r.repo.Config()
	if err != nil {
		return "", false
	}
	b, ok := cfg.Branches[branch]
	if !ok || b.Remote == "" {
		return "", false
	}
	return b.Remote, true
}

// RemoteExists reports whether name is a configured remote.
func (r *Repo) RemoteExists(name string) bool {
	_, err := r.repo.Remote(name)
	return err == nil
}

// AddRemote configures a new remote named name pointing at url.
func (r *Repo) AddRemote(name, url string) error {
	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if err != nil {
		return fmt.Errorf("%w: adding remote %s: %v", ErrOperationFailed, name, err)
	}
	return nil
}

// RemoteRef pairs a ref name with the hash it points to on a remote.
type RemoteRef struct {
	Name string
	Hash plumbing.Hash
}

// FetchRefs lists the refs currently advertised by remoteName without
// fetching any objects or writing any local refs, so a comparison against
// local state never itself mutates that state.
func (r *Repo) FetchRefs(ctx context.Context, remoteName string, auth transport.AuthMethod) ([]RemoteRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	remote, err := r.repo.Remote(remoteName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return nil, fmt.Errorf("%w: remote %s", ErrNoDefaultRemote, remoteName)
		}
		return nil, fmt.Errorf("%w: resolving remote %s: %v", ErrIO, remoteName, err)
	}

	refs, err := remote.List(&git.ListOptions{Auth: auth})
	if err != nil {
		return nil, fmt.Errorf("%w: listing refs on %s: %v", ErrOperationFailed, remoteName, err)
	}

	out := make([]RemoteRef, 0, len(refs))
	for _, ref := range refs {
		if ref.Type() != plumbing.HashReference {
			continue
		}
		out = append(out, RemoteRef{Name: string(ref.Name()), Hash: ref.Hash()})
	}
	return out, nil
}

// PushRef pushes the local ref name (which must currently point at
// localHash) to remoteName. A plain push (lease nil, force false) only
// succeeds if it is a fast-forward. If lease is non-nil, the underlying
// push is forced but go-git rejects it unless the remote's current value
// for name equals *lease (force-with-lease). force performs an
// unconditional force push, bypassing the lease check entirely.
func (r *Repo) PushRef(ctx context.Context, remoteName, name string, localHash plumbing.Hash, lease *plumbing.Hash, force bool, auth transport.AuthMethod) error {
	forceUnderlying := force || lease != nil

	spec := name + ":" + name
	if forceUnderlying {
		spec = "+" + spec
	}

	opts := &git.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{config.RefSpec(spec)},
		Auth:       auth,
		Force:      forceUnderlying,
	}
	if !force && lease != nil {
		opts.RequireRemoteRefs = []config.RefSpec{
			config.RefSpec(lease.String() + ":" + name),
		}
	}

	if err := r.repo.PushContext(ctx, opts); err != nil {
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			return nil
		}
		return fmt.Errorf("%w: pushing %s to %s: %v", ErrOperationFailed, name, remoteName, err)
	}
	return nil
}

// CompareRefs walks the commit ancestry of a and b and reports how many
// commits are reachable from a but not b (aheadOfB) and vice versa
// (behindB). Equal hashes short-circuit to (0, 0).
func (r *Repo) CompareRefs(ctx context.Context, a, b plumbing.Hash) (aheadOfB, behindB int, err error) {
	if a == b {
		return 0, 0, nil
	}

	ancestorsA, err := r.ancestorSet(ctx, a)
	if err != nil {
		return 0, 0, err
	}
	ancestorsB, err := r.ancestorSet(ctx, b)
	if err != nil {
		return 0, 0, err
	}

	for h := range ancestorsA {
		if _, ok := ancestorsB[h]; !ok {
			aheadOfB++
		}
	}
	for h := range ancestorsB {
		if _, ok := ancestorsA[h]; !ok {
			behindB++
		}
	}
	return aheadOfB, behindB, nil
}

func (r *Repo) ancestorSet(ctx context.Context, h plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	set := map[plumbing.Hash]struct{}{}
	queue := []plumbing.Hash{h}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cur := queue[0]
		queue = queue[1:]
		if cur == plumbing.ZeroHash {
			continue
		}
		if _, seen := set[cur]; seen {
			continue
		}
		set[cur] = struct{}{}

		c, err := object.GetCommit(r.repo.Storer, cur)
		if err != nil {
			return nil, fmt.Errorf("%w: walking ancestry of %s: %v", ErrIO, cur, err)
		}
		queue = append(queue, c.ParentHashes...)
	}
	return set, nil
}
