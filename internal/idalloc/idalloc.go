// Package idalloc allocates monotonically increasing issue IDs from a
// single counter blob tracked by a ref, using retry-based compare-and-swap
// so concurrent allocators on the same repository never hand out the same
// ID twice.
package idalloc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/go-git/go-git/v5/plumbing"

	"git-issue.sh/core/internal/domain"
	"git-issue.sh/core/internal/gitrepo"
)

const maxAttempts = 32

// CounterRefName is the ref tracking the next issue ID to hand out.
const CounterRefName = "refs/git-issue/meta/next-issue-id"

// Allocator hands out sequential issue IDs backed by a repository ref.
type Allocator struct {
	repo    *gitrepo.Repo
	refName string
}

// New returns an allocator backed by CounterRefName in repo.
func New(repo *gitrepo.Repo) *Allocator {
	return &Allocator{repo: repo, refName: CounterRefName}
}

// Peek returns the next ID that would be handed out by Allocate, without
// consuming it. Absent counter state means the next ID is 1.
func (a *Allocator) Peek() (uint64, error) {
	hash, err := a.repo.ReadRef(a.refName)
	if err != nil {
		if errors.Is(err, gitrepo.ErrRefNotFound) {
			return 1, nil
		}
		return 0, err
	}
	return a.readCounter(hash)
}

func (a *Allocator) readCounter(hash plumbing.Hash) (uint64, error) {
	data, err := a.repo.ReadBlob(hash)
	if err != nil {
		return 0, fmt.Errorf("%w: reading issue ID counter: %v", domain.ErrSerialization, err)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid issue ID counter contents: %v", gitrepo.ErrInvalidObjectData, err)
	}
	return id, nil
}

// Allocate returns the next unused issue ID and advances the counter to
// id+1. Concurrent callers racing on the same repository retry the
// read-modify-CAS cycle until one wins; ErrConcurrentAllocation is returned
// if maxAttempts is exhausted.
func (a *Allocator) Allocate(ctx context.Context) (uint64, error) {
	var allocated uint64

	err := retry.Do(
		func() error {
			oldHash, readErr := a.repo.ReadRef(a.refName)
			hadRef := readErr == nil
			if readErr != nil && !errors.Is(readErr, gitrepo.ErrRefNotFound) {
				return retry.Unrecoverable(readErr)
			}

			var current uint64
			if hadRef {
				id, err := a.readCounter(oldHash)
				if err != nil {
					return retry.Unrecoverable(err)
				}
				current = id
			} else {
				current = 1
			}

			nextBytes := []byte(strconv.FormatUint(current+1, 10))
			blobHash, err := a.repo.WriteBlob(nextBytes)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("%w: writing issue ID counter: %v", domain.ErrSerialization, err))
			}

			expected := plumbing.ZeroHash
			if hadRef {
				expected = oldHash
			}
			if err := a.repo.UpdateRef(a.refName, blobHash, expected); err != nil {
				return err
			}

			allocated = current
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if errors.Is(err, gitrepo.ErrConcurrentModification) {
			return 0, fmt.Errorf("%w: exhausted %d attempts: %v", domain.ErrConcurrentAllocation, maxAttempts, err)
		}
		return 0, err
	}
	return allocated, nil
}
