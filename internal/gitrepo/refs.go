package gitrepo

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// CreateRef creates name pointing at hash, failing with ErrRefAlreadyExists
// if it is already present.
func (r *Repo) CreateRef(name string, hash plumbing.Hash) error {
	refName := plumbing.ReferenceName(name)

	if _, err := r.repo.Storer.Reference(refName); err == nil {
		return fmt.Errorf("%w: %s", ErrRefAlreadyExists, name)
	} else if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("%w: checking ref %s: %v", ErrIO, name, err)
	}

	ref := plumbing.NewHashReference(refName, hash)
	if err := r.repo.Storer.CheckAndSetReference(ref, nil); err != nil {
		return fmt.Errorf("%w: creating ref %s: %v", ErrOperationFailed, name, err)
	}
	return nil
}

// UpdateRef moves name from expectedOld to newHash using compare-and-swap
// semantics on the ref storage. If expectedOld is the zero hash, name must
// not exist yet. A mismatch between the ref's actual current value and
// expectedOld returns ErrConcurrentModification.
func (r *Repo) UpdateRef(name string, newHash, expectedOld plumbing.Hash) error {
	refName := plumbing.ReferenceName(name)
	newRef := plumbing.NewHashReference(refName, newHash)

	if expectedOld == plumbing.ZeroHash {
		if _, err := r.repo.Storer.Reference(refName); err == nil {
			return fmt.Errorf("%w: %s already exists", ErrConcurrentModification, name)
		} else if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("%w: checking ref %s: %v", ErrIO, name, err)
		}
		if err := r.repo.Storer.CheckAndSetReference(newRef, nil); err != nil {
			return fmt.Errorf("%w: updating ref %s: %v", ErrOperationFailed, name, err)
		}
		return nil
	}

	oldRef := plumbing.NewHashReference(refName, expectedOld)
	if err := r.repo.Storer.CheckAndSetReference(newRef, oldRef); err != nil {
		if errors.Is(err, storer.ErrReferenceHasChanged) {
			return fmt.Errorf("%w: %s", ErrConcurrentModification, name)
		}
		return fmt.Errorf("%w: updating ref %s: %v", ErrOperationFailed, name, err)
	}
	return nil
}

// ReadRef returns the hash name currently points at.
func (r *Repo) ReadRef(name string) (plumbing.Hash, error) {
	ref, err := r.repo.Storer.Reference(plumbing.ReferenceName(name))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, fmt.Errorf("%w: %s", ErrRefNotFound, name)
		}
		return plumbing.ZeroHash, fmt.Errorf("%w: reading ref %s: %v", ErrIO, name, err)
	}
	return ref.Hash(), nil
}

// DeleteRef removes name.
func (r *Repo) DeleteRef(name string) error {
	if err := r.repo.Storer.RemoveReference(plumbing.ReferenceName(name)); err != nil {
		return fmt.Errorf("%w: deleting ref %s: %v", ErrOperationFailed, name, err)
	}
	return nil
}

// ListRefs returns, in sorted order, the names of all refs whose name has
// prefix.
func (r *Repo) ListRefs(prefix string) ([]string, error) {
	iter, err := r.repo.Storer.IterReferences()
	if err != nil {
		return nil, fmt.Errorf("%w: listing refs: %v", ErrIO, err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		n := string(ref.Name())
		if strings.HasPrefix(n, prefix) {
			names = append(names, n)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing refs: %v", ErrIO, err)
	}

	sort.Strings(names)
	return names, nil
}
