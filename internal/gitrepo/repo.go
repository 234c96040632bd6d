// Package gitrepo is the thin adapter over go-git that every other package
// in this module uses to touch the object database: blobs, trees, commits,
// refs, and remotes. Nothing above this package imports go-git directly.
package gitrepo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Repo wraps a go-git repository and exposes the narrow object/ref surface
// the issue store and sync engine need.
type Repo struct {
	repo *git.Repository
	path string
}

// Open opens an existing repository (bare or with a working tree) rooted at
// path.
func Open(path string) (*Repo, error) {
	r, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	return &Repo{repo: r, path: path}, nil
}

// Init creates a new repository at path. bare controls whether a working
// tree is created alongside the object database.
func Init(path string, bare bool) (*Repo, error) {
	r, err := git.PlainInit(path, bare)
	if err != nil {
		return nil, fmt.Errorf("%w: initializing %s: %v", ErrIO, path, err)
	}
	return &Repo{repo: r, path: path}, nil
}

// Path returns the repository's root directory.
func (r *Repo) Path() string { return r.path }
