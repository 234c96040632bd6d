package gitrepo

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// WriteBlob stores data as a new blob object and returns its hash.
func (r *Repo) WriteBlob(data []byte) (plumbing.Hash, error) {
	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)

	w, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: opening blob writer: %v", ErrIO, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return plumbing.ZeroHash, fmt.Errorf("%w: writing blob: %v", ErrIO, err)
	}
	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: closing blob writer: %v", ErrIO, err)
	}

	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: storing blob: %v", ErrIO, err)
	}
	return hash, nil
}

// ReadBlob returns the content of the blob at hash.
func (r *Repo) ReadBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := object.GetBlob(r.repo.Storer, hash)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: blob %s", ErrObjectNotFound, hash)
		}
		return nil, fmt.Errorf("%w: reading blob %s: %v", ErrIO, hash, err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("%w: opening blob %s: %v", ErrIO, hash, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading blob %s: %v", ErrIO, hash, err)
	}
	return data, nil
}

// TreeEntry is one named, moded entry of a tree object.
type TreeEntry struct {
	Name string
	Mode filemode.FileMode
	Hash plumbing.Hash
}

// WriteTree stores entries as a new tree object and returns its hash.
// Entries are sorted per git's tree ordering rules before encoding, so
// callers may pass them in any order.
func (r *Repo) WriteTree(entries []TreeEntry) (plumbing.Hash, error) {
	sorted := make([]TreeEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return treeSortKey(sorted[i]) < treeSortKey(sorted[j])
	})

	tree := &object.Tree{}
	for _, e := range sorted {
		tree.Entries = append(tree.Entries, object.TreeEntry{Name: e.Name, Mode: e.Mode, Hash: e.Hash})
	}

	obj := r.repo.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: encoding tree: %v", ErrIO, err)
	}
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: storing tree: %v", ErrIO, err)
	}
	return hash, nil
}

func treeSortKey(e TreeEntry) string {
	if e.Mode == filemode.Dir {
		return e.Name + "/"
	}
	return e.Name
}

// ReadTree returns the entries of the tree object at hash.
func (r *Repo) ReadTree(hash plumbing.Hash) ([]TreeEntry, error) {
	tree, err := object.GetTree(r.repo.Storer, hash)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: tree %s", ErrObjectNotFound, hash)
		}
		return nil, fmt.Errorf("%w: reading tree %s: %v", ErrIO, hash, err)
	}

	entries := make([]TreeEntry, len(tree.Entries))
	for i, e := range tree.Entries {
		entries[i] = TreeEntry{Name: e.Name, Mode: e.Mode, Hash: e.Hash}
	}
	return entries, nil
}

// CommitData is the gitrepo-level view of a commit: enough to replay events
// without exposing go-git's object.Commit to callers. Timestamp reflects
// the commit's author time and is diagnostic only; the event codec's own
// timestamp field is what replay actually consumes.
type CommitData struct {
	Hash         plumbing.Hash
	TreeHash     plumbing.Hash
	ParentHashes []plumbing.Hash
	AuthorName   string
	AuthorEmail  string
	Timestamp    time.Time
	Message      string
}

// WriteCommit stores a new commit object and returns its hash.
func (r *Repo) WriteCommit(treeHash plumbing.Hash, parents []plumbing.Hash, authorName, authorEmail string, ts time.Time, message string) (plumbing.Hash, error) {
	sig := object.Signature{Name: authorName, Email: authorEmail, When: ts}
	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     treeHash,
		ParentHashes: parents,
	}

	obj := r.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: encoding commit: %v", ErrIO, err)
	}
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: storing commit: %v", ErrIO, err)
	}
	return hash, nil
}

// ReadCommit returns the commit at hash.
func (r *Repo) ReadCommit(hash plumbing.Hash) (CommitData, error) {
	c, err := object.GetCommit(r.repo.Storer, hash)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return CommitData{}, fmt.Errorf("%w: commit %s", ErrObjectNotFound, hash)
		}
		return CommitData{}, fmt.Errorf("%w: reading commit %s: %v", ErrIO, hash, err)
	}
	return CommitData{
		Hash:         c.Hash,
		TreeHash:     c.TreeHash,
		ParentHashes: c.ParentHashes,
		AuthorName:   c.Author.Name,
		AuthorEmail:  c.Author.Email,
		Timestamp:    c.Author.When,
		Message:      c.Message,
	}, nil
}
