package idalloc_test

import (
	"context"
	"sync"
	"testing"

	"git-issue.sh/core/internal/gitrepo"
	"git-issue.sh/core/internal/idalloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *gitrepo.Repo {
	t.Helper()
	r, err := gitrepo.Init(t.TempDir(), true)
	require.NoError(t, err)
	return r
}

func TestPeekDefaultsToOne(t *testing.T) {
	repo := newRepo(t)
	a := idalloc.New(repo)

	id, err := a.Peek()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
}

func TestAllocateSequential(t *testing.T) {
	repo := newRepo(t)
	a := idalloc.New(repo)
	ctx := context.Background()

	first, err := a.Allocate(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first)

	second, err := a.Allocate(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second)

	peeked, err := a.Peek()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), peeked)
}

func TestAllocateConcurrentNeverDuplicates(t *testing.T) {
	repo := newRepo(t)
	a := idalloc.New(repo)
	ctx := context.Background()

	const n = 16
	ids := make([]uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := a.Allocate(ctx)
			require.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool, n)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %d allocated", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
