package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
	"github.com/KDGehlot2003/codeblog.io/internal/repository"
)

const sample = `{
  "users": [
    {"fullName": "Alice Doe", "username": "Alice", "email": "alice@example.com", "password": "secret123",
     "blogs": [
       {"title": "Graphs", "content": "BFS and DFS", "category": "DSA"},
       {"title": "X", "content": "too short a title", "category": "DSA"}
     ]},
    {"fullName": "Alice Again", "username": "alice", "email": "alice2@example.com", "password": "secret123",
     "blogs": [{"title": "Heaps", "content": "Priority queues", "category": "DSA"}]},
    {"fullName": "", "username": "broken", "email": "broken@example.com", "password": "secret123",
     "blogs": [{"title": "Never", "content": "Created", "category": "DSA"}]}
  ]
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	return path
}

func TestSeed(t *testing.T) {
	data, err := readSeedFile(writeSample(t))
	require.NoError(t, err)
	require.Len(t, data.Users, 3)

	repos := repository.NewMemory()
	ctx := context.Background()

	st, err := seed(ctx, repos, data, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, stats{users: 1, skippedUsers: 2, blogs: 2, failedBlogs: 1}, st)

	alice, err := repos.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, alice)
	count, err := repos.Blogs.CountByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	broken, err := repos.Users.GetByUsername(ctx, "broken")
	require.NoError(t, err)
	assert.Nil(t, broken)

	_, total, err := repos.Blogs.List(ctx, &domain.BlogQuery{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestReadSeedFile_Errors(t *testing.T) {
	_, err := readSeedFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read seed file")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = readSeedFile(bad)
	assert.ErrorContains(t, err, "parse seed file")
}
