// Package testutil provides helpers for creating temporary git repositories
// with controlled content, commits, and tags for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// TestRepo is a builder for temporary git repositories with controlled
// files, commit history, and tags.
type TestRepo struct {
	t    testing.TB
	path string
	repo *gogit.Repository
	time time.Time
}

// NewTestRepo creates and initializes a new git repository in a temporary
// directory.
func NewTestRepo(t testing.TB) *TestRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	return &TestRepo{
		t:    t,
		path: dir,
		repo: repo,
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the repository root directory.
func (r *TestRepo) Path() string {
	return r.path
}

// WriteFile writes content to a file relative to the repository root without
// staging it. Returns the absolute path.
func (r *TestRepo) WriteFile(name, content string) string {
	r.t.Helper()
	path := filepath.Join(r.path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// ReadFile returns the content of a file relative to the repository root.
func (r *TestRepo) ReadFile(name string) string {
	r.t.Helper()
	data, err := os.ReadFile(filepath.Join(r.path, name))
	if err != nil {
		r.t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// CommitAll stages every change in the worktree and commits it.
// Returns the commit SHA.
func (r *TestRepo) CommitAll(message string) string {
	r.t.Helper()
	r.time = r.time.Add(time.Minute)

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		r.t.Fatalf("staging changes: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  r.time,
		},
	})
	if err != nil {
		r.t.Fatalf("committing: %v", err)
	}
	return hash.String()
}

// CreateTag creates a lightweight tag pointing at the given SHA.
func (r *TestRepo) CreateTag(name, sha string) {
	r.t.Helper()
	ref := plumbing.NewReferenceFromStrings("refs/tags/"+name, sha)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating tag %s: %v", name, err)
	}
}

// CreateAnnotatedTag creates an annotated tag pointing at the given SHA.
func (r *TestRepo) CreateAnnotatedTag(name, sha, message string) {
	r.t.Helper()
	r.time = r.time.Add(time.Second)

	hash := plumbing.NewHash(sha)
	_, err := r.repo.CreateTag(name, hash, &gogit.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  r.time,
		},
		Message: message,
	})
	if err != nil {
		r.t.Fatalf("creating annotated tag %s: %v", name, err)
	}
}

// HeadSha returns the current HEAD commit SHA.
func (r *TestRepo) HeadSha() string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("getting HEAD: %v", err)
	}
	return head.Hash().String()
}

// HeadMessage returns the current HEAD commit message.
func (r *TestRepo) HeadMessage() string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("getting HEAD: %v", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		r.t.Fatalf("getting HEAD commit: %v", err)
	}
	return commit.Message
}

// TagNames returns the names of all tags in the repository.
func (r *TestRepo) TagNames() []string {
	r.t.Helper()
	iter, err := r.repo.Tags()
	if err != nil {
		r.t.Fatalf("listing tags: %v", err)
	}
	var names []string
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	return names
}
