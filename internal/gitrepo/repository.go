// Package gitrepo wraps go-git with the repository operations a version bump
// needs: dirty-tree inspection, tag lookup, staging, and creating the bump
// commit and tag.
package gitrepo

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gogitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"go-bumpversion/internal/template"
	"go-bumpversion/internal/version"
)

// Repository is a handle on a local git repository.
type Repository struct {
	repo    *gogit.Repository
	workDir string
}

// HeadInfo describes the current HEAD, when one exists.
type HeadInfo struct {
	Sha        string
	ShortSha   string
	BranchName string
}

// TagInfo describes one tag and the commit it points at.
type TagInfo struct {
	Name string
	Sha  string
	When time.Time
}

// Open opens the git repository containing path.
func Open(path string) (*Repository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	return &Repository{repo: r, workDir: wt.Filesystem.Root()}, nil
}

// WorkingDirectory returns the path to the working directory root.
func (r *Repository) WorkingDirectory() string {
	return r.workDir
}

// DirtyFiles returns the paths of tracked files with uncommitted changes.
// Untracked files do not make the tree dirty.
func (r *Repository) DirtyFiles() ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}

	var dirty []string
	for path, s := range status {
		if s.Worktree == gogit.Untracked && s.Staging == gogit.Untracked {
			continue
		}
		if s.Worktree != gogit.Unmodified || s.Staging != gogit.Unmodified {
			dirty = append(dirty, path)
		}
	}
	sort.Strings(dirty)
	return dirty, nil
}

// Head returns the current HEAD commit and branch. A repository with no
// commits yet returns a zero HeadInfo and no error.
func (r *Repository) Head() (HeadInfo, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return HeadInfo{}, nil
		}
		return HeadInfo{}, fmt.Errorf("getting HEAD: %w", err)
	}

	sha := ref.Hash().String()
	info := HeadInfo{Sha: sha, ShortSha: sha[:7]}
	if ref.Name().IsBranch() {
		info.BranchName = ref.Name().Short()
	}
	return info, nil
}

// Tags returns all tags with their target commits, newest commit first.
func (r *Repository) Tags() ([]TagInfo, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []TagInfo
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		// Annotated tags point at a tag object; peel to the commit.
		if tagObj, err := r.repo.TagObject(hash); err == nil {
			commit, err := tagObj.Commit()
			if err != nil {
				return nil
			}
			tags = append(tags, TagInfo{
				Name: ref.Name().Short(),
				Sha:  commit.Hash.String(),
				When: commit.Committer.When,
			})
			return nil
		}

		commit, err := r.repo.CommitObject(hash)
		if err != nil {
			return nil
		}
		tags = append(tags, TagInfo{
			Name: ref.Name().Short(),
			Sha:  commit.Hash.String(),
			When: commit.Committer.When,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.SliceStable(tags, func(a, b int) bool {
		return tags[a].When.After(tags[b].When)
	})
	return tags, nil
}

// LatestTag returns the newest tag whose name matches the tag-name template
// with the version parse pattern standing in for the version fields, together
// with the parsed version. Tags that merely sit on a recent commit but do not
// name a version (release markers, deploy tags) are skipped. Returns a zero
// TagInfo and a nil version when no tag matches.
func (r *Repository) LatestTag(tagName *template.FormatString, parsePattern *regexp.Regexp, spec *version.VersionSpec) (TagInfo, *version.Version, error) {
	pattern, err := tagNamePattern(tagName, parsePattern)
	if err != nil {
		return TagInfo{}, nil, err
	}

	tags, err := r.Tags()
	if err != nil {
		return TagInfo{}, nil, err
	}

	for _, tag := range tags {
		if !pattern.MatchString(tag.Name) {
			continue
		}
		if v := version.Parse(tag.Name, parsePattern, spec); v != nil {
			return tag, v, nil
		}
	}
	return TagInfo{}, nil, nil
}

// tagNamePattern compiles the tag-name template into an anchored regex:
// literal segments match as plain text, the version fields match anything the
// parse pattern accepts.
func tagNamePattern(tagName *template.FormatString, parsePattern *regexp.Regexp) (*regexp.Regexp, error) {
	versionSource := "(?:" + parsePattern.String() + ")"
	rendered, err := tagName.Format(map[string]string{
		"new_version":     versionSource,
		"current_version": versionSource,
	}, true)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile("^" + rendered + "$")
	if err != nil {
		return nil, fmt.Errorf("compiling tag pattern from %q: %w", tagName.String(), err)
	}
	return re, nil
}

// StageAndCommit stages the given paths (relative to the working directory)
// and commits them with message. Returns the new commit SHA.
func (r *Repository) StageAndCommit(paths []string, message string) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	for _, path := range paths {
		if _, err := wt.Add(path); err != nil {
			return "", fmt.Errorf("staging %s: %w", path, err)
		}
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: r.signature()})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return hash.String(), nil
}

// CreateTag creates a tag on HEAD: annotated when message is non-empty,
// lightweight otherwise.
func (r *Repository) CreateTag(name, message string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	var opts *gogit.CreateTagOptions
	if message != "" {
		opts = &gogit.CreateTagOptions{Message: message, Tagger: r.signature()}
	}
	if _, err := r.repo.CreateTag(name, head.Hash(), opts); err != nil {
		return fmt.Errorf("creating tag %s: %w", name, err)
	}
	return nil
}

// signature builds the commit author from the repository configuration,
// falling back to a fixed identity when none is configured.
func (r *Repository) signature() *object.Signature {
	name, email := "go-bumpversion", "bumpversion@localhost"
	if cfg, err := r.repo.ConfigScoped(gogitconfig.SystemScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}
