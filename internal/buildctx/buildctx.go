// Package buildctx assembles the render context passed to templates:
// timestamps and a snapshot of repository state. The engine later extends it
// with current_version and new_version entries.
package buildctx

import (
	"strconv"
	"time"
)

// RepoState is the snapshot of version-control state exposed to templates.
// The zero value describes "no repository".
type RepoState struct {
	CommitSha  string
	ShortSha   string
	BranchName string
	CurrentTag string
	Dirty      bool
}

// New builds the base render context. Every value is a plain string so it
// can be substituted directly into templates.
func New(now time.Time, repo RepoState) map[string]string {
	ctx := map[string]string{
		"now":    now.Format("2006-01-02T15:04:05"),
		"utcnow": now.UTC().Format("2006-01-02T15:04:05"),
	}
	if repo.CommitSha != "" {
		ctx["commit_sha"] = repo.CommitSha
		ctx["short_commit_sha"] = repo.ShortSha
	}
	if repo.BranchName != "" {
		ctx["branch_name"] = repo.BranchName
	}
	if repo.CurrentTag != "" {
		ctx["current_tag"] = repo.CurrentTag
	}
	ctx["dirty"] = strconv.FormatBool(repo.Dirty)
	return ctx
}
