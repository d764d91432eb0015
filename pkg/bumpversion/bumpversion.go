// Package bumpversion provides the public API for bumping version strings
// across the files of a project, driven by a declarative configuration.
//
// Basic usage:
//
//	mgr, err := bumpversion.New(bumpversion.Options{Path: "."})
//	if err != nil { ... }
//	result, err := mgr.Bump("patch")
//	fmt.Println(result.NewVersion) // "1.2.4"
package bumpversion

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"go-bumpversion/internal/buildctx"
	"go-bumpversion/internal/config"
	"go-bumpversion/internal/files"
	"go-bumpversion/internal/gitrepo"
	"go-bumpversion/internal/version"
)

// Options configures a Manager.
type Options struct {
	// Path is the project directory. Defaults to "." if empty.
	Path string

	// ConfigPath is an explicit configuration file. If empty, the standard
	// config files are searched in Path.
	ConfigPath string

	// DryRun renders and reports every change without writing anything.
	DryRun bool

	// Overrides applied on top of the configuration file. Nil means keep
	// the configured value.
	AllowDirty *bool
	Commit     *bool
	Tag        *bool

	// NoConfiguredFiles excludes every file from the configuration,
	// leaving only IncludedPaths.
	NoConfiguredFiles bool

	// IncludedPaths names files that are processed even when excluded.
	IncludedPaths []string
}

// Manager bundles the finalized configuration, the version schema, the
// repository handle, and the render context for one invocation.
type Manager struct {
	cfg    *config.Finalized
	spec   *version.VersionSpec
	repo   *gitrepo.Repository
	ctx    map[string]string
	dryRun bool

	includedPaths     []string
	noConfiguredFiles bool
}

// FileModification pairs a target path with the modification applied to it.
type FileModification struct {
	Path         string
	Modification *files.Modification
}

// Result describes a completed (or dry-run) bump.
type Result struct {
	CurrentVersion string
	NewVersion     string
	Files          []FileModification
	Committed      bool
	TagName        string
}

// New loads and finalizes configuration for the project at opts.Path and
// returns a Manager. The directory does not need to be a git repository;
// without one, VCS context entries are absent and commit/tag requests fail.
func New(opts Options) (*Manager, error) {
	dir := opts.Path
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}

	repo, err := gitrepo.Open(dir)
	if err != nil {
		log.Debug("not a git repository", "path", dir)
		repo = nil
	} else {
		dir = repo.WorkingDirectory()
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.Discover(dir)
	}
	if configPath == "" {
		return nil, errors.New("no configuration file found")
	}

	raw, format, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%s carries no bumpversion configuration", configPath)
	}

	raw.Merge(&config.Global{
		AllowDirty: opts.AllowDirty,
		Commit:     opts.Commit,
		Tag:        opts.Tag,
	})

	cfg, err := config.Finalize(raw, configPath, format, dir)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:               cfg,
		spec:              cfg.VersionSpec(),
		repo:              repo,
		dryRun:            opts.DryRun,
		noConfiguredFiles: opts.NoConfiguredFiles,
	}
	for _, p := range opts.IncludedPaths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		m.includedPaths = append(m.includedPaths, p)
	}
	// Files named on the command line that have no configured entry get
	// the global settings.
	for _, p := range m.includedPaths {
		if !slices.Contains(cfg.FileMap.Paths(), p) {
			cfg.FileMap = cfg.FileMap.Add(p, cfg.DefaultFileChange())
		}
	}

	m.ctx = buildctx.New(time.Now(), m.repoState())
	return m, nil
}

// Config returns the finalized configuration.
func (m *Manager) Config() *config.Finalized {
	return m.cfg
}

// repoState snapshots the VCS data exposed to templates.
func (m *Manager) repoState() buildctx.RepoState {
	if m.repo == nil {
		return buildctx.RepoState{}
	}

	var state buildctx.RepoState
	if head, err := m.repo.Head(); err == nil {
		state.CommitSha = head.Sha
		state.ShortSha = head.ShortSha
		state.BranchName = head.BranchName
	}
	if dirty, err := m.repo.DirtyFiles(); err == nil {
		state.Dirty = len(dirty) > 0
	}
	if tag, v, err := m.repo.LatestTag(m.cfg.TagName, m.cfg.ParsePattern, m.spec); err == nil && v != nil {
		state.CurrentTag = tag.Name
	}
	return state
}

// CurrentVersion parses the configured current version.
func (m *Manager) CurrentVersion() (*version.Version, error) {
	if m.cfg.CurrentVersion == "" {
		return nil, errors.New("missing current_version in configuration")
	}
	v := version.Parse(m.cfg.CurrentVersion, m.cfg.ParsePattern, m.spec)
	if v == nil {
		return nil, fmt.Errorf("current version %q does not match parse pattern %q",
			m.cfg.CurrentVersion, m.cfg.ParsePattern.String())
	}
	return v, nil
}

// Bump advances the named component across every configured file, rewrites
// the config file's own current_version entry, and optionally commits and
// tags the result.
func (m *Manager) Bump(component string) (*Result, error) {
	current, err := m.CurrentVersion()
	if err != nil {
		return nil, err
	}
	next, err := current.Bump(component)
	if err != nil {
		return nil, err
	}
	return m.apply(current, next, component)
}

// BumpToVersion sets an explicit new version instead of bumping a component.
func (m *Manager) BumpToVersion(newVersion string) (*Result, error) {
	current, err := m.CurrentVersion()
	if err != nil {
		return nil, err
	}
	next := version.Parse(newVersion, m.cfg.ParsePattern, m.spec)
	if next == nil {
		return nil, fmt.Errorf("new version %q does not match parse pattern %q",
			newVersion, m.cfg.ParsePattern.String())
	}
	return m.apply(current, next, "")
}

// apply runs the full replacement pipeline for a resolved version pair.
// component is the bumped component name, or "" for an explicit version.
func (m *Manager) apply(current, next *version.Version, component string) (*Result, error) {
	if err := m.checkDirty(); err != nil {
		return nil, err
	}

	currentSerialized, err := current.Serialize(m.cfg.Serialize, m.ctx)
	if err != nil {
		return nil, err
	}
	newSerialized, err := next.Serialize(m.cfg.Serialize, m.ctx)
	if err != nil {
		return nil, err
	}
	log.Info("bumping version", "from", currentSerialized, "to", newSerialized, "dry_run", m.dryRun)

	result := &Result{CurrentVersion: currentSerialized, NewVersion: newSerialized}

	var excluded []string
	if m.noConfiguredFiles {
		excluded = m.cfg.FileMap.Paths()
	}

	for _, target := range m.cfg.FileMap.Filter(m.includedPaths, excluded) {
		changes := applicableChanges(target.Changes, component)
		if len(changes) == 0 {
			log.Debug("no applicable changes", "path", target.Path, "component", component)
			continue
		}

		modification, err := files.ReplaceVersionInFile(target.Path, changes, current, next, m.ctx, m.dryRun)
		if err != nil {
			return nil, err
		}
		if modification == nil {
			continue
		}
		m.logModification(target.Path, modification)
		result.Files = append(result.Files, FileModification{Path: target.Path, Modification: modification})
	}

	if m.cfg.ConfigFileChange != nil {
		modification, err := files.ReplaceVersionInFile(
			m.cfg.ConfigFile, []*files.FileChange{m.cfg.ConfigFileChange}, current, next, m.ctx, m.dryRun)
		if err != nil {
			return nil, err
		}
		if modification != nil {
			m.logModification(m.cfg.ConfigFile, modification)
			result.Files = append(result.Files, FileModification{Path: m.cfg.ConfigFile, Modification: modification})
		}
	}

	if err := m.commitAndTag(result); err != nil {
		return nil, err
	}
	return result, nil
}

// checkDirty refuses to run on a dirty working tree unless allowed.
func (m *Manager) checkDirty() error {
	if m.repo == nil || m.cfg.AllowDirty {
		return nil
	}
	dirty, err := m.repo.DirtyFiles()
	if err != nil {
		return err
	}
	if len(dirty) > 0 {
		return fmt.Errorf("working directory is not clean:\n%s\n\nuse --allow-dirty to proceed",
			joinLines(dirty))
	}
	return nil
}

// commitAndTag creates the bump commit and tag when configured to.
func (m *Manager) commitAndTag(result *Result) error {
	if !m.cfg.Commit && !m.cfg.Tag {
		return nil
	}
	if m.repo == nil {
		return errors.New("commit or tag requested, but the project is not a git repository")
	}

	ctx := m.extendContext(result)

	if m.cfg.Commit {
		message, err := m.cfg.CommitMessage.Format(ctx, false)
		if err != nil {
			return err
		}
		if m.dryRun {
			log.Info("would commit", "message", message)
		} else {
			paths, err := m.changedPaths(result)
			if err != nil {
				return err
			}
			if _, err := m.repo.StageAndCommit(paths, message); err != nil {
				return err
			}
			result.Committed = true
			log.Info("committed", "message", message)
		}
	}

	if m.cfg.Tag {
		name, err := m.cfg.TagName.Format(ctx, false)
		if err != nil {
			return err
		}
		message, err := m.cfg.TagMessage.Format(ctx, false)
		if err != nil {
			return err
		}
		if m.dryRun {
			log.Info("would tag", "name", name)
		} else {
			if err := m.repo.CreateTag(name, message); err != nil {
				return err
			}
			log.Info("tagged", "name", name)
		}
		result.TagName = name
	}
	return nil
}

// changedPaths lists the modified files relative to the repository root,
// as the staging API expects.
func (m *Manager) changedPaths(result *Result) ([]string, error) {
	root := m.repo.WorkingDirectory()
	var paths []string
	for _, f := range result.Files {
		if !f.Modification.Changed() {
			continue
		}
		rel, err := filepath.Rel(root, f.Path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s against repository root: %w", f.Path, err)
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths, nil
}

// extendContext returns the render context extended with the serialized
// version pair.
func (m *Manager) extendContext(result *Result) map[string]string {
	ctx := make(map[string]string, len(m.ctx)+2)
	for k, v := range m.ctx {
		ctx[k] = v
	}
	ctx["current_version"] = result.CurrentVersion
	ctx["new_version"] = result.NewVersion
	return ctx
}

func (m *Manager) logModification(path string, modification *files.Modification) {
	if !modification.Changed() {
		log.Debug("file unchanged", "path", path)
		return
	}
	verb := "updating"
	if m.dryRun {
		verb = "would update"
	}
	log.Info(verb+" file", "path", path)
	if diff := modification.Diff(path); diff != "" {
		log.Debug("diff\n" + diff)
	}
}

// applicableChanges filters a change list down to those that apply when the
// named component is bumped. An empty component (explicit new version)
// applies every change.
func applicableChanges(changes []*files.FileChange, component string) []*files.FileChange {
	if component == "" {
		return changes
	}
	var out []*files.FileChange
	for _, change := range changes {
		if change.WillNotBumpComponent(component) || !change.WillBumpComponent(component) {
			continue
		}
		out = append(out, change)
	}
	return out
}

func joinLines(lines []string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n"
		}
		out += "  " + line
	}
	return out
}

// Variables assembles the context variables exposed by the show command.
func (m *Manager) Variables() map[string]string {
	vars := make(map[string]string, len(m.ctx)+2)
	for k, v := range m.ctx {
		vars[k] = v
	}
	if m.cfg.CurrentVersion != "" {
		vars["current_version"] = m.cfg.CurrentVersion
	}
	vars["files"] = joinPaths(m.cfg.FileMap.Paths())
	return vars
}

// PlannedBump resolves the version pair a bump of component would produce,
// without touching any file.
func (m *Manager) PlannedBump(component string) (currentSerialized, newSerialized string, err error) {
	current, err := m.CurrentVersion()
	if err != nil {
		return "", "", err
	}
	next, err := current.Bump(component)
	if err != nil {
		return "", "", err
	}
	currentSerialized, err = current.Serialize(m.cfg.Serialize, m.ctx)
	if err != nil {
		return "", "", err
	}
	newSerialized, err = next.Serialize(m.cfg.Serialize, m.ctx)
	if err != nil {
		return "", "", err
	}
	return currentSerialized, newSerialized, nil
}

func joinPaths(paths []string) string {
	out := ""
	for i, p := range paths {
		if i > 0 {
			out += "\n"
		}
		out += p
	}
	return out
}
