package bumpversion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bumpversion/internal/testutil"
)

const basicConfig = `[tool.bumpversion]
current_version = "1.2.3"

[[tool.bumpversion.files]]
filename = "VERSION"
`

func TestBump_Patch(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "version = 1.2.3\n")
	repo.CommitAll("initial")

	mgr, err := New(Options{Path: repo.Path()})
	require.NoError(t, err)

	result, err := mgr.Bump("patch")
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", result.CurrentVersion)
	assert.Equal(t, "1.2.4", result.NewVersion)
	assert.Equal(t, "version = 1.2.4\n", repo.ReadFile("VERSION"))
	assert.Contains(t, repo.ReadFile(".bumpversion.toml"), `current_version = "1.2.4"`)
	assert.False(t, result.Committed)
	assert.Empty(t, result.TagName)
}

func TestBump_MinorResetsPatch(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "1.2.3\n")
	repo.CommitAll("initial")

	mgr, err := New(Options{Path: repo.Path()})
	require.NoError(t, err)

	result, err := mgr.Bump("minor")
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", result.NewVersion)
	assert.Equal(t, "1.3.0\n", repo.ReadFile("VERSION"))
}

func TestBump_DryRunLeavesFilesUntouched(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "1.2.3\n")
	repo.CommitAll("initial")

	mgr, err := New(Options{Path: repo.Path(), DryRun: true})
	require.NoError(t, err)

	result, err := mgr.Bump("major")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", result.NewVersion)
	assert.NotEmpty(t, result.Files)

	assert.Equal(t, "1.2.3\n", repo.ReadFile("VERSION"))
	assert.Contains(t, repo.ReadFile(".bumpversion.toml"), `current_version = "1.2.3"`)
}

func TestBump_DirtyWorktreeRefused(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "1.2.3\n")
	repo.CommitAll("initial")
	repo.WriteFile("VERSION", "1.2.3 modified\n")

	mgr, err := New(Options{Path: repo.Path()})
	require.NoError(t, err)

	_, err = mgr.Bump("patch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not clean")
}

func TestBump_AllowDirty(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "1.2.3\n")
	repo.CommitAll("initial")
	repo.WriteFile("extra.txt", "scratch\n")

	allow := true
	mgr, err := New(Options{Path: repo.Path(), AllowDirty: &allow})
	require.NoError(t, err)

	_, err = mgr.Bump("patch")
	require.NoError(t, err)
	assert.Equal(t, "1.2.4\n", repo.ReadFile("VERSION"))
}

func TestBump_CommitAndTag(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", `[tool.bumpversion]
current_version = "0.9.0"
commit = true
tag = true

[[tool.bumpversion.files]]
filename = "VERSION"
`)
	repo.WriteFile("VERSION", "0.9.0\n")
	repo.CommitAll("initial")

	mgr, err := New(Options{Path: repo.Path()})
	require.NoError(t, err)

	result, err := mgr.Bump("minor")
	require.NoError(t, err)

	assert.True(t, result.Committed)
	assert.Equal(t, "v0.10.0", result.TagName)
	assert.Contains(t, repo.HeadMessage(), "Bump version: 0.9.0")
	assert.Contains(t, repo.TagNames(), "v0.10.0")
}

func TestBump_NoRepositoryStillBumpsFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".bumpversion.toml"), []byte(basicConfig), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "VERSION"), []byte("1.2.3\n"), 0o644))

	mgr, err := New(Options{Path: dir})
	require.NoError(t, err)

	result, err := mgr.Bump("patch")
	require.NoError(t, err)
	assert.Equal(t, "1.2.4", result.NewVersion)

	data, err := os.ReadFile(filepath.Join(dir, "VERSION"))
	require.NoError(t, err)
	assert.Equal(t, "1.2.4\n", string(data))
}

func TestBumpToVersion(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "1.2.3\n")
	repo.CommitAll("initial")

	mgr, err := New(Options{Path: repo.Path()})
	require.NoError(t, err)

	result, err := mgr.BumpToVersion("4.5.6")
	require.NoError(t, err)
	assert.Equal(t, "4.5.6", result.NewVersion)
	assert.Equal(t, "4.5.6\n", repo.ReadFile("VERSION"))
}

func TestBumpToVersion_Unparseable(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "1.2.3\n")
	repo.CommitAll("initial")

	mgr, err := New(Options{Path: repo.Path()})
	require.NoError(t, err)

	_, err = mgr.BumpToVersion("not-a-version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match parse pattern")
}

func TestBump_IncludedPathWithoutConfigEntry(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "1.2.3\n")
	repo.WriteFile("README.md", "release 1.2.3\n")
	repo.CommitAll("initial")

	mgr, err := New(Options{Path: repo.Path(), IncludedPaths: []string{"README.md"}})
	require.NoError(t, err)

	_, err = mgr.Bump("patch")
	require.NoError(t, err)
	assert.Equal(t, "release 1.2.4\n", repo.ReadFile("README.md"))
	assert.Equal(t, "1.2.4\n", repo.ReadFile("VERSION"))
}

func TestBump_NoConfiguredFiles(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "1.2.3\n")
	repo.WriteFile("README.md", "release 1.2.3\n")
	repo.CommitAll("initial")

	mgr, err := New(Options{
		Path:              repo.Path(),
		NoConfiguredFiles: true,
		IncludedPaths:     []string{"README.md"},
	})
	require.NoError(t, err)

	_, err = mgr.Bump("patch")
	require.NoError(t, err)
	assert.Equal(t, "release 1.2.4\n", repo.ReadFile("README.md"))
	assert.Equal(t, "1.2.3\n", repo.ReadFile("VERSION"))
}

func TestBump_ComponentFilters(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", `[tool.bumpversion]
current_version = "1.2.3"
allow_dirty = true

[[tool.bumpversion.files]]
filename = "major-only.txt"
include_bumps = ["major"]

[[tool.bumpversion.files]]
filename = "no-patch.txt"
exclude_bumps = ["patch"]
`)
	repo.WriteFile("major-only.txt", "1.2.3\n")
	repo.WriteFile("no-patch.txt", "1.2.3\n")
	repo.CommitAll("initial")

	mgr, err := New(Options{Path: repo.Path()})
	require.NoError(t, err)

	_, err = mgr.Bump("patch")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", repo.ReadFile("major-only.txt"))
	assert.Equal(t, "1.2.3\n", repo.ReadFile("no-patch.txt"))

	_, err = mgr.Bump("major")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0\n", repo.ReadFile("major-only.txt"))
	assert.Equal(t, "2.0.0\n", repo.ReadFile("no-patch.txt"))
}

func TestNew_NoConfigFile(t *testing.T) {
	_, err := New(Options{Path: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no configuration file found")
}

func TestPlannedBump(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "1.2.3\n")
	repo.CommitAll("initial")

	mgr, err := New(Options{Path: repo.Path()})
	require.NoError(t, err)

	current, next, err := mgr.PlannedBump("minor")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", current)
	assert.Equal(t, "1.3.0", next)

	// Planning touches nothing.
	assert.Equal(t, "1.2.3\n", repo.ReadFile("VERSION"))
}

func TestVariables_CurrentTagIgnoresNonVersionTags(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "1.2.3\n")
	first := repo.CommitAll("initial")
	repo.CreateTag("v0.9.0", first)

	repo.WriteFile("VERSION", "1.2.3 again\n")
	second := repo.CommitAll("second")
	repo.CreateTag("deploy-production", second)

	mgr, err := New(Options{Path: repo.Path()})
	require.NoError(t, err)

	vars := mgr.Variables()
	assert.Equal(t, "v0.9.0", vars["current_tag"])
}

func TestVariables(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile(".bumpversion.toml", basicConfig)
	repo.WriteFile("VERSION", "1.2.3\n")
	repo.CommitAll("initial")

	mgr, err := New(Options{Path: repo.Path()})
	require.NoError(t, err)

	vars := mgr.Variables()
	assert.Equal(t, "1.2.3", vars["current_version"])
	assert.NotEmpty(t, vars["commit_sha"])
	assert.NotEmpty(t, vars["now"])
	assert.Contains(t, vars["files"], "VERSION")
}
