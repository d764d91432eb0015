package files

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"go-bumpversion/internal/template"
	"go-bumpversion/internal/version"

	"github.com/stretchr/testify/require"
)

var semverPattern = regexp.MustCompile(`(?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)`)

func semverSpec() *version.VersionSpec {
	numeric := version.ComponentSpec{OptionalValue: "0"}
	return version.NewVersionSpec([]version.SpecEntry{
		{Name: "major", Spec: numeric},
		{Name: "minor", Spec: numeric},
		{Name: "patch", Spec: numeric},
	})
}

func parseVersion(t *testing.T, s string) *version.Version {
	t.Helper()
	v := version.Parse(s, semverPattern, semverSpec())
	require.NotNil(t, v)
	return v
}

func defaultChange(t *testing.T, search, replace string) *FileChange {
	t.Helper()
	searchTmpl, err := template.ParseRegex(search, false)
	require.NoError(t, err)
	replaceTmpl, err := template.Parse(replace)
	require.NoError(t, err)
	serialize, err := template.Parse("{major}.{minor}.{patch}")
	require.NoError(t, err)
	return &FileChange{
		ParsePattern:      semverPattern,
		SerializePatterns: []*template.FormatString{serialize},
		Search:            searchTmpl,
		Replace:           replaceTmpl,
	}
}

func TestReplaceVersion_Simple(t *testing.T) {
	change := defaultChange(t, "my-version: {current_version}", "my-version: {new_version}")

	mod, err := ReplaceVersion(
		"my-version: 1.2.3",
		[]*FileChange{change},
		parseVersion(t, "1.2.3"),
		parseVersion(t, "1.2.4"),
		map[string]string{},
	)
	require.NoError(t, err)
	require.Equal(t, "my-version: 1.2.4", mod.After)
	require.Equal(t, "my-version: 1.2.3", mod.Before)
	require.Len(t, mod.Replacements, 1)
	require.Equal(t, "my-version: {current_version}", mod.Replacements[0].SearchPattern)
	require.Equal(t, "my-version: 1.2.4", mod.Replacements[0].Replace)
}

func TestReplaceVersion_ReplacesAllMatches(t *testing.T) {
	change := defaultChange(t, "{current_version}", "{new_version}")

	mod, err := ReplaceVersion(
		"1.2.3 and again 1.2.3",
		[]*FileChange{change},
		parseVersion(t, "1.2.3"),
		parseVersion(t, "2.0.0"),
		map[string]string{},
	)
	require.NoError(t, err)
	require.Equal(t, "2.0.0 and again 2.0.0", mod.After)
}

func TestReplaceVersion_SequentialChanges(t *testing.T) {
	first := defaultChange(t, "version: {current_version}", "version: {new_version}")
	second := defaultChange(t, "release {new_version}", "release {new_version} (latest)")

	mod, err := ReplaceVersion(
		"version: 1.0.0\nrelease 1.0.1\n",
		[]*FileChange{first, second},
		parseVersion(t, "1.0.0"),
		parseVersion(t, "1.0.1"),
		map[string]string{},
	)
	require.NoError(t, err)
	require.Equal(t, "version: 1.0.1\nrelease 1.0.1 (latest)\n", mod.After)
	require.Len(t, mod.Replacements, 2)
}

func TestReplaceVersion_Idempotent(t *testing.T) {
	change := defaultChange(t, "my-version: {current_version}", "my-version: {new_version}")
	bumped := parseVersion(t, "1.2.4")

	mod, err := ReplaceVersion(
		"my-version: 1.2.4",
		[]*FileChange{change},
		bumped,
		bumped,
		map[string]string{},
	)
	require.NoError(t, err)
	require.False(t, mod.Changed())
	require.Equal(t, mod.Before, mod.After)
}

func TestReplaceVersion_MissingMatchIsError(t *testing.T) {
	change := defaultChange(t, "nope: {current_version}", "nope: {new_version}")

	_, err := ReplaceVersion(
		"version: 1.2.3",
		[]*FileChange{change},
		parseVersion(t, "1.2.3"),
		parseVersion(t, "1.2.4"),
		map[string]string{},
	)
	var missing *MissingVersionError
	require.ErrorAs(t, err, &missing)
}

func TestReplaceVersion_MissingMatchIgnored(t *testing.T) {
	change := defaultChange(t, "nope: {current_version}", "nope: {new_version}")
	change.IgnoreMissingVersion = true

	mod, err := ReplaceVersion(
		"version: 1.2.3",
		[]*FileChange{change},
		parseVersion(t, "1.2.3"),
		parseVersion(t, "1.2.4"),
		map[string]string{},
	)
	require.NoError(t, err)
	require.False(t, mod.Changed())
	require.Len(t, mod.Replacements, 1, "audit trail still records the attempt")
}

func TestReplaceVersion_UsesContextValues(t *testing.T) {
	change := defaultChange(t, "{current_version}", "{new_version} on {branch_name}")

	mod, err := ReplaceVersion(
		"1.2.3",
		[]*FileChange{change},
		parseVersion(t, "1.2.3"),
		parseVersion(t, "1.2.4"),
		map[string]string{"branch_name": "main"},
	)
	require.NoError(t, err)
	require.Equal(t, "1.2.4 on main", mod.After)
}

func TestReplaceVersion_MissingContextKey(t *testing.T) {
	change := defaultChange(t, "{current_version}", "{new_version} on {branch_name}")

	_, err := ReplaceVersion(
		"1.2.3",
		[]*FileChange{change},
		parseVersion(t, "1.2.3"),
		parseVersion(t, "1.2.4"),
		map[string]string{},
	)
	var merr *template.MissingArgumentError
	require.ErrorAs(t, err, &merr)
	require.Equal(t, "branch_name", merr.Field)
}

func TestReplaceVersion_PerChangeSerialization(t *testing.T) {
	underscore, err := template.Parse("{major}_{minor}_{patch}")
	require.NoError(t, err)

	change := defaultChange(t, "VERSION = {current_version}", "VERSION = {new_version}")
	change.SerializePatterns = []*template.FormatString{underscore}

	mod, err := ReplaceVersion(
		"VERSION = 1_2_3",
		[]*FileChange{change},
		parseVersion(t, "1.2.3"),
		parseVersion(t, "1.3.0"),
		map[string]string{},
	)
	require.NoError(t, err)
	require.Equal(t, "VERSION = 1_3_0", mod.After)
}

func TestReplaceVersionInFile_WritesResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "VERSION")
	require.NoError(t, os.WriteFile(path, []byte("version = 0.1.8\n"), 0o644))

	change := defaultChange(t, "version = {current_version}", "version = {new_version}")
	mod, err := ReplaceVersionInFile(path, []*FileChange{change}, parseVersion(t, "0.1.8"), parseVersion(t, "0.1.9"), map[string]string{}, false)
	require.NoError(t, err)
	require.True(t, mod.Changed())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "version = 0.1.9\n", string(data))
}

func TestReplaceVersionInFile_DryRunLeavesFileAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "VERSION")
	require.NoError(t, os.WriteFile(path, []byte("version = 0.1.8\n"), 0o644))

	change := defaultChange(t, "version = {current_version}", "version = {new_version}")
	mod, err := ReplaceVersionInFile(path, []*FileChange{change}, parseVersion(t, "0.1.8"), parseVersion(t, "0.1.9"), map[string]string{}, true)
	require.NoError(t, err)
	require.True(t, mod.Changed())
	require.Equal(t, "version = 0.1.9\n", mod.After)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "version = 0.1.8\n", string(data))
}

func TestReplaceVersionInFile_MissingFile(t *testing.T) {
	change := defaultChange(t, "{current_version}", "{new_version}")
	missing := filepath.Join(t.TempDir(), "absent.txt")

	_, err := ReplaceVersionInFile(missing, []*FileChange{change}, parseVersion(t, "1.0.0"), parseVersion(t, "1.0.1"), map[string]string{}, false)
	require.ErrorIs(t, err, os.ErrNotExist)

	change.IgnoreMissingFile = true
	mod, err := ReplaceVersionInFile(missing, []*FileChange{change}, parseVersion(t, "1.0.0"), parseVersion(t, "1.0.1"), map[string]string{}, false)
	require.NoError(t, err)
	require.Nil(t, mod)
}

func TestReplaceVersionInFile_MissingFileNoChanges(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.txt")

	// An empty change list has nothing that could object to the absence.
	mod, err := ReplaceVersionInFile(missing, nil, parseVersion(t, "1.0.0"), parseVersion(t, "1.0.1"), map[string]string{}, false)
	require.NoError(t, err)
	require.Nil(t, mod)
}

func TestReplaceVersionInFile_Directory(t *testing.T) {
	change := defaultChange(t, "{current_version}", "{new_version}")
	change.IgnoreMissingFile = true

	// A directory is not a missing file; it is an error either way.
	_, err := ReplaceVersionInFile(t.TempDir(), []*FileChange{change}, parseVersion(t, "1.0.0"), parseVersion(t, "1.0.1"), map[string]string{}, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "is a directory")
}

func TestModification_Diff(t *testing.T) {
	unchanged := &Modification{Before: "same\n", After: "same\n"}
	require.Empty(t, unchanged.Diff("file.txt"))

	changed := &Modification{Before: "version = 1.0.0\n", After: "version = 1.0.1\n"}
	diff := changed.Diff("setup.py")
	require.NotEmpty(t, diff)
	require.Contains(t, diff, "setup.py (before)")
	require.Contains(t, diff, "setup.py (after)")
	require.Contains(t, diff, "-version = 1.0.0")
	require.Contains(t, diff, "+version = 1.0.1")
}

func TestFileChange_BumpFilters(t *testing.T) {
	change := &FileChange{}
	require.True(t, change.WillBumpComponent("major"), "nil include list applies to all components")
	require.False(t, change.WillNotBumpComponent("major"))

	change.IncludeBumps = []string{"minor", "patch"}
	require.False(t, change.WillBumpComponent("major"))
	require.True(t, change.WillBumpComponent("patch"))

	change.ExcludeBumps = []string{"patch"}
	require.True(t, change.WillNotBumpComponent("patch"))
}
