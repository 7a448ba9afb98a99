package parse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlint/packlint/internal/walker"
)

func TestFromBytesPopulatesByRole(t *testing.T) {
	metadata := FromBytes("DESCRIPTION", walker.RoleMetadata, []byte("Package: widgets\n"))
	require.NotNil(t, metadata.Metadata)
	assert.Nil(t, metadata.Stream)

	directives := FromBytes("NAMESPACE", walker.RoleDirectives, []byte("export(widget)\n"))
	require.NotNil(t, directives.Directives)

	source := FromBytes("R/a.R", walker.RoleSource, []byte("x <- 1\n"))
	require.NotNil(t, source.Stream)
	require.NotNil(t, source.Tracker)

	doc := FromBytes("man/a.Rd", walker.RoleDocumentation, []byte("\\name{a}\n"))
	require.NotNil(t, doc.Doc)
	require.NotNil(t, doc.Tracker)
}

func TestFromBytesRawRoleHasSafeTracker(t *testing.T) {
	f := FromBytes("inst/CITATION", walker.RoleInstalledResource, []byte("citHeader('x')\n"))

	assert.Nil(t, f.Metadata)
	assert.Nil(t, f.Stream)
	require.NotNil(t, f.Tracker)

	// Context queries on a raw role degrade to "no context", never panic.
	assert.False(t, f.Tracker.CommentOrStringAt(0))
	assert.Empty(t, f.Tracker.EnclosingClosureChainAt(0))
}

func TestLoadReadsFromDisk(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "DESCRIPTION")
	require.NoError(t, os.WriteFile(path, []byte("Package: widgets\nVersion: 0.1.0\n"), 0o644))

	f, err := Load(walker.PackageFile{Path: path, RelPath: "DESCRIPTION", Role: walker.RoleMetadata})
	require.NoError(t, err)

	field, ok := f.Metadata.Get("Version")
	require.True(t, ok)
	assert.Equal(t, "0.1.0", field.Value)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(walker.PackageFile{
		Path:    filepath.Join(t.TempDir(), "absent"),
		RelPath: "R/absent.R",
		Role:    walker.RoleSource,
	})
	assert.Error(t, err)
}

func TestLineAtForRawRole(t *testing.T) {
	f := FromBytes("inst/NEWS", walker.RoleInstalledResource, []byte("one\ntwo\nthree\n"))

	assert.Equal(t, 1, f.LineAt(0))
	assert.Equal(t, 2, f.LineAt(4))
	assert.Equal(t, 3, f.LineAt(8))
	assert.Equal(t, 1, f.LineAt(-5))
}
