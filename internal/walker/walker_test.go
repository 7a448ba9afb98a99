package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTree(t *testing.T, rels ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
	return root
}

func TestWalkEnumeratesSorted(t *testing.T) {
	root := seedTree(t,
		"R/b.R",
		"R/a.R",
		"DESCRIPTION",
		"man/widget.Rd",
	)

	w := New(root, nil, hclog.NewNullLogger())
	got, err := w.Walk()
	require.NoError(t, err)

	var rels []string
	for _, pf := range got {
		rels = append(rels, pf.RelPath)
	}
	assert.Equal(t, []string{"DESCRIPTION", "R/a.R", "R/b.R", "man/widget.Rd"}, rels)
}

func TestWalkDefaultExcludes(t *testing.T) {
	root := seedTree(t,
		"DESCRIPTION",
		".git/HEAD",
		".Rproj.user/state",
		"R/.DS_Store",
	)

	w := New(root, nil, hclog.NewNullLogger())
	got, err := w.Walk()
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "DESCRIPTION", got[0].RelPath)
}

func TestWalkUserExcludes(t *testing.T) {
	root := seedTree(t,
		"R/a.R",
		"R/zzz-generated.R",
		"man/widget.Rd",
	)

	w := New(root, []string{"R/zzz-*.R", "man/**"}, hclog.NewNullLogger())
	got, err := w.Walk()
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "R/a.R", got[0].RelPath)
}

func TestWalkMissingRoot(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent"), nil, hclog.NewNullLogger())
	_, err := w.Walk()
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	cases := map[string]FileRole{
		"DESCRIPTION":          RoleMetadata,
		"NAMESPACE":            RoleDirectives,
		"R/widget.R":           RoleSource,
		"R/compat.q":           RoleSource,
		"tests/testthat.R":     RoleSource,
		"man/widget.Rd":        RoleDocumentation,
		"man/widget.rd":        RoleDocumentation,
		"vignettes/intro.Rmd":  RoleVignette,
		"vignettes/legacy.Rnw": RoleVignette,
		"data/widgets.rda":     RoleData,
		"inst/CITATION":        RoleInstalledResource,
		"README.md":            RoleUnclassified,
		"src/init.c":           RoleUnclassified,
		"R/notes.txt":          RoleUnclassified,
	}
	for rel, want := range cases {
		assert.Equal(t, want, Classify(rel), rel)
	}
}

func TestRoleNamesRoundTrip(t *testing.T) {
	for _, role := range []FileRole{
		RoleMetadata, RoleDirectives, RoleSource, RoleDocumentation,
		RoleVignette, RoleData, RoleInstalledResource,
	} {
		parsed, ok := ParseRole(role.String())
		assert.True(t, ok, role.String())
		assert.Equal(t, role, parsed)
	}

	_, ok := ParseRole("sources")
	assert.False(t, ok)
}
