package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypedDirectives(t *testing.T) {
	raw := []byte(`import(stats)
importFrom(utils, head, tail)
export(run_widget, plot_widget)
exportPattern("^widget_")
S3method(print, widget)
useDynLib(widgets, .registration = TRUE)
`)
	list := Parse(raw)
	require.Len(t, list.Directives, 6)

	testCases := []struct {
		kind Kind
		args []string
	}{
		{KindImportAll, []string{"stats"}},
		{KindImportFrom, []string{"utils", "head", "tail"}},
		{KindExport, []string{"run_widget", "plot_widget"}},
		{KindExportPattern, []string{"^widget_"}},
		{KindS3Method, []string{"print", "widget"}},
		{KindUseDynLib, []string{"widgets", ".registration = TRUE"}},
	}
	for i, tc := range testCases {
		assert.Equal(t, tc.kind, list.Directives[i].Kind, "directive %d", i)
		assert.Equal(t, tc.args, list.Directives[i].Args, "directive %d", i)
		assert.Equal(t, i+1, list.Directives[i].Line)
	}
}

func TestParseMalformedLineBecomesRaw(t *testing.T) {
	raw := []byte(`export(a)
export(b)
this is nonsense
export(c)
export(d)
export(e)
export(f)
export(g)
export(h)
export(i)
`)
	list := Parse(raw)
	require.Len(t, list.Directives, 10)

	raws := list.ByKind(KindRaw)
	require.Len(t, raws, 1)
	assert.Equal(t, "this is nonsense", raws[0].Text)
	assert.Equal(t, 3, raws[0].Line)

	assert.Len(t, list.ByKind(KindExport), 9)
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	raw := []byte(`# generated by hand
export(a) # exported on purpose

import(stats)
`)
	list := Parse(raw)
	require.Len(t, list.Directives, 2)
	assert.Equal(t, KindExport, list.Directives[0].Kind)
	assert.Equal(t, KindImportAll, list.Directives[1].Kind)
}

func TestParseQuotedArguments(t *testing.T) {
	raw := []byte(`export("has spaces", 'single')` + "\n")
	list := Parse(raw)

	require.Len(t, list.Directives, 1)
	assert.Equal(t, []string{"has spaces", "single"}, list.Directives[0].Args)
}

func TestParseUnknownDirectiveIsRaw(t *testing.T) {
	list := Parse([]byte("exportClasses(widget)\n"))

	require.Len(t, list.Directives, 1)
	assert.Equal(t, KindRaw, list.Directives[0].Kind)
}

func TestParseArityFallsBackToRaw(t *testing.T) {
	list := Parse([]byte("S3method(print)\n"))

	require.Len(t, list.Directives, 1)
	assert.Equal(t, KindRaw, list.Directives[0].Kind)
}

func TestHasFlag(t *testing.T) {
	list := Parse([]byte("useDynLib(widgets, .registration = TRUE)\nuseDynLib(other)\n"))

	dynlibs := list.ByKind(KindUseDynLib)
	require.Len(t, dynlibs, 2)
	assert.True(t, dynlibs[0].HasFlag(".registration"))
	assert.False(t, dynlibs[1].HasFlag(".registration"))
}
