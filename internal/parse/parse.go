// Package parse runs the role-specific structural parser for one package
// file and builds its context tracker. A File is owned by the per-file
// processing step and never shared between workers.
package parse

import (
	"fmt"
	"os"
	"sort"

	"github.com/packlint/packlint/internal/dcf"
	"github.com/packlint/packlint/internal/lexctx"
	"github.com/packlint/packlint/internal/namespace"
	"github.com/packlint/packlint/internal/rdoc"
	"github.com/packlint/packlint/internal/rlang"
	"github.com/packlint/packlint/internal/walker"
)

// File is one parsed package file. Exactly the structure matching the role
// is populated; the rest stay nil. Roles without a structural parser keep
// only the raw bytes.
type File struct {
	RelPath string
	Role    walker.FileRole
	Raw     []byte

	Metadata   *dcf.Record
	Directives *namespace.List
	Stream     *rlang.TokenStream
	Doc        *rdoc.Tree

	Tracker *lexctx.Tracker

	lineStarts []int
}

// Load reads the file's bytes and parses them according to its role.
func Load(pf walker.PackageFile) (*File, error) {
	raw, err := os.ReadFile(pf.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", pf.RelPath, err)
	}
	return FromBytes(pf.RelPath, pf.Role, raw), nil
}

// FromBytes parses already-read content. Split out from Load so tests and
// predicates can build files without touching the filesystem.
func FromBytes(relPath string, role walker.FileRole, raw []byte) *File {
	f := &File{RelPath: relPath, Role: role, Raw: raw}

	switch role {
	case walker.RoleMetadata:
		f.Metadata = dcf.Parse(raw)
	case walker.RoleDirectives:
		f.Directives = namespace.Parse(raw)
	case walker.RoleSource:
		f.Stream = rlang.Scan(raw)
		f.Tracker = lexctx.FromSource(f.Stream)
	case walker.RoleDocumentation:
		f.Doc = rdoc.Parse(raw)
		f.Tracker = lexctx.FromDoc(f.Doc)
	}

	if f.Tracker == nil {
		f.Tracker = &lexctx.Tracker{}
	}
	return f
}

// LineAt converts a byte offset to a 1-based line number, whatever the role.
func (f *File) LineAt(offset int) int {
	switch {
	case f.Stream != nil:
		return f.Stream.LineAt(offset)
	case f.Doc != nil:
		return f.Doc.LineAt(offset)
	}
	if f.lineStarts == nil {
		f.lineStarts = []int{0}
		for i, c := range f.Raw {
			if c == '\n' {
				f.lineStarts = append(f.lineStarts, i+1)
			}
		}
	}
	if offset < 0 {
		return 1
	}
	idx := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	})
	return idx
}
