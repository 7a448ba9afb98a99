package walker

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-hclog"
)

// FileRole classifies what kind of package file a path is, which decides the
// structural parser and the applicable rules.
type FileRole int

const (
	RoleUnclassified FileRole = iota
	RoleMetadata
	RoleDirectives
	RoleSource
	RoleDocumentation
	RoleVignette
	RoleData
	RoleInstalledResource
)

// String returns the role name used in logs and rule catalog entries.
func (r FileRole) String() string {
	switch r {
	case RoleMetadata:
		return "metadata"
	case RoleDirectives:
		return "directives"
	case RoleSource:
		return "source"
	case RoleDocumentation:
		return "documentation"
	case RoleVignette:
		return "vignette"
	case RoleData:
		return "data"
	case RoleInstalledResource:
		return "installed-resource"
	default:
		return "unclassified"
	}
}

// ParseRole maps a role name back to its FileRole.
func ParseRole(name string) (FileRole, bool) {
	switch strings.TrimSpace(name) {
	case "metadata":
		return RoleMetadata, true
	case "directives":
		return RoleDirectives, true
	case "source":
		return RoleSource, true
	case "documentation":
		return RoleDocumentation, true
	case "vignette":
		return RoleVignette, true
	case "data":
		return RoleData, true
	case "installed-resource":
		return RoleInstalledResource, true
	}
	return RoleUnclassified, false
}

// PackageFile is one enumerated file of the package tree.
type PackageFile struct {
	// Path is the absolute path on disk.
	Path string
	// RelPath is the slash-separated path relative to the package root.
	RelPath string
	// Role is the classification derived from RelPath.
	Role FileRole
}

// Walker enumerates and classifies the files of a package root.
type Walker struct {
	root     string
	excludes []string
	logger   hclog.Logger
}

// defaultExcludes are always skipped regardless of configuration.
var defaultExcludes = []string{
	".git/**",
	".svn/**",
	".Rproj.user/**",
	"**/.DS_Store",
}

// New creates a Walker for root with extra user-supplied exclude globs.
func New(root string, excludes []string, logger hclog.Logger) *Walker {
	return &Walker{
		root:     root,
		excludes: append(append([]string{}, defaultExcludes...), excludes...),
		logger:   logger,
	}
}

// Walk enumerates all regular files under the root, classifies each, and
// returns them sorted by relative path. Unclassified files are returned too;
// callers decide whether to skip them.
func (w *Walker) Walk() ([]PackageFile, error) {
	var result []PackageFile

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if w.excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			w.logger.Debug("skipping irregular file", "path", rel)
			return nil
		}

		result = append(result, PackageFile{
			Path:    path,
			RelPath: rel,
			Role:    Classify(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking package root %q: %w", w.root, err)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].RelPath < result[j].RelPath })
	return result, nil
}

func (w *Walker) excluded(rel string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			w.logger.Warn("invalid exclude pattern", "pattern", pattern, "error", err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// Classify derives the file role from the slash-separated relative path.
func Classify(rel string) FileRole {
	base := filepath.Base(rel)
	ext := strings.ToLower(filepath.Ext(base))
	top := rel
	if idx := strings.IndexByte(rel, '/'); idx >= 0 {
		top = rel[:idx]
	} else {
		top = ""
	}

	switch {
	case rel == "DESCRIPTION":
		return RoleMetadata
	case rel == "NAMESPACE":
		return RoleDirectives
	case top == "R" && isSourceExt(ext):
		return RoleSource
	case top == "tests" && isSourceExt(ext):
		return RoleSource
	case top == "man" && ext == ".rd":
		return RoleDocumentation
	case top == "vignettes" && (ext == ".rmd" || ext == ".rnw"):
		return RoleVignette
	case top == "data":
		return RoleData
	case top == "inst":
		return RoleInstalledResource
	default:
		return RoleUnclassified
	}
}

func isSourceExt(ext string) bool {
	switch ext {
	case ".r", ".s", ".q":
		return true
	}
	return false
}
