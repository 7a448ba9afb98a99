// Package rules holds the immutable rule catalog: per-rule metadata loaded
// from the embedded YAML catalog, joined by id to the predicate functions
// defined in this package. The catalog is loaded once per run and never
// mutated; no rule holds engine state.
package rules

import (
	_ "embed"
	"fmt"
	"sort"

	yaml "gopkg.in/yaml.v2"

	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/lexctx"
	"github.com/packlint/packlint/internal/parse"
	"github.com/packlint/packlint/internal/walker"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CheckFunc is a rule predicate: a pure function of the parsed file and its
// context tracker. Predicates must not retain either argument.
type CheckFunc func(r Rule, f *parse.File, tracker *lexctx.Tracker) []findings.Finding

// Rule is one catalog entry with its predicate resolved.
type Rule struct {
	ID       string
	Category string
	Severity findings.Severity
	Roles    []walker.FileRole
	Summary  string
	Hint     string
	// External marks checks executed outside the engine's predicate loop,
	// such as network-backed lookups. They have catalog metadata but no
	// predicate.
	External bool

	Check CheckFunc
}

// AppliesTo reports whether the rule runs against files of the given role.
func (r Rule) AppliesTo(role walker.FileRole) bool {
	for _, rr := range r.Roles {
		if rr == role {
			return true
		}
	}
	return false
}

// Finding builds a finding for this rule at the given location.
func (r Rule) Finding(f *parse.File, line, offset int, message string) findings.Finding {
	return findings.New(r.ID, r.Severity, f.RelPath, line, offset, message)
}

// Registry is the loaded catalog.
type Registry struct {
	rules  []Rule
	byID   map[string]int
	byRole map[walker.FileRole][]Rule
}

type catalogEntry struct {
	ID       string   `yaml:"id"`
	Category string   `yaml:"category"`
	Severity string   `yaml:"severity"`
	Roles    []string `yaml:"roles"`
	Summary  string   `yaml:"summary"`
	Hint     string   `yaml:"hint"`
	External bool     `yaml:"external"`
}

// Load parses the embedded catalog and joins each entry to its predicate.
// An entry without a predicate, or a predicate without an entry, is a
// startup error: the two halves of the catalog must stay in sync.
func Load() (*Registry, error) {
	var entries []catalogEntry
	if err := yaml.Unmarshal(catalogYAML, &entries); err != nil {
		return nil, fmt.Errorf("parsing rule catalog: %w", err)
	}

	registry := &Registry{
		byID:   make(map[string]int),
		byRole: make(map[walker.FileRole][]Rule),
	}

	for _, entry := range entries {
		if entry.ID == "" {
			return nil, fmt.Errorf("rule catalog entry with empty id")
		}
		if _, dup := registry.byID[entry.ID]; dup {
			return nil, fmt.Errorf("duplicate rule id %q in catalog", entry.ID)
		}

		severity, ok := findings.ParseSeverity(entry.Severity)
		if !ok {
			return nil, fmt.Errorf("rule %s: unknown severity %q", entry.ID, entry.Severity)
		}

		var roles []walker.FileRole
		for _, name := range entry.Roles {
			role, ok := walker.ParseRole(name)
			if !ok {
				return nil, fmt.Errorf("rule %s: unknown role %q", entry.ID, name)
			}
			roles = append(roles, role)
		}

		rule := Rule{
			ID:       entry.ID,
			Category: entry.Category,
			Severity: severity,
			Roles:    roles,
			Summary:  entry.Summary,
			Hint:     entry.Hint,
			External: entry.External,
		}

		check, hasCheck := builtinChecks[entry.ID]
		switch {
		case entry.External && hasCheck:
			return nil, fmt.Errorf("rule %s: external entries must not have a predicate", entry.ID)
		case !entry.External && !hasCheck:
			return nil, fmt.Errorf("rule %s: no predicate registered", entry.ID)
		}
		rule.Check = check

		registry.byID[rule.ID] = len(registry.rules)
		registry.rules = append(registry.rules, rule)
		for _, role := range roles {
			registry.byRole[role] = append(registry.byRole[role], rule)
		}
	}

	for id := range builtinChecks {
		if _, ok := registry.byID[id]; !ok {
			return nil, fmt.Errorf("predicate %s has no catalog entry", id)
		}
	}

	return registry, nil
}

// ForRole returns the rules applicable to a file role, in catalog order.
func (r *Registry) ForRole(role walker.FileRole) []Rule {
	return r.byRole[role]
}

// Get returns the rule with the given id.
func (r *Registry) Get(id string) (Rule, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Rule{}, false
	}
	return r.rules[idx], true
}

// All returns every rule sorted by id.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
