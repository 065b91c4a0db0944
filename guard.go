package llmstxt

import (
	"path/filepath"
	"strings"
)

// Wildcard is the allowlist entry that permits every remote hostname.
const Wildcard = "*"

// Allowlist is the set of hostnames permitted for remote fetches.
// The zero value allows nothing.
type Allowlist struct {
	domains []string
	set     map[string]struct{}
}

// NewAllowlist returns an allowlist of the given domains. Entries are
// trimmed and lowercased; empty entries and duplicates are dropped.
func NewAllowlist(domains ...string) Allowlist {
	a := Allowlist{set: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if _, ok := a.set[d]; ok {
			continue
		}
		a.set[d] = struct{}{}
		a.domains = append(a.domains, d)
	}
	return a
}

// Allows reports whether hostname may be fetched. Matching is exact: an
// entry for example.com does not admit sub.example.com.
func (a Allowlist) Allows(hostname string) bool {
	if _, ok := a.set[Wildcard]; ok {
		return true
	}
	_, ok := a.set[hostname]
	return ok
}

// Domains returns the entries in insertion order.
func (a Allowlist) Domains() []string {
	return append([]string(nil), a.domains...)
}

// Len returns the number of entries.
func (a Allowlist) Len() int {
	return len(a.domains)
}

// String returns the entries joined for diagnostics.
func (a Allowlist) String() string {
	if len(a.domains) == 0 {
		return "(none)"
	}
	return strings.Join(a.domains, ", ")
}

// Guard decides whether a resolved target may be fetched.
type Guard interface {
	// CheckAccess returns EFORBIDDEN when the target is not permitted.
	// Remote checks perform no I/O.
	CheckAccess(t *Target) error
}

var _ Guard = (*AccessPolicy)(nil)

// AccessPolicy is the Guard built from startup configuration.
type AccessPolicy struct {
	// Allowlist gates remote targets.
	Allowlist Allowlist

	// LocalRoots confines local reads to these absolute directories.
	// When empty, every local path is allowed. When set, symlinks in both
	// the roots and the target path are resolved before comparing, the only
	// filesystem access the policy performs.
	LocalRoots []string
}

// CheckAccess implements Guard.
func (p *AccessPolicy) CheckAccess(t *Target) error {
	switch t.Kind {
	case TargetRemote:
		if !p.Allowlist.Allows(t.Hostname) {
			return &Error{
				Code:    EFORBIDDEN,
				Message: "Access denied: fetching from domain '" + t.Hostname + "' is not allowed (allowed domains: " + p.Allowlist.String() + ")",
			}
		}
		return nil
	case TargetFileURL, TargetLocalPath:
		if len(p.LocalRoots) == 0 {
			return nil
		}
		path := realPath(t.Path)
		for _, root := range p.LocalRoots {
			if withinRoot(realPath(root), path) {
				return nil
			}
		}
		return Errorf(EFORBIDDEN, "Access denied: path '%s' is outside the allowed roots (%s)", t.Path, strings.Join(p.LocalRoots, ", "))
	default:
		return Errorf(EINTERNAL, "unsupported target type %q during access check", t.Kind)
	}
}

func withinRoot(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// realPath resolves symlinks in path. Missing trailing elements are kept
// as written under the nearest existing ancestor, so a file that does not
// exist yet is judged by where it would live.
func realPath(path string) string {
	path = filepath.Clean(path)
	var rest []string
	for dir := path; ; {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return path
		}
		rest = append([]string{filepath.Base(dir)}, rest...)
		dir = parent
	}
}
