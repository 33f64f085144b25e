// SPDX-License-Identifier: MPL-2.0

package packignore

import (
	"path"
	"path/filepath"
	"strings"
)

// Ruleset holds an ordered list of compiled ignore patterns.
type Ruleset struct {
	patterns []*Pattern
}

// Len returns the number of patterns in the ruleset.
func (rs *Ruleset) Len() int { return len(rs.patterns) }

// Patterns returns the compiled patterns in file order.
func (rs *Ruleset) Patterns() []*Pattern { return rs.patterns }

// Match reports whether the path, given relative to the bundled root,
// should be ignored.
//
// Every pattern is tried against the full relative path (and, for
// slash-free patterns, the basename). Then every ancestor prefix of the
// path is tried against every pattern, so a pattern naming a directory
// excludes all of its descendants. First match wins.
func (rs *Ruleset) Match(rel string) bool {
	if len(rs.patterns) == 0 {
		return false
	}

	rel = filepath.ToSlash(rel)
	base := path.Base(rel)

	for _, p := range rs.patterns {
		if p.matchPath(rel, base) {
			return true
		}
	}

	parts := strings.Split(rel, "/")
	for i := range parts {
		prefix := strings.Join(parts[:i+1], "/")
		for _, p := range rs.patterns {
			if p.matchPrefix(prefix) {
				return true
			}
		}
	}

	return false
}

// MatchAbs is a convenience wrapper that relativizes path against root
// before matching. It returns false when path cannot be made relative.
func (rs *Ruleset) MatchAbs(p, root string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rs.Match(rel)
}
