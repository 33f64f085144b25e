// SPDX-License-Identifier: MPL-2.0

package packignore

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is one compiled ignore rule.
type Pattern struct {
	// text is the original pattern line.
	text string
	// re matches the full pattern text.
	re *regexp.Regexp
	// trimRe matches the pattern without its trailing slash; nil unless dirOnly.
	trimRe *regexp.Regexp
	// dirOnly means the source line ended with a path separator.
	dirOnly bool
}

// Compile turns one pattern line into its compiled form.
func Compile(text string) (*Pattern, error) {
	p := &Pattern{
		text:    text,
		dirOnly: strings.HasSuffix(text, "/"),
	}

	re, err := globRegexp(text)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", text, err)
	}
	p.re = re

	if p.dirOnly {
		trimRe, err := globRegexp(strings.TrimSuffix(text, "/"))
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", text, err)
		}
		p.trimRe = trimRe
	}

	return p, nil
}

// String returns the original pattern line.
func (p *Pattern) String() string { return p.text }

// DirOnly reports whether the pattern targets a directory.
func (p *Pattern) DirOnly() bool { return p.dirOnly }

// matchPath tests a full relative path and its basename against the pattern.
func (p *Pattern) matchPath(rel, base string) bool {
	if p.dirOnly {
		return p.re.MatchString(rel+"/") || p.trimRe.MatchString(rel)
	}
	return p.re.MatchString(rel) || p.re.MatchString(base)
}

// matchPrefix tests an ancestor directory path against the pattern.
// Unlike matchPath there is no basename fallback: a prefix is always a
// path from the root.
func (p *Pattern) matchPrefix(prefix string) bool {
	if p.dirOnly {
		return p.re.MatchString(prefix + "/")
	}
	return p.re.MatchString(prefix)
}

// globRegexp translates an fnmatch-style glob into an anchored regexp.
// "*" and "?" deliberately match path separators, matching shell fnmatch
// behavior rather than gitignore behavior.
func globRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			j := i + 1
			if j < len(pattern) && (pattern[j] == '!' || pattern[j] == '^') {
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				j++
			}
			for j < len(pattern) && pattern[j] != ']' {
				j++
			}
			if j >= len(pattern) {
				// Unterminated class is a literal bracket.
				b.WriteString(`\[`)
				continue
			}
			seq := pattern[i+1 : j]
			seq = strings.ReplaceAll(seq, `\`, `\\`)
			if rest, ok := strings.CutPrefix(seq, "!"); ok {
				seq = "^" + rest
			}
			b.WriteString("[" + seq + "]")
			i = j
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString("$")
	return regexp.Compile(b.String())
}
