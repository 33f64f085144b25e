// SPDX-License-Identifier: MPL-2.0

// Package packignore loads and evaluates .packignore files.
//
// A .packignore file lists one glob pattern per line. Blank lines and lines
// starting with "#" are skipped. A pattern ending with "/" targets a
// directory; any other pattern is matched against both the full relative
// path and the basename of a candidate. Globs use fnmatch semantics: "*"
// and "?" match any character including path separators, and "[seq]"
// matches a character class.
//
// Matching additionally tests every ancestor directory of a candidate path,
// so a pattern naming a directory excludes the whole subtree beneath it
// without requiring recursive glob syntax.
package packignore
