// SPDX-License-Identifier: MPL-2.0

package packignore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Load reads and compiles patterns from a .packignore file.
//
// A missing file is not an error: absence means "ignore nothing" and yields
// an empty ruleset.
func Load(path string) (*Ruleset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Ruleset{}, nil
		}
		return nil, fmt.Errorf("open packignore file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse packignore file %s: %w", path, err)
	}

	return rs, nil
}

// Parse reads patterns from a reader, one per line. Blank lines and lines
// starting with "#" are skipped. Pattern order is preserved.
func Parse(r io.Reader) (*Ruleset, error) {
	s := bufio.NewScanner(r)
	rs := &Ruleset{}

	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p, err := Compile(line)
		if err != nil {
			return nil, err
		}
		rs.patterns = append(rs.patterns, p)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read patterns: %w", err)
	}

	return rs, nil
}
