// SPDX-License-Identifier: MPL-2.0

package packignore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	rs, err := Load(filepath.Join(t.TempDir(), ".packignore"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if rs.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rs.Len())
	}
	if rs.Match("anything.txt") {
		t.Error("empty ruleset must not match anything")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".packignore")
	content := "# build artifacts\nbuild/\n\n*.zip\n  spaced.txt  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rs, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rs.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", rs.Len())
	}

	got := make([]string, 0, rs.Len())
	for _, p := range rs.Patterns() {
		got = append(got, p.String())
	}
	want := []string{"build/", "*.zip", "spaced.txt"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pattern %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseCRLF(t *testing.T) {
	rs, err := Parse(strings.NewReader("skip/\r\n*.tmp\r\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", rs.Len())
	}
	if !rs.Match("skip/b.txt") {
		t.Error("CRLF directory pattern should still match")
	}
}
