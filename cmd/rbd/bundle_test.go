// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Neylz/rechiseled-buildersdelight/internal/config"
)

// execute runs the root command with args and returns captured stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestBundleCommand(t *testing.T) {
	config.SetConfigDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "pack.mcmeta"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "scripts"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "scripts", "notes.txt"), []byte("n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".packignore"), []byte("scripts/\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "bundle", "--root", root)
	if err != nil {
		t.Fatalf("bundle command error = %v", err)
	}
	if !strings.Contains(out, "Bundle created") {
		t.Errorf("output missing completion message: %q", out)
	}

	r, err := zip.OpenReader(filepath.Join(root, "pack.zip"))
	if err != nil {
		t.Fatalf("archive not created: %v", err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	slices.Sort(names)
	want := []string{".packignore", "pack.mcmeta"}
	if !slices.Equal(names, want) {
		t.Errorf("archive entries = %v, want %v", names, want)
	}
}

func TestBundleCommandCustomOutput(t *testing.T) {
	config.SetConfigDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "bundle", "--root", root, "--output", "release.zip"); err != nil {
		t.Fatalf("bundle command error = %v", err)
	}
	t.Cleanup(func() { bundleOutput = "" })

	if _, err := os.Stat(filepath.Join(root, "release.zip")); err != nil {
		t.Errorf("custom-named archive missing: %v", err)
	}
}

func TestConfigShowCommand(t *testing.T) {
	config.SetConfigDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(out, "BuildersDelight") {
		t.Errorf("output missing upstream repo: %q", out)
	}
	if !strings.Contains(out, "pack.zip") {
		t.Errorf("output missing bundle default: %q", out)
	}
}
