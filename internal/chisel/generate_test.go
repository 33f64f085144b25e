// SPDX-License-Identifier: MPL-2.0

package chisel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newUpstream builds a test server mimicking the GitHub contents API for a
// set of chisel definitions (filename -> variants). Filenames listed in
// broken get a 500 on download.
func newUpstream(t *testing.T, defs map[string][]string, broken ...string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/repos/") {
			entries := make([]ContentEntry, 0, len(defs))
			for name := range defs {
				entries = append(entries, ContentEntry{
					Name:        name,
					Type:        "file",
					DownloadURL: srv.URL + "/download/" + name,
				})
			}
			if err := json.NewEncoder(w).Encode(entries); err != nil {
				t.Error(err)
			}
			return
		}

		name := strings.TrimPrefix(r.URL.Path, "/download/")
		for _, b := range broken {
			if name == b {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}
		variants, ok := defs[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := json.NewEncoder(w).Encode(Definition{Variants: variants}); err != nil {
			t.Error(err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeneratorRun(t *testing.T) {
	srv := newUpstream(t, map[string][]string{
		"acacia_frame.json": {"buildersdelight:acacia_plank_1", "buildersdelight:acacia_plank_2"},
		"spruce_log.json":   {"buildersdelight:spruce_log_1"},
	})

	out := filepath.Join(t.TempDir(), "chiseling_recipes")
	g := NewGenerator(NewClient(WithBaseURL(srv.URL)), out, nil)

	stats, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Generated != 2 || stats.Skipped != 0 {
		t.Errorf("stats = %+v, want 2 generated, 0 skipped", stats)
	}

	data, err := os.ReadFile(filepath.Join(out, "acacia_planks.json"))
	if err != nil {
		t.Fatalf("expected recipe not written: %v", err)
	}
	var recipe Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		t.Fatalf("written recipe is not valid JSON: %v", err)
	}
	if recipe.Type != RecipeType {
		t.Errorf("Type = %q, want %q", recipe.Type, RecipeType)
	}
	if len(recipe.Entries) != 2 {
		t.Errorf("len(Entries) = %d, want 2", len(recipe.Entries))
	}

	if _, err := os.Stat(filepath.Join(out, "spruce_log.json")); err != nil {
		t.Errorf("log-family recipe missing: %v", err)
	}
}

func TestGeneratorRunCleansOutputDir(t *testing.T) {
	srv := newUpstream(t, map[string][]string{
		"oak_frame.json": {"buildersdelight:oak_plank_1"},
	})

	out := filepath.Join(t.TempDir(), "chiseling_recipes")
	if err := os.MkdirAll(out, 0755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(out, "removed_upstream_planks.json")
	if err := os.WriteFile(stale, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	g := NewGenerator(NewClient(WithBaseURL(srv.URL)), out, nil)
	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale recipe survived the run")
	}
	if _, err := os.Stat(filepath.Join(out, "oak_planks.json")); err != nil {
		t.Errorf("fresh recipe missing: %v", err)
	}
}

func TestGeneratorRunPartialFailure(t *testing.T) {
	srv := newUpstream(t, map[string][]string{
		"acacia_frame.json": {"buildersdelight:acacia_plank_1"},
		"broken_frame.json": {"unused"},
		"empty_frame.json":  {},
	}, "broken_frame.json")

	out := filepath.Join(t.TempDir(), "chiseling_recipes")
	g := NewGenerator(NewClient(WithBaseURL(srv.URL)), out, nil)

	stats, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v, want nil (per-file failures are tolerated)", err)
	}
	if stats.Generated != 1 {
		t.Errorf("Generated = %d, want 1", stats.Generated)
	}
	if stats.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", stats.Skipped)
	}

	if _, err := os.Stat(filepath.Join(out, "acacia_planks.json")); err != nil {
		t.Errorf("healthy recipe missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "broken_planks.json")); !os.IsNotExist(err) {
		t.Error("broken definition produced a recipe")
	}
}

func TestGeneratorRunListFailureAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "chiseling_recipes")
	g := NewGenerator(NewClient(WithBaseURL(srv.URL)), out, nil)

	if _, err := g.Run(context.Background()); err == nil {
		t.Fatal("Run() error = nil, want non-nil on listing failure")
	}
}

func TestGeneratorRunCanceledContext(t *testing.T) {
	srv := newUpstream(t, map[string][]string{
		"oak_frame.json": {"buildersdelight:oak_plank_1"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "chiseling_recipes")
	g := NewGenerator(NewClient(WithBaseURL(srv.URL)), out, nil)

	if _, err := g.Run(ctx); err == nil {
		t.Fatal("Run() error = nil, want context error")
	}
}
