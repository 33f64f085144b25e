// SPDX-License-Identifier: MPL-2.0

package chisel

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Generator orchestrates one recipe-generation run: list upstream
// definitions, convert each to a chiseling recipe, write the results.
type Generator struct {
	client    *Client
	outputDir string
	logger    *log.Logger
}

// Stats summarizes a completed generation run.
type Stats struct {
	// Generated is the number of recipe files written.
	Generated int
	// Skipped is the number of upstream files skipped due to download,
	// parse, or write errors, or empty variant lists.
	Skipped int
}

// NewGenerator creates a Generator writing recipes into outputDir.
// A nil logger discards all output.
func NewGenerator(client *Client, outputDir string, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{
		client:    client,
		outputDir: outputDir,
		logger:    logger,
	}
}

// Run executes one generation pass. The output directory is recreated from
// scratch so stale recipes never survive an upstream removal. Per-file
// failures are logged and skipped; a directory-listing failure aborts the
// whole run.
func (g *Generator) Run(ctx context.Context) (*Stats, error) {
	if err := g.cleanOutputDir(); err != nil {
		return nil, err
	}

	files, err := g.client.ListChiselFiles(ctx)
	if err != nil {
		return nil, err
	}
	g.logger.Info("fetched chisel file list", "count", len(files))

	stats := &Stats{}
	for _, file := range files {
		select {
		case <-ctx.Done():
			return stats, fmt.Errorf("generation canceled: %w", ctx.Err())
		default:
		}

		if err := g.processFile(ctx, file); err != nil {
			g.logger.Warn("skipping chisel file", "file", file.Name, "err", err)
			stats.Skipped++
			continue
		}
		stats.Generated++
	}

	g.logger.Info("generation complete", "generated", stats.Generated, "skipped", stats.Skipped)
	return stats, nil
}

// processFile converts one upstream definition into a recipe file.
func (g *Generator) processFile(ctx context.Context, file ContentEntry) error {
	def, err := g.client.FetchDefinition(ctx, file.DownloadURL)
	if err != nil {
		return err
	}
	if len(def.Variants) == 0 {
		return fmt.Errorf("no variants found")
	}

	recipe := NewRecipe(def.Variants)
	data, err := recipe.Marshal()
	if err != nil {
		return fmt.Errorf("encoding recipe: %w", err)
	}

	name := PlankName(file.Name) + ".json"
	outputPath := filepath.Join(g.outputDir, name)
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing recipe: %w", err)
	}

	g.logger.Debug("generated recipe", "file", file.Name, "recipe", name, "variants", len(def.Variants))
	return nil
}

// cleanOutputDir removes and recreates the output directory.
func (g *Generator) cleanOutputDir() error {
	if err := os.RemoveAll(g.outputDir); err != nil {
		return fmt.Errorf("cleaning output directory: %w", err)
	}
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}
