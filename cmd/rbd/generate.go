// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Neylz/rechiseled-buildersdelight/internal/chisel"
	"github.com/Neylz/rechiseled-buildersdelight/internal/config"
)

var (
	// generateRef is the upstream branch or tag to read from
	generateRef string
	// generateOutput is the recipe output directory
	generateOutput string
	// generateToken is a GitHub token for authenticated requests
	generateToken string
)

// generateCmd regenerates chiseling recipes from upstream definitions
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate chiseling recipes from Builder's Delight",
	Long: `Download chisel definitions from the upstream Builder's Delight
repository and rewrite each one as a rechiseled:chiseling recipe.

The output directory is cleaned before generation, so recipes removed
upstream disappear from the datapack. Files that fail to download or parse
are logged and skipped; the rest of the run continues.

Unauthenticated GitHub API requests are limited to 60 per hour. Pass
--token (or set GITHUB_TOKEN) to raise the limit.

Examples:
  rbd generate
  rbd generate --ref 1.20.1
  rbd generate --output ./data/rechiseld/chiseling_recipes`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateRef, "ref", "", "upstream branch or tag (default from config: 1.20.1)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "recipe output directory (default from config)")
	generateCmd.Flags().StringVar(&generateToken, "token", "", "GitHub token (default: $GITHUB_TOKEN)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ref := generateRef
	if ref == "" {
		ref = cfg.Upstream.Ref
	}
	outputDir := generateOutput
	if outputDir == "" {
		outputDir = cfg.Generate.OutputDir
	}
	token := generateToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	absOutputDir, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}

	client := chisel.NewClient(
		chisel.WithRepo(cfg.Upstream.Owner, cfg.Upstream.Repo),
		chisel.WithPath(cfg.Upstream.Path),
		chisel.WithRef(ref),
		chisel.WithToken(token),
		chisel.WithUserAgent("rbd/"+Version),
	)
	gen := chisel.NewGenerator(client, absOutputDir, newLogger("generate"))

	stats, err := gen.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to generate recipes: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Generated %d recipe(s)\n", successIcon, stats.Generated)
	if stats.Skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Skipped %d file(s), see log output\n", warningIcon, stats.Skipped)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Output: %s\n", infoIcon, PathStyle.Render(absOutputDir))

	return nil
}
