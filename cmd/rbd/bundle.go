// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Neylz/rechiseled-buildersdelight/internal/config"
	"github.com/Neylz/rechiseled-buildersdelight/pkg/bundle"
)

var (
	// bundleRoot is the pack directory to bundle
	bundleRoot string
	// bundleOutput is the output archive filename
	bundleOutput string
	// bundlePackignore is the ignore-file path
	bundlePackignore string
)

// bundleCmd bundles the pack into a zip archive
var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Bundle the pack into a zip archive",
	Long: `Bundle the pack directory into a deflate-compressed zip archive.

Files and directories matching patterns in the .packignore file are
excluded. Patterns use shell-glob syntax; a trailing "/" marks a directory
pattern, and a pattern matching any ancestor directory excludes the whole
subtree beneath it. The output archive never includes itself.

Examples:
  rbd bundle
  rbd bundle --output release.zip
  rbd bundle --root ./pack --packignore .distignore`,
	RunE: runBundle,
}

func init() {
	bundleCmd.Flags().StringVar(&bundleRoot, "root", ".", "pack directory to bundle")
	bundleCmd.Flags().StringVarP(&bundleOutput, "output", "o", "", "output zip filename (default from config: pack.zip)")
	bundleCmd.Flags().StringVar(&bundlePackignore, "packignore", "", "path to packignore file (default from config: .packignore)")
}

func runBundle(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	output := bundleOutput
	if output == "" {
		output = cfg.Bundle.Output
	}
	ignoreFile := bundlePackignore
	if ignoreFile == "" {
		ignoreFile = cfg.Bundle.Packignore
	}

	res, err := bundle.Create(bundle.Options{
		Root:       bundleRoot,
		Output:     output,
		IgnoreFile: ignoreFile,
		Logger:     newLogger("bundle"),
	})
	if err != nil {
		return fmt.Errorf("failed to bundle pack: %w", err)
	}

	info, err := os.Stat(res.Path)
	if err != nil {
		return fmt.Errorf("failed to stat output file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Bundle created: %s\n", successIcon, PathStyle.Render(res.Path))
	fmt.Fprintf(cmd.OutOrStdout(), "%s Files: %d\n", infoIcon, res.Files)
	fmt.Fprintf(cmd.OutOrStdout(), "%s Size: %s\n", infoIcon, formatFileSize(info.Size()))

	return nil
}

// formatFileSize formats a file size in bytes to a human-readable string
func formatFileSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
