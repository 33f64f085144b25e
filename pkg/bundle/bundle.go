// SPDX-License-Identifier: MPL-2.0

// Package bundle walks a pack directory and writes its contents into a
// deflate-compressed zip archive, honoring .packignore exclusions.
//
// Archive entries are keyed by forward-slash paths relative to the bundled
// root. Ignored directories are pruned from the walk, so nothing beneath
// them is ever visited, and the output archive never includes itself when
// it lives inside the root.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Neylz/rechiseled-buildersdelight/pkg/packignore"
)

const (
	// DefaultOutput is the archive filename used when none is configured.
	DefaultOutput = "pack.zip"
	// DefaultIgnoreFile is the ignore-file name used when none is configured.
	DefaultIgnoreFile = ".packignore"
)

// Options configures a bundling run.
type Options struct {
	// Root is the directory to bundle. Empty means the current directory.
	Root string
	// Output is the archive path. Relative paths resolve against Root.
	Output string
	// IgnoreFile is the .packignore path. Relative paths resolve against Root.
	IgnoreFile string
	// Logger receives per-file progress at debug level. Nil discards.
	Logger *log.Logger
}

// Result describes a completed bundling run.
type Result struct {
	// Path is the absolute path of the written archive.
	Path string
	// Files is the number of entries written.
	Files int
}

// Create bundles the root directory into a zip archive and returns the
// result. The archive file is created (or overwritten) at the resolved
// output path; on failure the partial archive is removed.
func Create(opts Options) (*Result, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	output := opts.Output
	if output == "" {
		output = DefaultOutput
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(absRoot, output)
	}

	ignoreFile := opts.IgnoreFile
	if ignoreFile == "" {
		ignoreFile = DefaultIgnoreFile
	}
	if !filepath.IsAbs(ignoreFile) {
		ignoreFile = filepath.Join(absRoot, ignoreFile)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rules, err := packignore.Load(ignoreFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded ignore patterns", "file", ignoreFile, "count", rules.Len())

	zipFile, err := os.Create(output)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	zipWriter := zip.NewWriter(zipFile)

	outputBase := filepath.Base(output)
	files := 0

	walkErr := filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absRoot {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}

		if d.IsDir() {
			if rules.Match(rel) {
				logger.Debug("pruning ignored directory", "path", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if rules.Match(rel) {
			logger.Debug("skipping ignored file", "path", rel)
			return nil
		}
		// The archive must never include itself when nested inside the root.
		if d.Name() == outputBase {
			logger.Debug("skipping output archive", "path", rel)
			return nil
		}

		fileData, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}

		fileInfo, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info: %w", err)
		}

		header, err := zip.FileInfoHeader(fileInfo)
		if err != nil {
			return fmt.Errorf("failed to create file header: %w", err)
		}
		header.Name = filepath.ToSlash(rel)
		header.Method = zip.Deflate

		writer, err := zipWriter.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create archive entry: %w", err)
		}
		if _, err := writer.Write(fileData); err != nil {
			return fmt.Errorf("failed to write file data: %w", err)
		}

		logger.Debug("added file", "path", rel, "size", fileInfo.Size())
		files++
		return nil
	})

	if walkErr != nil {
		zipWriter.Close()
		zipFile.Close()
		os.Remove(output)
		return nil, fmt.Errorf("failed to bundle %s: %w", absRoot, walkErr)
	}

	if err := zipWriter.Close(); err != nil {
		zipFile.Close()
		os.Remove(output)
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := zipFile.Close(); err != nil {
		os.Remove(output)
		return nil, fmt.Errorf("failed to close archive: %w", err)
	}

	return &Result{Path: output, Files: files}, nil
}
