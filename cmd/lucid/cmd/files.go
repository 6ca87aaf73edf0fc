package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// expandGlobs turns a list of glob patterns (or bare file paths) into an
// ordered, de-duplicated file list. This is the file-discovery layer
// spec.md §1 explicitly keeps out of the core packages — only the CLI
// walks directories or expands a pattern.
func expandGlobs(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// patternsOrDefault returns args unchanged when the caller gave at least
// one file/glob; otherwise it falls back to ext globbed under LUCID_SRC
// (set directly, or via loadDotenv from .lucidrc/.env), the default
// search root for source/bytecode files when no argument is given.
func patternsOrDefault(args []string, ext string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	root := os.Getenv("LUCID_SRC")
	if root == "" {
		return nil, fmt.Errorf("no file/glob given and LUCID_SRC is not set")
	}
	return []string{filepath.Join(root, "**", "*."+ext)}, nil
}
