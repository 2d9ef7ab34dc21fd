package report

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Listing is a directory tree rendered for comparison: one entry per file
// or directory, parents before children, siblings in lexical order.
type Listing struct {
	entries []string
}

// List walks root and returns its listing. Entries show the
// slash-separated path relative to root, indented two spaces per
// directory level; root itself is not listed and .git is skipped.
func List(root string) (Listing, error) {
	var entries []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		depth := strings.Count(rel, "/")
		entries = append(entries, strings.Repeat("  ", depth+1)+rel)
		return nil
	})
	if err != nil {
		return Listing{}, fmt.Errorf("walk %s: %w", root, err)
	}
	return Listing{entries: entries}, nil
}

// String renders the listing one entry per line.
func (l Listing) String() string {
	if len(l.entries) == 0 {
		return ""
	}
	return strings.Join(l.entries, "\n") + "\n"
}

// Len returns the number of entries.
func (l Listing) Len() int {
	return len(l.entries)
}

// TreeDiff returns a unified diff of two listings, or "" when they are
// identical. Additions and removals carry +/- prefixes and context lines
// keep the indented tree shape.
func TreeDiff(oldLabel, newLabel string, before, after Listing) string {
	return UnifiedDiff(oldLabel, newLabel, before.String(), after.String())
}
