// Package snapfile stores accepted snapshots and their pending candidates
// under a test package's testdata directory.
package snapfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specimen-dev/specimen/internal/atomicfile"
)

const (
	// DefaultDir is where snapshots live, relative to the test file's
	// directory.
	DefaultDir = "testdata/snapshots"

	// Ext marks an accepted snapshot file.
	Ext = ".snap"

	// CandidateExt marks a snapshot that has been recorded but not yet
	// accepted.
	CandidateExt = Ext + ".new"
)

// ErrInvalidName rejects snapshot names that are not single path segments.
var ErrInvalidName = errors.New("invalid snapshot name")

// Path returns the snapshot file for a named snapshot taken in sourceFile.
// A non-empty dir overrides the default snapshot directory, relative to the
// source file's directory.
func Path(sourceFile, dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if dir == "" {
		dir = DefaultDir
	}
	base := strings.TrimSuffix(filepath.Base(sourceFile), ".go")
	return filepath.Join(filepath.Dir(sourceFile), dir, base+"__"+name+Ext), nil
}

// Candidate returns the pending twin of an accepted snapshot path.
func Candidate(path string) string {
	return path + ".new"
}

// Accepted returns the accepted path for a candidate snapshot.
func Accepted(candidatePath string) string {
	return strings.TrimSuffix(candidatePath, ".new")
}

// IsCandidate reports whether path names a candidate snapshot.
func IsCandidate(path string) bool {
	return strings.HasSuffix(path, CandidateExt)
}

// Read returns the snapshot content stored at path: the file's bytes less
// the final newline Write adds.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read snapshot: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// Write stores content at path, creating the snapshot directory as needed.
// The stored file is content plus a final newline. Writing content a file
// already holds leaves the file untouched.
func Write(path, content string) error {
	data := []byte(content + "\n")

	if existing, err := os.ReadFile(path); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Promote renames a candidate over its accepted snapshot.
func Promote(candidatePath string) error {
	if !IsCandidate(candidatePath) {
		return fmt.Errorf("not a candidate snapshot: %s", candidatePath)
	}
	if err := os.Rename(candidatePath, Accepted(candidatePath)); err != nil {
		return fmt.Errorf("promote snapshot: %w", err)
	}
	return nil
}

// Discard deletes a candidate snapshot. Discarding an absent candidate is
// not an error.
func Discard(candidatePath string) error {
	if !IsCandidate(candidatePath) {
		return fmt.Errorf("not a candidate snapshot: %s", candidatePath)
	}
	err := os.Remove(candidatePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("discard snapshot: %w", err)
	}
	return nil
}

// ScanCandidates walks root and returns every candidate snapshot, sorted
// by path. The .git directory is skipped.
func ScanCandidates(root string) ([]string, error) {
	var candidates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}
		if IsCandidate(path) {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Strings(candidates)
	return candidates, nil
}
