// Package pending journals inline snapshot updates beside their test files
// until they are applied or discarded. Each source file gets one JSONL
// journal; parallel test processes serialize appends on a file lock.
package pending

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// Extension marks a pending journal beside its source file.
const Extension = ".pending-snap"

const maxJSONLineBytes = 1024 * 1024

// Record is one journaled update for an inline placeholder.
type Record struct {
	File       string    `json:"file"`
	Line       int       `json:"line"`
	Kind       string    `json:"kind"`
	Old        string    `json:"old"`
	New        string    `json:"new"`
	RecordedAt time.Time `json:"recorded_at"`
}

// JournalPath returns the journal path for a source file.
func JournalPath(sourceFile string) string {
	return sourceFile + Extension
}

// SourcePath returns the source file a journal belongs to.
func SourcePath(journalPath string) string {
	return strings.TrimSuffix(journalPath, Extension)
}

// Append adds record to the journal beside record.File, replacing any
// earlier record for the same line.
func Append(record Record) error {
	path := JournalPath(record.File)
	err := lockedfile.Transform(path, func(data []byte) ([]byte, error) {
		records, err := decode(data)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
		return encode(dedupe(records))
	})
	if err != nil {
		return fmt.Errorf("append to journal %s: %w", path, err)
	}
	return nil
}

// Read returns the journal records for sourceFile, one per line (newest
// wins), sorted by line. A missing journal reads as empty.
func Read(sourceFile string) ([]Record, error) {
	data, err := lockedfile.Read(JournalPath(sourceFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read journal for %s: %w", sourceFile, err)
	}

	records, err := decode(data)
	if err != nil {
		return nil, err
	}
	return dedupe(records), nil
}

// Remove deletes the journal for sourceFile. Removing an absent journal is
// not an error.
func Remove(sourceFile string) error {
	err := os.Remove(JournalPath(sourceFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove journal for %s: %w", sourceFile, err)
	}
	return nil
}

// Scan walks root and returns the source files that have a pending
// journal, sorted by path. The .git directory is skipped.
func Scan(root string) ([]string, error) {
	var sources []string
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
		if strings.HasSuffix(path, Extension) {
			sources = append(sources, SourcePath(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Strings(sources)
	return sources, nil
}

func decode(data []byte) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("parse journal line %d: %w", lineNum, err)
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}

	return records, nil
}

func encode(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	for i, record := range records {
		if err := encoder.Encode(record); err != nil {
			return nil, fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}

// dedupe keeps the newest record per line. Appends happen in time order,
// so the last record for a line wins.
func dedupe(records []Record) []Record {
	byLine := make(map[int]Record, len(records))
	for _, record := range records {
		byLine[record.Line] = record
	}

	deduped := make([]Record, 0, len(byLine))
	for _, record := range byLine {
		deduped = append(deduped, record)
	}
	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].Line < deduped[j].Line
	})
	return deduped
}
