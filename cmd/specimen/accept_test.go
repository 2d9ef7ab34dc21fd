package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specimen-dev/specimen/pending"
	"github.com/specimen-dev/specimen/snapfile"
)

func writePatchFixture(t *testing.T, dir, placeholder string) string {
	t.Helper()
	source := filepath.Join(dir, "demo_test.go")
	content := fmt.Sprintf(`package demo

import "testing"

func TestDemo(t *testing.T) {
	specimen.TokensInline(t, value(), %s)
}
`, placeholder)
	if err := os.WriteFile(source, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return source
}

func TestAcceptJournal(t *testing.T) {
	dir := t.TempDir()
	source := writePatchFixture(t, dir, "``")
	record := pending.Record{File: source, Line: 6, Kind: "tokens", Old: "", New: "x + 1"}
	if err := pending.Append(record); err != nil {
		t.Fatalf("append record: %v", err)
	}

	result := acceptJournal(context.Background(), source)
	if result.err != nil {
		t.Fatalf("accept journal: %v", result.err)
	}
	if len(result.lines) != 1 || !strings.Contains(result.lines[0], "applied 1 update") {
		t.Fatalf("unexpected result lines: %q", result.lines)
	}

	content, err := os.ReadFile(source)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	if !strings.Contains(string(content), "value(), `x + 1`") {
		t.Fatalf("expected source to carry the update, got:\n%s", content)
	}
	if _, err := os.Stat(pending.JournalPath(source)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected journal to be removed, got %v", err)
	}
}

func TestAcceptJournal_StaleUpdate(t *testing.T) {
	dir := t.TempDir()
	source := writePatchFixture(t, dir, "`y`")
	record := pending.Record{File: source, Line: 6, Kind: "tokens", Old: "", New: "x + 1"}
	if err := pending.Append(record); err != nil {
		t.Fatalf("append record: %v", err)
	}

	result := acceptJournal(context.Background(), source)
	if result.err != nil {
		t.Fatalf("accept journal: %v", result.err)
	}
	if len(result.lines) != 2 {
		t.Fatalf("expected a summary and a skip line, got %q", result.lines)
	}
	if !strings.Contains(result.lines[0], "applied 0 updates") {
		t.Fatalf("expected no applied updates, got %q", result.lines[0])
	}
	if !strings.Contains(result.lines[1], "skipped: stale:") {
		t.Fatalf("expected a stale skip, got %q", result.lines[1])
	}

	content, err := os.ReadFile(source)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	if !strings.Contains(string(content), "value(), `y`") {
		t.Fatalf("expected source to be untouched, got:\n%s", content)
	}
	if _, err := os.Stat(pending.JournalPath(source)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected journal to be removed, got %v", err)
	}
}

func TestAcceptJournal_UpToDate(t *testing.T) {
	dir := t.TempDir()
	source := writePatchFixture(t, dir, "`x + 1`")
	record := pending.Record{File: source, Line: 6, Kind: "tokens", Old: "", New: "x + 1"}
	if err := pending.Append(record); err != nil {
		t.Fatalf("append record: %v", err)
	}

	result := acceptJournal(context.Background(), source)
	if result.err != nil {
		t.Fatalf("accept journal: %v", result.err)
	}
	if len(result.lines) != 1 || !strings.Contains(result.lines[0], "1 already up to date") {
		t.Fatalf("unexpected result lines: %q", result.lines)
	}
}

func TestAcceptCandidate(t *testing.T) {
	dir := t.TempDir()
	accepted := filepath.Join(dir, "testdata", "snapshots", "demo_test__widget.snap")
	candidate := snapfile.Candidate(accepted)
	if err := snapfile.Write(candidate, "x + 2"); err != nil {
		t.Fatalf("write candidate: %v", err)
	}

	result := acceptCandidate(candidate)
	if result.err != nil {
		t.Fatalf("accept candidate: %v", result.err)
	}
	if len(result.lines) != 1 || !strings.Contains(result.lines[0], "promoted") {
		t.Fatalf("unexpected result lines: %q", result.lines)
	}

	content, err := snapfile.Read(accepted)
	if err != nil {
		t.Fatalf("read accepted: %v", err)
	}
	if content != "x + 2" {
		t.Fatalf("expected %q, got %q", "x + 2", content)
	}
	if _, err := os.Stat(candidate); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected candidate to be removed, got %v", err)
	}
}

func TestAcceptCandidate_RejectsNonCandidate(t *testing.T) {
	dir := t.TempDir()
	accepted := filepath.Join(dir, "testdata", "snapshots", "demo_test__widget.snap")
	if err := snapfile.Write(accepted, "x + 1"); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	result := acceptCandidate(accepted)
	if result.err == nil {
		t.Fatal("expected an error for a non-candidate path")
	}
}

func TestPlural(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, "0 updates"},
		{1, "1 update"},
		{2, "2 updates"},
	}
	for _, tc := range cases {
		if got := plural(tc.count, "update"); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
