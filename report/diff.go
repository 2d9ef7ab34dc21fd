// Package report renders unified diffs and directory listings for
// presenting snapshot changes. Everything here is pure: the functions
// format text and never touch the files they describe.
package report

import (
	"strings"

	"github.com/rogpeppe/go-internal/diff"
)

// UnifiedDiff returns a line-level unified diff of old and new, labeled
// with oldLabel and newLabel on the ---/+++ header lines, followed by
// @@-marked hunks. Identical inputs produce the empty string.
func UnifiedDiff(oldLabel, newLabel, old, new string) string {
	out := diff.Diff(oldLabel, []byte(old), newLabel, []byte(new))
	if len(out) == 0 {
		return ""
	}

	// Drop the "diff <old> <new>" command line; the ---/+++ header
	// already carries both labels.
	text := string(out)
	if strings.HasPrefix(text, "diff ") {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[i+1:]
		}
	}
	return text
}
