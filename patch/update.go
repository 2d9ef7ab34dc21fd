package patch

import (
	"context"
	"fmt"
	"os"

	"github.com/specimen-dev/specimen/internal/atomicfile"
	"github.com/specimen-dev/specimen/tokens"
)

// Update is one pending replacement for an inline snapshot placeholder.
type Update struct {
	Line int // line reported by the assertion at record time
	Kind Kind
	Old  string // placeholder content captured at record time
	New  string // replacement content
}

// Skip explains why one update was not applied.
type Skip struct {
	Update Update
	Reason string
}

// Outcome reports one Resolve pass over a file.
type Outcome struct {
	Content  []byte // the file after edits; the input itself when none applied
	Applied  int
	UpToDate int
	Skipped  []Skip
}

// Resolve locates every update's placeholder against the single snapshot
// src and applies all replacements in one pass. Updates whose placeholder
// moved, changed, or disappeared are skipped with a reason; updates the
// file already satisfies count as up to date and change nothing.
func Resolve(ctx context.Context, src []byte, filename string, updates []Update) (*Outcome, error) {
	outcome := &Outcome{Content: src}

	var edits []Edit
	for _, update := range updates {
		placeholder, err := Locate(src, filename, update.Line)
		if err != nil {
			outcome.Skipped = append(outcome.Skipped, Skip{Update: update, Reason: err.Error()})
			continue
		}
		if satisfied(ctx, update.Kind, placeholder.Content, update.New) {
			outcome.UpToDate++
			continue
		}
		if placeholder.Content != update.Old {
			reason := fmt.Sprintf("stale: %s:%d changed since the update was recorded", filename, update.Line)
			outcome.Skipped = append(outcome.Skipped, Skip{Update: update, Reason: reason})
			continue
		}
		edits = append(edits, Edit{
			Start: placeholder.Start,
			End:   placeholder.End,
			Text:  update.Kind.Literal(update.New, placeholder.Indent),
		})
		outcome.Applied++
	}

	if len(edits) > 0 {
		content, err := applyEdits(src, edits)
		if err != nil {
			return nil, err
		}
		outcome.Content = content
	}

	return outcome, nil
}

// satisfied reports whether current already carries proposed: byte-equal,
// or token-equal for token-shaped content.
func satisfied(ctx context.Context, kind Kind, current, proposed string) bool {
	if current == proposed {
		return true
	}
	if kind != KindTokens {
		return false
	}
	a, err := tokens.Lex(current)
	if err != nil {
		return false
	}
	b, err := tokens.Lex(proposed)
	if err != nil {
		return false
	}
	return tokens.Equal(ctx, a, b)
}

// ApplyFile reads filename, resolves updates against its current content,
// and atomically rewrites it when anything applied.
func ApplyFile(ctx context.Context, filename string, updates []Update) (*Outcome, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	outcome, err := Resolve(ctx, src, filename, updates)
	if err != nil {
		return nil, err
	}

	if outcome.Applied > 0 {
		if err := atomicfile.WriteFile(filename, outcome.Content, 0o644); err != nil {
			return nil, err
		}
	}

	return outcome, nil
}
