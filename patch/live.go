package patch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/specimen-dev/specimen/internal/atomicfile"
)

// Applier rewrites placeholders one at a time as mismatches are observed,
// for update modes that apply immediately instead of journaling.
type Applier struct {
	mu     sync.Mutex
	shifts map[string][]lineShift
}

// lineShift records that the placeholder at a compile-time line grew or
// shrank the file by delta lines.
type lineShift struct {
	line  int
	delta int
}

// NewApplier returns an applier with no rewrites recorded.
func NewApplier() *Applier {
	return &Applier{shifts: make(map[string][]lineShift)}
}

// Apply locates and rewrites the placeholder for u in filename immediately.
// Line numbers in u come from the compiled test binary; the applier offsets
// them by the growth of placeholders it has already rewritten higher in the
// same file.
func (a *Applier) Apply(ctx context.Context, filename string, u Update) (*Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	located := u
	for _, shift := range a.shifts[filename] {
		if shift.line < u.Line {
			located.Line += shift.delta
		}
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	outcome, err := Resolve(ctx, src, filename, []Update{located})
	if err != nil {
		return nil, err
	}
	if outcome.Applied == 0 {
		return outcome, nil
	}

	if err := atomicfile.WriteFile(filename, outcome.Content, 0o644); err != nil {
		return nil, err
	}

	delta := bytes.Count(outcome.Content, []byte("\n")) - bytes.Count(src, []byte("\n"))
	if delta != 0 {
		a.shifts[filename] = append(a.shifts[filename], lineShift{line: u.Line, delta: delta})
	}

	return outcome, nil
}
