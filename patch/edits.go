package patch

import (
	"fmt"
	"sort"
)

// Edit replaces the byte span [Start, End) of a file with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// applyEdits applies edits to one snapshot of src, descending by start
// offset so earlier spans keep their positions. Spans must be in bounds and
// disjoint.
func applyEdits(src []byte, edits []Edit) ([]byte, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start > sorted[j].Start
	})

	out := make([]byte, len(src))
	copy(out, src)

	prevStart := len(src) + 1
	for _, edit := range sorted {
		if edit.Start < 0 || edit.End > len(src) || edit.End < edit.Start {
			return nil, fmt.Errorf("edit span [%d,%d) out of range for %d bytes", edit.Start, edit.End, len(src))
		}
		if edit.End > prevStart {
			return nil, fmt.Errorf("%w: [%d,%d)", ErrOverlappingEdits, edit.Start, edit.End)
		}
		prevStart = edit.Start

		patched := make([]byte, 0, len(out)-(edit.End-edit.Start)+len(edit.Text))
		patched = append(patched, out[:edit.Start]...)
		patched = append(patched, edit.Text...)
		patched = append(patched, out[edit.End:]...)
		out = patched
	}

	return out, nil
}
