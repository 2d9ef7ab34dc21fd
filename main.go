package specimen

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/specimen-dev/specimen/patch"
)

// inlineQueue collects ModeAlways updates while Main is running tests, so
// each file is rewritten once after the run instead of once per mismatch.
type inlineQueue struct {
	mu      sync.Mutex
	active  bool
	updates map[string][]patch.Update
}

var updateQueue inlineQueue

func (q *inlineQueue) activate() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.active = true
	q.updates = make(map[string][]patch.Update)
}

// enqueue records an update for the post-run flush. It reports false when
// no Main wrapper is active and the caller should apply immediately.
func (q *inlineQueue) enqueue(file string, update patch.Update) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.active {
		return false
	}
	q.updates[file] = append(q.updates[file], update)
	return true
}

func (q *inlineQueue) drain() map[string][]patch.Update {
	q.mu.Lock()
	defer q.mu.Unlock()
	drained := q.updates
	q.active = false
	q.updates = nil
	return drained
}

// Main wraps testing.M for packages that use inline snapshots with
// SPECIMEN_UPDATE=always: updates observed during the run are queued and
// flushed afterward as one rewrite per file, so line numbers from the
// compiled binary stay valid for the whole run.
//
//	func TestMain(m *testing.M) {
//		specimen.Main(m)
//	}
func Main(m *testing.M) {
	updateQueue.activate()
	code := m.Run()
	if err := flushQueued(os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "specimen: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}

// flushQueued applies every queued update grouped per file, one atomic
// rewrite each. Skipped updates are notes on w, not failures.
func flushQueued(w io.Writer) error {
	queued := updateQueue.drain()
	if len(queued) == 0 {
		return nil
	}

	files := make([]string, 0, len(queued))
	for file := range queued {
		files = append(files, file)
	}
	sort.Strings(files)

	ctx := context.Background()
	var failed []string
	for _, file := range files {
		outcome, err := patch.ApplyFile(ctx, file, queued[file])
		if err != nil {
			fmt.Fprintf(w, "specimen: update %s: %v\n", displayPath(file), err)
			failed = append(failed, displayPath(file))
			continue
		}
		for _, skip := range outcome.Skipped {
			fmt.Fprintf(w, "specimen: skipped update: %s\n", skip.Reason)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to update %s", strings.Join(failed, ", "))
	}
	return nil
}
