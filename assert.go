package specimen

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/specimen-dev/specimen/patch"
	"github.com/specimen-dev/specimen/pending"
	"github.com/specimen-dev/specimen/report"
	"github.com/specimen-dev/specimen/snapfile"
	"github.com/specimen-dev/specimen/tokens"
)

// liveApplier rewrites placeholders as soon as a mismatch is observed in
// ModeAlways runs that have no Main wrapper.
var liveApplier = patch.NewApplier()

// Tokens compares src against the file-based snapshot named name for the
// calling test file. The snapshot lives at
// testdata/snapshots/<file-base>__<name>.snap beside the test; name must
// be a single path segment.
func Tokens(t testing.TB, name, src string) {
	t.Helper()
	at, err := callerSite()
	if err != nil {
		t.Fatalf("specimen: %v", err)
	}
	assertFile(context.Background(), t, loadHarness(), at, name, src)
}

// TokensContext is Tokens honoring settings carried in ctx.
func TokensContext(ctx context.Context, t testing.TB, name, src string) {
	t.Helper()
	at, err := callerSite()
	if err != nil {
		t.Fatalf("specimen: %v", err)
	}
	assertFile(ctx, t, loadHarness(), at, name, src)
}

// TokensInline compares src against the snapshot recorded in the literal
// at the call site. Pass the literal itself as recorded, starting with an
// empty one; mismatches record a replacement for the patch engine to
// write back into the test source.
func TokensInline(t testing.TB, src, recorded string) {
	t.Helper()
	at, err := callerSite()
	if err != nil {
		t.Fatalf("specimen: %v", err)
	}
	assertInline(context.Background(), t, loadHarness(), at, src, recorded)
}

// TokensInlineContext is TokensInline honoring settings carried in ctx.
func TokensInlineContext(ctx context.Context, t testing.TB, src, recorded string) {
	t.Helper()
	at, err := callerSite()
	if err != nil {
		t.Fatalf("specimen: %v", err)
	}
	assertInline(ctx, t, loadHarness(), at, src, recorded)
}

func assertFile(ctx context.Context, t testing.TB, h harness, at site, name, src string) {
	t.Helper()
	if h.err != nil {
		t.Fatalf("specimen: %v", h.err)
	}

	tree, err := tokens.Lex(src)
	if err != nil {
		t.Fatalf("specimen: lex value: %v", err)
	}

	path, err := snapfile.Path(at.file, h.snapshotDir, name)
	if err != nil {
		t.Fatalf("specimen: snapshot %q: %v", name, err)
	}

	render := tokens.Render(ctx, tree)

	recorded, err := snapfile.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		reportMissing(t, h, path, render)
		return
	}
	if err != nil {
		t.Fatalf("specimen: %v", err)
	}

	recordedTree, err := tokens.Lex(recorded)
	if err != nil {
		t.Fatalf("specimen: lex snapshot %s: %v", displayPath(path), err)
	}
	if tokens.Equal(ctx, tree, recordedTree) {
		return
	}

	diff := report.UnifiedDiff(displayPath(path), "actual", recorded+"\n", render+"\n")
	switch {
	case h.mode.applies():
		if err := snapfile.Write(path, render); err != nil {
			t.Fatalf("specimen: %v", err)
		}
	case h.mode.records():
		if err := snapfile.Write(snapfile.Candidate(path), render); err != nil {
			t.Fatalf("specimen: %v", err)
		}
		t.Errorf("snapshot mismatch for %q (candidate written; run `specimen accept` to apply):\n%s", name, diff)
	default:
		t.Errorf("snapshot mismatch for %q:\n%s", name, diff)
	}
}

// reportMissing handles an assertion whose snapshot file does not exist
// yet. A missing snapshot always counts as a mismatch.
func reportMissing(t testing.TB, h harness, path, render string) {
	t.Helper()
	diff := report.UnifiedDiff(displayPath(path), "actual", "", render+"\n")
	switch {
	case h.mode.applies():
		if err := snapfile.Write(path, render); err != nil {
			t.Fatalf("specimen: %v", err)
		}
	case h.mode.records():
		if err := snapfile.Write(snapfile.Candidate(path), render); err != nil {
			t.Fatalf("specimen: %v", err)
		}
		t.Errorf("missing snapshot %s (candidate written; run `specimen accept` to create it):\n%s", displayPath(path), diff)
	default:
		t.Errorf("missing snapshot %s:\n%s", displayPath(path), diff)
	}
}

func assertInline(ctx context.Context, t testing.TB, h harness, at site, src, recorded string) {
	t.Helper()
	if h.err != nil {
		t.Fatalf("specimen: %v", h.err)
	}

	tree, err := tokens.Lex(src)
	if err != nil {
		t.Fatalf("specimen: lex value: %v", err)
	}
	recordedTree, err := tokens.Lex(recorded)
	if err != nil {
		t.Fatalf("specimen: lex recorded snapshot at %s:%d: %v", displayPath(at.file), at.line, err)
	}
	if tokens.Equal(ctx, tree, recordedTree) {
		return
	}

	proposed := tokens.RenderInline(ctx, tree)
	if h.mode.applies() {
		applyInline(ctx, t, at, patch.Update{
			Line: at.line,
			Kind: patch.KindTokens,
			Old:  recorded,
			New:  proposed,
		})
		return
	}

	diff := report.UnifiedDiff("recorded", "actual", recorded+"\n", proposed+"\n")
	if h.mode.records() {
		record := pending.Record{
			File:       at.file,
			Line:       at.line,
			Kind:       string(patch.KindTokens),
			Old:        recorded,
			New:        proposed,
			RecordedAt: time.Now(),
		}
		if err := pending.Append(record); err != nil {
			t.Fatalf("specimen: %v", err)
		}
		t.Errorf("inline snapshot mismatch at %s:%d (update recorded; run `specimen accept` to apply):\n%s",
			displayPath(at.file), at.line, diff)
		return
	}
	t.Errorf("inline snapshot mismatch at %s:%d:\n%s", displayPath(at.file), at.line, diff)
}

// applyInline writes an inline update through immediately, or queues it
// for the post-run flush when Main is wrapping the test binary.
func applyInline(ctx context.Context, t testing.TB, at site, update patch.Update) {
	t.Helper()
	if updateQueue.enqueue(at.file, update) {
		return
	}
	outcome, err := liveApplier.Apply(ctx, at.file, update)
	if err != nil {
		t.Fatalf("specimen: apply inline update: %v", err)
	}
	for _, skip := range outcome.Skipped {
		t.Errorf("inline snapshot update not applied: %s", skip.Reason)
	}
}
