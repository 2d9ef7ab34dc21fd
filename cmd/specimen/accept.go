package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/specimen-dev/specimen/patch"
	"github.com/specimen-dev/specimen/pending"
	"github.com/specimen-dev/specimen/snapfile"
)

var acceptCmd = &cobra.Command{
	Use:   "accept [path...]",
	Short: "Apply pending inline updates and promote candidate snapshots",
	RunE:  runAccept,
}

func init() {
	rootCmd.AddCommand(acceptCmd)
}

// acceptResult is the outcome of accepting one journal or one candidate.
// Results are reported in scan order regardless of completion order.
type acceptResult struct {
	label string
	lines []string
	err   error
}

func runAccept(cmd *cobra.Command, args []string) error {
	roots, err := resolveRoots(args)
	if err != nil {
		return err
	}

	var sources, candidates []string
	for _, root := range roots {
		found, err := pending.Scan(root)
		if err != nil {
			return err
		}
		sources = append(sources, found...)

		snaps, err := snapfile.ScanCandidates(root)
		if err != nil {
			return err
		}
		candidates = append(candidates, snaps...)
	}

	if len(sources) == 0 && len(candidates) == 0 {
		fmt.Println("No pending snapshot updates.")
		return nil
	}

	results := make([]acceptResult, len(sources)+len(candidates))
	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(4)

	for i, source := range sources {
		group.Go(func() error {
			results[i] = acceptJournal(ctx, source)
			return nil
		})
	}
	for i, candidate := range candidates {
		group.Go(func() error {
			results[len(sources)+i] = acceptCandidate(candidate)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "failed %s: %v\n", result.label, result.err)
			continue
		}
		for _, line := range result.lines {
			fmt.Println(line)
		}
	}
	if failed > 0 {
		return exitError{code: 1, err: fmt.Errorf("%s failed", plural(failed, "update"))}
	}
	return nil
}

// acceptJournal applies every journaled update for one source file and
// removes the journal. Stale updates are reported but do not keep the
// journal alive; rerunning the tests records them afresh.
func acceptJournal(ctx context.Context, source string) acceptResult {
	label := relPath(source)

	records, err := pending.Read(source)
	if err != nil {
		return acceptResult{label: label, err: err}
	}

	updates := make([]patch.Update, 0, len(records))
	for _, record := range records {
		updates = append(updates, patch.Update{
			Line: record.Line,
			Kind: patch.Kind(record.Kind),
			Old:  record.Old,
			New:  record.New,
		})
	}

	outcome, err := patch.ApplyFile(ctx, source, updates)
	if err != nil {
		return acceptResult{label: label, err: err}
	}

	summary := fmt.Sprintf("%s: applied %s", label, plural(outcome.Applied, "update"))
	if outcome.UpToDate > 0 {
		summary += fmt.Sprintf(", %d already up to date", outcome.UpToDate)
	}
	lines := []string{summary}
	for _, skip := range outcome.Skipped {
		lines = append(lines, fmt.Sprintf("  skipped: %s", skip.Reason))
	}

	if err := pending.Remove(source); err != nil {
		return acceptResult{label: label, lines: lines, err: err}
	}
	return acceptResult{label: label, lines: lines}
}

func acceptCandidate(candidate string) acceptResult {
	label := relPath(candidate)
	if err := snapfile.Promote(candidate); err != nil {
		return acceptResult{label: label, err: err}
	}
	accepted := relPath(snapfile.Accepted(candidate))
	return acceptResult{label: label, lines: []string{fmt.Sprintf("promoted %s", accepted)}}
}

func plural(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
