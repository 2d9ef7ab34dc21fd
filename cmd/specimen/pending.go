package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/spf13/cobra"

	"github.com/specimen-dev/specimen/internal/ui"
	"github.com/specimen-dev/specimen/pending"
	"github.com/specimen-dev/specimen/report"
	"github.com/specimen-dev/specimen/snapfile"
)

var pendingCmd = &cobra.Command{
	Use:   "pending [path...]",
	Short: "List pending snapshot updates",
	RunE:  runPending,
}

var pendingDiffs bool

func init() {
	rootCmd.AddCommand(pendingCmd)
	pendingCmd.Flags().BoolVar(&pendingDiffs, "diffs", false, "Show a unified diff for each pending update")
}

var diffHeaderStyle = lipgloss.NewStyle().Bold(true)

// pendingItem is one row of the pending listing: a journaled inline
// update or a candidate snapshot file.
type pendingItem struct {
	path string    // display path of the source file or candidate
	line int       // placeholder line; 0 for file-based candidates
	kind string    // journal record kind, or "file"
	at   time.Time // when the update was recorded; zero when unknown
	diff string    // unified diff, filled when --diffs is set
}

func runPending(cmd *cobra.Command, args []string) error {
	roots, err := resolveRoots(args)
	if err != nil {
		return err
	}

	items, err := collectPending(roots, pendingDiffs)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No pending snapshot updates.")
		return nil
	}

	fmt.Print(formatPendingTable(items, time.Now()))

	if pendingDiffs {
		printPendingDiffs(items)
	}
	return nil
}

func collectPending(roots []string, withDiffs bool) ([]pendingItem, error) {
	var items []pendingItem
	for _, root := range roots {
		sources, err := pending.Scan(root)
		if err != nil {
			return nil, err
		}
		for _, source := range sources {
			records, err := pending.Read(source)
			if err != nil {
				return nil, err
			}
			for _, record := range records {
				item := pendingItem{
					path: relPath(source),
					line: record.Line,
					kind: record.Kind,
					at:   record.RecordedAt,
				}
				if withDiffs {
					item.diff = report.UnifiedDiff("recorded", "actual", record.Old+"\n", record.New+"\n")
				}
				items = append(items, item)
			}
		}

		candidates, err := snapfile.ScanCandidates(root)
		if err != nil {
			return nil, err
		}
		for _, candidate := range candidates {
			item := pendingItem{path: relPath(candidate), kind: "file"}
			if withDiffs {
				diff, err := candidateDiff(candidate)
				if err != nil {
					return nil, err
				}
				item.diff = diff
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// candidateDiff diffs a candidate snapshot against its accepted file; a
// missing accepted file diffs as all additions.
func candidateDiff(candidate string) (string, error) {
	proposed, err := snapfile.Read(candidate)
	if err != nil {
		return "", err
	}

	old := ""
	accepted, err := snapfile.Read(snapfile.Accepted(candidate))
	if err == nil {
		old = accepted + "\n"
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	return report.UnifiedDiff("accepted", "candidate", old, proposed+"\n"), nil
}

func formatPendingTable(items []pendingItem, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"FILE", "LINE", "KIND", "AGE"}, len(items))
	for _, item := range items {
		line := "-"
		if item.line > 0 {
			line = strconv.Itoa(item.line)
		}
		builder.AddRow([]string{item.path, line, item.kind, ui.FormatTimeAgo(item.at, now)})
	}
	return builder.String()
}

func printPendingDiffs(items []pendingItem) {
	for _, item := range items {
		if item.diff == "" {
			continue
		}
		diff := item.diff
		if colorEnabled() {
			diff = report.Colorize(diff)
		}
		fmt.Println()
		fmt.Println(diffHeaderStyle.Render(pendingItemHeader(item)))
		fmt.Print(indent.String(diff, 4))
	}
}

func pendingItemHeader(item pendingItem) string {
	if item.line > 0 {
		return fmt.Sprintf("%s:%d", item.path, item.line)
	}
	return item.path
}
