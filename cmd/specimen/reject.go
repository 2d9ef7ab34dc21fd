package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specimen-dev/specimen/pending"
	"github.com/specimen-dev/specimen/snapfile"
)

var rejectCmd = &cobra.Command{
	Use:   "reject [path...]",
	Short: "Discard pending inline updates and candidate snapshots",
	RunE:  runReject,
}

func init() {
	rootCmd.AddCommand(rejectCmd)
}

func runReject(cmd *cobra.Command, args []string) error {
	roots, err := resolveRoots(args)
	if err != nil {
		return err
	}

	removed := 0
	for _, root := range roots {
		sources, err := pending.Scan(root)
		if err != nil {
			return err
		}
		for _, source := range sources {
			if err := pending.Remove(source); err != nil {
				return err
			}
			fmt.Printf("removed %s\n", relPath(pending.JournalPath(source)))
			removed++
		}

		candidates, err := snapfile.ScanCandidates(root)
		if err != nil {
			return err
		}
		for _, candidate := range candidates {
			if err := snapfile.Discard(candidate); err != nil {
				return err
			}
			fmt.Printf("removed %s\n", relPath(candidate))
			removed++
		}
	}

	if removed == 0 {
		fmt.Println("No pending snapshot updates.")
	}
	return nil
}
