package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lepvg/pmsync/internal/archive"
	"github.com/lepvg/pmsync/internal/config"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recently imported records from the archive",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show")
	historyCmd.Flags().StringVar(&archiveFile, "archive-file", config.DefaultArchiveFile, "SQLite archive of imported records")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	arch, err := archive.Open(archiveFile)
	if err != nil {
		exitWithError(ExitError, "opening archive: %v", err)
	}
	defer arch.Close()

	entries, err := arch.Recent(historyLimit)
	if err != nil {
		exitWithError(ExitError, "reading archive: %v", err)
	}
	count, err := arch.Count()
	if err != nil {
		exitWithError(ExitError, "reading archive: %v", err)
	}

	if len(entries) == 0 {
		fmt.Println("Archive is empty.")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("PMID", "Topic", "Title", "Imported")
	for _, e := range entries {
		table.Append(e.PMID, e.Topic, truncate(e.Title, 60), e.ImportedAt)
	}
	if err := table.Render(); err != nil {
		exitWithError(ExitError, "rendering table: %v", err)
	}
	fmt.Printf("\nShowing %d of %d archived records.\n", len(entries), count)
	return nil
}

// truncate shortens s to max runes, never cutting a multi-byte rune.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
