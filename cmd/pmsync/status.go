package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lepvg/pmsync/internal/logging"
	"github.com/lepvg/pmsync/internal/state"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-topic import counts from the state file",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	list, err := loadTopics()
	if err != nil {
		exitWithError(ExitError, "loading topics: %v", err)
	}

	store := state.NewStore(stateFile, logging.Nop())
	st := store.Load()

	table := tablewriter.NewTable(os.Stdout)
	table.Header("Topic", "Imported", "Last update")

	total := 0
	for _, topic := range list {
		count := 0
		lastUpdate := "-"
		if ts, ok := st.Topics[topic.Name]; ok {
			count = len(ts.ProcessedPMIDs)
			if ts.LastUpdate != "" {
				lastUpdate = ts.LastUpdate
			}
		}
		total += count
		table.Append(topic.Name, fmt.Sprintf("%d", count), lastUpdate)
	}
	table.Footer("Total", fmt.Sprintf("%d", total), "")

	fmt.Printf("State file: %s\n", store.Path())
	if st.LastRun != "" {
		fmt.Printf("Last run:   %s\n", st.LastRun)
	} else {
		fmt.Println("Last run:   never")
	}
	fmt.Println()
	if err := table.Render(); err != nil {
		exitWithError(ExitError, "rendering table: %v", err)
	}
	return nil
}
