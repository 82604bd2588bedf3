package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the configured topics and their Zotero collections",
	RunE:  runTopics,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	list, err := loadTopics()
	if err != nil {
		exitWithError(ExitError, "loading topics: %v", err)
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("#", "Topic", "Collection")
	for i, topic := range list {
		table.Append(fmt.Sprintf("%d", i+1), topic.Name, topic.Collection)
	}
	if err := table.Render(); err != nil {
		exitWithError(ExitError, "rendering table: %v", err)
	}
	return nil
}
