// Package main provides the pmsync CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lepvg/pmsync/internal/config"
	"github.com/lepvg/pmsync/internal/topics"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Persistent flags shared by all commands.
var (
	stateFile  string
	topicsFile string
	logFile    string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pmsync",
	Short: "Sync new PubMed records into Zotero collections",
	Long: `pmsync searches PubMed for recent publications matching a fixed set of
topical queries, skips everything already imported, and pushes new
records into per-topic Zotero collections tagged auto:pubmed and
topic:<name>.

A JSON state file records the imported PMIDs per topic so repeated runs
never resubmit a record. Run with --dry-run to preview without writing.`,
	RunE:          runSync,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&stateFile, "state-file", config.DefaultStateFile, "Path to the sync state file")
	pf.StringVar(&topicsFile, "topics-file", "", "YAML file replacing the built-in topic set")
	pf.StringVar(&logFile, "log-file", "", "Also write logs to this file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Show debug logging")
}

// loadTopics returns the configured topic set.
func loadTopics() ([]topics.Topic, error) {
	if topicsFile != "" {
		return topics.LoadFile(topicsFile)
	}
	return topics.Builtin(), nil
}
