package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lepvg/pmsync/internal/archive"
	"github.com/lepvg/pmsync/internal/config"
	"github.com/lepvg/pmsync/internal/logging"
	"github.com/lepvg/pmsync/internal/pubmed"
	"github.com/lepvg/pmsync/internal/runner"
	"github.com/lepvg/pmsync/internal/state"
	"github.com/lepvg/pmsync/internal/topics"
	"github.com/lepvg/pmsync/internal/zotero"
)

// Root command flags.
var (
	topicName   string
	dryRun      bool
	daysBack    int
	retMax      int
	outputFile  string
	archiveFile string
	noArchive   bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&topicName, "topic", "", "Sync only the named topic")
	f.BoolVar(&dryRun, "dry-run", false, "Preview without writing to Zotero, state, or archive")
	f.IntVar(&daysBack, "days", config.DefaultDaysBack, "Lookback window in days (publication date)")
	f.IntVar(&retMax, "retmax", config.DefaultRetMax, "Maximum PMIDs to fetch per topic")
	f.StringVar(&outputFile, "output", "", "Write run results as JSON to this file")
	f.StringVar(&archiveFile, "archive-file", config.DefaultArchiveFile, "SQLite archive of imported records")
	f.BoolVar(&noArchive, "no-archive", false, "Disable the import archive")
}

func runSync(cmd *cobra.Command, args []string) error {
	log, err := logging.New(verbose, logFile)
	if err != nil {
		exitWithError(ExitError, "setting up logging: %v", err)
	}
	defer log.Sync()

	list, err := loadTopics()
	if err != nil {
		exitWithError(ExitError, "loading topics: %v", err)
	}
	if topicName != "" {
		topic, err := topics.Find(list, topicName)
		if err != nil {
			exitWithError(ExitError, "%v (run 'pmsync topics' for the configured names)", err)
		}
		list = []topics.Topic{topic}
	}

	creds := config.LoadCredentials()
	if !creds.Configured() && !dryRun {
		log.Warn("ZOTERO_USER_ID / ZOTERO_API_KEY not set; writes will fail")
	}

	store := state.NewStore(stateFile, log)
	st := store.Load()

	var recorder runner.Recorder
	if !noArchive && !dryRun {
		arch, err := archive.Open(archiveFile)
		if err != nil {
			log.Warnf("archive disabled: %v", err)
		} else {
			defer arch.Close()
			recorder = arch
		}
	}

	pm := pubmed.NewClient()
	zot := zotero.NewClient(creds.UserID, creds.APIKey)
	run := runner.New(pm, pm, zot, recorder, log)

	log.Infof("pmsync %s: %d topic(s), days=%d, retmax=%d, dry_run=%v",
		Version, len(list), daysBack, retMax, dryRun)

	results := run.Run(context.Background(), list, st, runner.Options{
		Days:   daysBack,
		RetMax: retMax,
		DryRun: dryRun,
	})

	if !dryRun {
		if err := store.Save(st); err != nil {
			log.Errorf("saving state: %v", err)
		} else {
			log.Infof("state saved to %s", store.Path())
		}
	}

	if outputFile != "" {
		if err := results.WriteFile(outputFile); err != nil {
			log.Errorf("exporting results: %v", err)
		} else {
			log.Infof("results written to %s", outputFile)
		}
	}

	log.Infof("done: found=%d new=%d written=%d",
		results.Summary.TotalFound, results.Summary.TotalNew, results.Summary.TotalWritten)
	return nil
}
