// Package runner drives one synchronization run: per topic it diffs the
// PubMed search result against the processed state, translates the new
// records, writes them to Zotero, and advances state for confirmed
// writes only.
package runner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lepvg/pmsync/internal/archive"
	"github.com/lepvg/pmsync/internal/pubmed"
	"github.com/lepvg/pmsync/internal/state"
	"github.com/lepvg/pmsync/internal/topics"
	"github.com/lepvg/pmsync/internal/zotero"
)

// Searcher finds PMIDs matching a query within a lookback window.
type Searcher interface {
	Search(ctx context.Context, term string, days, retmax int) ([]string, error)
}

// Summarizer fetches metadata for a batch of PMIDs.
type Summarizer interface {
	Summaries(ctx context.Context, pmids []string) (map[string]pubmed.Summary, error)
}

// Writer submits a batch of translated items to the destination.
type Writer interface {
	Push(ctx context.Context, items []zotero.Item, dryRun bool) (zotero.WriteResult, error)
}

// Recorder archives confirmed writes. Optional.
type Recorder interface {
	Record(entries []archive.Entry) error
}

// Options are the run-wide parameters.
type Options struct {
	Days   int
	RetMax int
	DryRun bool
}

// TopicReport is the per-topic outcome triple.
type TopicReport struct {
	Name    string `json:"name"`
	Found   int    `json:"found"`
	New     int    `json:"new"`
	Written int    `json:"written"`
}

// Summary aggregates topic reports.
type Summary struct {
	TotalFound   int `json:"total_found"`
	TotalNew     int `json:"total_new"`
	TotalWritten int `json:"total_written"`
}

// RunConfig echoes the parameters of a run in the results export.
type RunConfig struct {
	Days   int  `json:"days"`
	RetMax int  `json:"retmax"`
	DryRun bool `json:"dry_run"`
}

// Results is the full run outcome document.
type Results struct {
	RunTime string        `json:"run_time"`
	Config  RunConfig     `json:"config"`
	Topics  []TopicReport `json:"topics"`
	Summary Summary       `json:"summary"`
}

// Runner orchestrates topics sequentially. It is single-threaded by
// design: one writer per TopicState keeps the
// at-most-one-write-per-identifier-per-run guarantee trivial.
type Runner struct {
	search   Searcher
	metadata Summarizer
	writer   Writer
	recorder Recorder
	log      *zap.SugaredLogger
}

// New creates a runner. recorder may be nil to disable archiving.
func New(search Searcher, metadata Summarizer, writer Writer, recorder Recorder, log *zap.SugaredLogger) *Runner {
	return &Runner{
		search:   search,
		metadata: metadata,
		writer:   writer,
		recorder: recorder,
		log:      log,
	}
}

// Run processes all topics in order and returns the aggregated results.
// A failing topic never aborts the run.
func (r *Runner) Run(ctx context.Context, list []topics.Topic, st *state.RunState, opts Options) Results {
	results := Results{
		RunTime: time.Now().Format(time.RFC3339),
		Config:  RunConfig{Days: opts.Days, RetMax: opts.RetMax, DryRun: opts.DryRun},
	}

	for _, topic := range list {
		report := r.RunTopic(ctx, topic, st, opts)
		results.Topics = append(results.Topics, report)
		results.Summary.TotalFound += report.Found
		results.Summary.TotalNew += report.New
		results.Summary.TotalWritten += report.Written

		r.log.Infof("%s: found=%d new=%d written=%d", report.Name, report.Found, report.New, report.Written)
	}

	return results
}

// RunTopic processes one topic. Every failure is caught here and
// converted to a zero count for the affected step; nothing propagates.
func (r *Runner) RunTopic(ctx context.Context, topic topics.Topic, st *state.RunState, opts Options) TopicReport {
	report := TopicReport{Name: topic.Name}

	ts := st.Topic(topic.Name)
	processed := ts.ProcessedSet()

	r.log.Infof("=== topic: %s ===", topic.Name)
	r.log.Debugf("  query: %s", topic.Query)
	r.log.Infof("  previously imported PMIDs: %d", len(processed))

	found, err := r.search.Search(ctx, topic.Query, opts.Days, opts.RetMax)
	if err != nil {
		r.log.Errorf("  PubMed search failed: %v", err)
		found = nil
	}
	report.Found = len(found)
	r.log.Infof("  PubMed returned %d PMIDs (days=%d, retmax=%d)", report.Found, opts.Days, opts.RetMax)

	newIDs := diffCandidates(found, processed)
	report.New = len(newIDs)
	if len(newIDs) == 0 {
		r.log.Infof("  no new PMIDs")
		return report
	}
	r.log.Infof("  new PMIDs this run: %d", len(newIDs))

	summaries, err := r.metadata.Summaries(ctx, newIDs)
	if err != nil {
		// Records are still created with placeholder fields; an
		// identifier is never skipped for missing metadata.
		r.log.Errorf("  fetching summaries failed, using placeholders: %v", err)
		summaries = map[string]pubmed.Summary{}
	}

	items := make([]zotero.Item, len(newIDs))
	for i, pmid := range newIDs {
		items[i] = zotero.NewItem(pmid, summaries[pmid], topic.Name, topic.Collection)
	}

	result, err := r.writer.Push(ctx, items, opts.DryRun)
	if err != nil {
		r.log.Errorf("  writing to Zotero failed: %v", err)
		return report
	}
	report.Written = result.Written

	if opts.DryRun {
		r.log.Infof("  [preview] would write %d items to Zotero (nothing sent)", result.Written)
		return report
	}

	if result.Written == 0 {
		r.log.Infof("  no items written to Zotero")
		return report
	}

	confirmed := make([]string, 0, len(result.Confirmed))
	for _, idx := range result.Confirmed {
		if idx >= 0 && idx < len(newIDs) {
			confirmed = append(confirmed, newIDs[idx])
		}
	}
	ts.Append(confirmed)
	r.log.Infof("  wrote %d items to Zotero", result.Written)

	if r.recorder != nil {
		if err := r.recorder.Record(archiveEntries(confirmed, summaries, topic.Name)); err != nil {
			r.log.Warnf("  archiving imports failed: %v", err)
		}
	}

	return report
}

// diffCandidates keeps the identifiers absent from the processed set,
// preserving search order and collapsing repeats within the found list.
func diffCandidates(found []string, processed map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(found))
	var newIDs []string
	for _, id := range found {
		if _, ok := processed[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		newIDs = append(newIDs, id)
	}
	return newIDs
}

func archiveEntries(pmids []string, summaries map[string]pubmed.Summary, topicName string) []archive.Entry {
	entries := make([]archive.Entry, len(pmids))
	for i, pmid := range pmids {
		s := summaries[pmid]
		entries[i] = archive.Entry{
			PMID:    pmid,
			Topic:   topicName,
			Title:   s.Title,
			Journal: s.FullJournalName,
			PubDate: s.PubDate,
		}
	}
	return entries
}
