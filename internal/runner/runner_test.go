package runner

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lepvg/pmsync/internal/archive"
	"github.com/lepvg/pmsync/internal/logging"
	"github.com/lepvg/pmsync/internal/pubmed"
	"github.com/lepvg/pmsync/internal/state"
	"github.com/lepvg/pmsync/internal/topics"
	"github.com/lepvg/pmsync/internal/zotero"
)

type fakeSearch struct {
	ids map[string][]string // query -> PMIDs
	err map[string]error    // query -> error
}

func (f *fakeSearch) Search(_ context.Context, term string, _, _ int) ([]string, error) {
	if err := f.err[term]; err != nil {
		return nil, err
	}
	return f.ids[term], nil
}

type fakeSummaries struct {
	data  map[string]pubmed.Summary
	err   error
	calls [][]string
}

func (f *fakeSummaries) Summaries(_ context.Context, pmids []string) (map[string]pubmed.Summary, error) {
	f.calls = append(f.calls, append([]string(nil), pmids...))
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]pubmed.Summary)
	for _, pmid := range pmids {
		if s, ok := f.data[pmid]; ok {
			out[pmid] = s
		}
	}
	return out, nil
}

type fakeWriter struct {
	result  zotero.WriteResult
	err     error
	batches [][]zotero.Item
	dryRuns []bool
}

func (f *fakeWriter) Push(_ context.Context, items []zotero.Item, dryRun bool) (zotero.WriteResult, error) {
	f.batches = append(f.batches, items)
	f.dryRuns = append(f.dryRuns, dryRun)
	if f.err != nil {
		return zotero.WriteResult{}, f.err
	}
	if dryRun {
		return zotero.WriteResult{Written: len(items)}, nil
	}
	if f.result.Confirmed == nil && f.result.Written == 0 {
		// Default: confirm the whole batch.
		confirmed := make([]int, len(items))
		for i := range confirmed {
			confirmed[i] = i
		}
		return zotero.WriteResult{Written: len(items), Confirmed: confirmed}, nil
	}
	return f.result, nil
}

func pmidsOf(items []zotero.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.TrimPrefix(item.Extra, "PMID: ")
	}
	return out
}

func testTopic(name, q string) topics.Topic {
	return topics.Topic{Name: name, Collection: "COLL" + name, Query: q}
}

func newRunner(s *fakeSearch, m *fakeSummaries, w *fakeWriter) *Runner {
	return New(s, m, w, nil, logging.Nop())
}

func TestConcreteScenario(t *testing.T) {
	// topics=[T1], processed=[], search -> [100 101], summary only for
	// 100, write succeeds for both.
	search := &fakeSearch{ids: map[string][]string{"X": {"100", "101"}}}
	summaries := &fakeSummaries{data: map[string]pubmed.Summary{
		"100": {Title: "Known paper"},
	}}
	writer := &fakeWriter{}
	st := state.NewRunState()

	r := newRunner(search, summaries, writer)
	report := r.RunTopic(context.Background(), testTopic("T1", "X"), st, Options{Days: 30, RetMax: 200})

	want := TopicReport{Name: "T1", Found: 2, New: 2, Written: 2}
	if report != want {
		t.Errorf("report = %+v, want %+v", report, want)
	}
	got := st.Topic("T1").ProcessedPMIDs
	if !reflect.DeepEqual(got, []string{"100", "101"}) {
		t.Errorf("processed = %v", got)
	}

	// The record without metadata is still submitted, with a
	// placeholder title.
	if len(writer.batches) != 1 || len(writer.batches[0]) != 2 {
		t.Fatalf("batches = %v", writer.batches)
	}
	if writer.batches[0][1].Title != "PMID 101" {
		t.Errorf("placeholder title = %q", writer.batches[0][1].Title)
	}
}

func TestIdempotence(t *testing.T) {
	search := &fakeSearch{ids: map[string][]string{"X": {"100", "101"}}}
	summaries := &fakeSummaries{}
	writer := &fakeWriter{}
	st := state.NewRunState()
	topic := testTopic("T1", "X")

	r := newRunner(search, summaries, writer)
	first := r.RunTopic(context.Background(), topic, st, Options{})
	second := r.RunTopic(context.Background(), topic, st, Options{})

	if first.Written != 2 {
		t.Errorf("first run written = %d", first.Written)
	}
	if second.Found != 2 || second.New != 0 || second.Written != 0 {
		t.Errorf("second run = %+v, want found=2 new=0 written=0", second)
	}
	if len(writer.batches) != 1 {
		t.Errorf("writer must not be invoked on the second run, got %d batches", len(writer.batches))
	}
}

func TestNoDuplicateWrite(t *testing.T) {
	search := &fakeSearch{ids: map[string][]string{"X": {"1", "2", "3"}}}
	writer := &fakeWriter{}
	st := state.NewRunState()
	st.Topic("T1").Append([]string{"1", "3"})

	r := newRunner(search, &fakeSummaries{}, writer)
	r.RunTopic(context.Background(), testTopic("T1", "X"), st, Options{})

	if len(writer.batches) != 1 {
		t.Fatalf("batches = %d", len(writer.batches))
	}
	if got := pmidsOf(writer.batches[0]); !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("submitted = %v, want [2]", got)
	}
}

func TestBatchDeduplication(t *testing.T) {
	// found=[1 2 2 3], processed=[1] -> candidates exactly [2 3].
	search := &fakeSearch{ids: map[string][]string{"X": {"1", "2", "2", "3"}}}
	writer := &fakeWriter{}
	st := state.NewRunState()
	st.Topic("T1").Append([]string{"1"})

	r := newRunner(search, &fakeSummaries{}, writer)
	report := r.RunTopic(context.Background(), testTopic("T1", "X"), st, Options{})

	if report.Found != 4 || report.New != 2 {
		t.Errorf("report = %+v", report)
	}
	if got := pmidsOf(writer.batches[0]); !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("submitted = %v, want [2 3]", got)
	}
}

func TestPreviewIsolation(t *testing.T) {
	search := &fakeSearch{ids: map[string][]string{"X": {"100", "101"}}}
	writer := &fakeWriter{}
	st := state.NewRunState()

	r := newRunner(search, &fakeSummaries{}, writer)
	report := r.RunTopic(context.Background(), testTopic("T1", "X"), st, Options{DryRun: true})

	if report.Written != 2 {
		t.Errorf("preview should report would-be count, got %d", report.Written)
	}
	if len(writer.dryRuns) != 1 || !writer.dryRuns[0] {
		t.Error("writer must be invoked with dry-run semantics")
	}
	if n := len(st.Topic("T1").ProcessedPMIDs); n != 0 {
		t.Errorf("preview must not mutate state, got %d processed", n)
	}
}

func TestPartialFailureIsolation(t *testing.T) {
	search := &fakeSearch{
		ids: map[string][]string{"QB": {"200"}},
		err: map[string]error{"QA": errors.New("connection refused")},
	}
	writer := &fakeWriter{}
	st := state.NewRunState()

	r := newRunner(search, &fakeSummaries{}, writer)
	results := r.Run(context.Background(),
		[]topics.Topic{testTopic("A", "QA"), testTopic("B", "QB")},
		st, Options{})

	if len(results.Topics) != 2 {
		t.Fatalf("both topics must appear in the summary, got %d", len(results.Topics))
	}
	if results.Topics[0] != (TopicReport{Name: "A"}) {
		t.Errorf("failed topic report = %+v, want all-zero", results.Topics[0])
	}
	if results.Topics[1].Written != 1 {
		t.Errorf("topic B unaffected, got %+v", results.Topics[1])
	}
	if results.Summary.TotalWritten != 1 || results.Summary.TotalFound != 1 {
		t.Errorf("summary = %+v", results.Summary)
	}
}

func TestWriterFailureLeavesStateUnchanged(t *testing.T) {
	search := &fakeSearch{ids: map[string][]string{"X": {"100"}}}
	writer := &fakeWriter{err: errors.New("timeout")}
	st := state.NewRunState()

	r := newRunner(search, &fakeSummaries{}, writer)
	report := r.RunTopic(context.Background(), testTopic("T1", "X"), st, Options{})

	if report.Written != 0 {
		t.Errorf("written = %d", report.Written)
	}
	if n := len(st.Topic("T1").ProcessedPMIDs); n != 0 {
		t.Errorf("failed write must not advance state, got %d", n)
	}
}

func TestZeroSuccessLeavesCandidates(t *testing.T) {
	search := &fakeSearch{ids: map[string][]string{"X": {"100"}}}
	writer := &fakeWriter{result: zotero.WriteResult{Written: 0, Confirmed: []int{}}}
	st := state.NewRunState()
	topic := testTopic("T1", "X")

	r := newRunner(search, &fakeSummaries{}, writer)
	r.RunTopic(context.Background(), topic, st, Options{})

	if n := len(st.Topic("T1").ProcessedPMIDs); n != 0 {
		t.Fatalf("zero-success write must not advance state, got %d", n)
	}

	// The identifier is a candidate again on the next run.
	writer.result = zotero.WriteResult{}
	writer.err = nil
	report := r.RunTopic(context.Background(), topic, st, Options{})
	if report.New != 1 || report.Written != 1 {
		t.Errorf("retry-by-recomputation failed: %+v", report)
	}
}

func TestPartialConfirmationAdvancesConfirmedOnly(t *testing.T) {
	search := &fakeSearch{ids: map[string][]string{"X": {"100", "101", "102"}}}
	writer := &fakeWriter{result: zotero.WriteResult{Written: 2, Confirmed: []int{0, 2}}}
	st := state.NewRunState()

	r := newRunner(search, &fakeSummaries{}, writer)
	report := r.RunTopic(context.Background(), testTopic("T1", "X"), st, Options{})

	if report.Written != 2 {
		t.Errorf("written = %d", report.Written)
	}
	got := st.Topic("T1").ProcessedPMIDs
	if !reflect.DeepEqual(got, []string{"100", "102"}) {
		t.Errorf("processed = %v, want confirmed subset only", got)
	}
}

func TestMetadataFailureStillWrites(t *testing.T) {
	search := &fakeSearch{ids: map[string][]string{"X": {"100", "101"}}}
	summaries := &fakeSummaries{err: errors.New("esummary down")}
	writer := &fakeWriter{}
	st := state.NewRunState()

	r := newRunner(search, summaries, writer)
	report := r.RunTopic(context.Background(), testTopic("T1", "X"), st, Options{})

	if report.Written != 2 {
		t.Errorf("written = %d, metadata failure must not drop identifiers", report.Written)
	}
	for _, item := range writer.batches[0] {
		if !strings.HasPrefix(item.Title, "PMID ") {
			t.Errorf("expected placeholder title, got %q", item.Title)
		}
	}
}

func TestMonotonicGrowth(t *testing.T) {
	search := &fakeSearch{ids: map[string][]string{"X": {"3", "4"}}}
	writer := &fakeWriter{}
	st := state.NewRunState()
	st.Topic("T1").Append([]string{"1", "2"})

	r := newRunner(search, &fakeSummaries{}, writer)
	r.RunTopic(context.Background(), testTopic("T1", "X"), st, Options{})

	got := st.Topic("T1").ProcessedPMIDs
	if !reflect.DeepEqual(got, []string{"1", "2", "3", "4"}) {
		t.Errorf("processed = %v, prior entries must be preserved in order", got)
	}
}

func TestArchiveRecordsConfirmedWrites(t *testing.T) {
	arch, err := archive.Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("archive.Open: %v", err)
	}
	defer arch.Close()

	search := &fakeSearch{ids: map[string][]string{"X": {"100"}}}
	summaries := &fakeSummaries{data: map[string]pubmed.Summary{
		"100": {Title: "Archived paper", FullJournalName: "J"},
	}}
	writer := &fakeWriter{}
	st := state.NewRunState()

	r := New(search, summaries, writer, arch, logging.Nop())
	r.RunTopic(context.Background(), testTopic("T1", "X"), st, Options{})

	entries, err := arch.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].PMID != "100" || entries[0].Title != "Archived paper" {
		t.Errorf("archive entries = %+v", entries)
	}
}

func TestArchiveSkippedInDryRun(t *testing.T) {
	arch, err := archive.Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("archive.Open: %v", err)
	}
	defer arch.Close()

	search := &fakeSearch{ids: map[string][]string{"X": {"100"}}}
	r := New(search, &fakeSummaries{}, &fakeWriter{}, arch, logging.Nop())
	r.RunTopic(context.Background(), testTopic("T1", "X"), state.NewRunState(), Options{DryRun: true})

	n, _ := arch.Count()
	if n != 0 {
		t.Errorf("dry-run must not archive, got %d entries", n)
	}
}

func TestResultsExport(t *testing.T) {
	search := &fakeSearch{ids: map[string][]string{"X": {"100"}}}
	r := newRunner(search, &fakeSummaries{}, &fakeWriter{})
	st := state.NewRunState()

	results := r.Run(context.Background(), []topics.Topic{testTopic("T1", "X")}, st, Options{Days: 7, RetMax: 50})

	path := filepath.Join(t.TempDir(), "results.json")
	if err := results.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var loaded Results
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if loaded.Config.Days != 7 || loaded.Summary.TotalWritten != 1 || len(loaded.Topics) != 1 {
		t.Errorf("exported results = %+v", loaded)
	}
}
