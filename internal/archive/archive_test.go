package archive

import (
	"path/filepath"
	"testing"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestRecordAndRecent(t *testing.T) {
	a := openTestArchive(t)

	entries := []Entry{
		{PMID: "100", Topic: "T1", Title: "First", Journal: "J1", PubDate: "2026 Jan", ImportedAt: "2026-01-01T00:00:00Z"},
		{PMID: "101", Topic: "T1", Title: "Second", Journal: "J2", PubDate: "2026 Feb", ImportedAt: "2026-02-01T00:00:00Z"},
	}
	if err := a.Record(entries); err != nil {
		t.Fatalf("Record: %v", err)
	}

	recent, err := a.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].PMID != "101" {
		t.Errorf("newest first: got %s", recent[0].PMID)
	}
	if recent[1].Title != "First" {
		t.Errorf("entry fields wrong: %+v", recent[1])
	}
}

func TestRecordIgnoresDuplicates(t *testing.T) {
	a := openTestArchive(t)

	e := Entry{PMID: "100", Topic: "T1", Title: "First", ImportedAt: "2026-01-01T00:00:00Z"}
	if err := a.Record([]Entry{e}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := a.Record([]Entry{e}); err != nil {
		t.Fatalf("Record duplicate: %v", err)
	}

	n, err := a.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 item, got %d", n)
	}

	// Same PMID under a different topic is a distinct row.
	e.Topic = "T2"
	if err := a.Record([]Entry{e}); err != nil {
		t.Fatalf("Record second topic: %v", err)
	}
	n, _ = a.Count()
	if n != 2 {
		t.Errorf("expected 2 items, got %d", n)
	}
}

func TestRecordEmpty(t *testing.T) {
	a := openTestArchive(t)
	if err := a.Record(nil); err != nil {
		t.Errorf("Record(nil): %v", err)
	}
}

func TestRecentLimit(t *testing.T) {
	a := openTestArchive(t)

	var entries []Entry
	for _, pmid := range []string{"1", "2", "3"} {
		entries = append(entries, Entry{PMID: pmid, Topic: "T1", ImportedAt: "2026-01-0" + pmid + "T00:00:00Z"})
	}
	if err := a.Record(entries); err != nil {
		t.Fatalf("Record: %v", err)
	}

	recent, err := a.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].PMID != "3" {
		t.Errorf("Recent(2) = %+v", recent)
	}
}
