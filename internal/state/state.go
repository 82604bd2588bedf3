// Package state persists the per-topic record of already-imported PMIDs
// between runs.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// TopicState tracks what has been imported for one topic. ProcessedPMIDs
// is append-only and duplicate-free; order is preserved across runs.
type TopicState struct {
	ProcessedPMIDs []string `json:"processed_pmids"`
	LastUpdate     string   `json:"last_update,omitempty"`
}

// RunState is the whole durable state document.
type RunState struct {
	LastRun string                 `json:"last_run,omitempty"`
	Topics  map[string]*TopicState `json:"topics"`
}

// Store reads and writes the state file.
type Store struct {
	path string
	log  *zap.SugaredLogger
}

// NewStore creates a store for the given state file path.
func NewStore(path string, log *zap.SugaredLogger) *Store {
	return &Store{path: path, log: log}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the state file. An absent, unreadable, or malformed file is
// not an error: the run starts over with empty state, and the condition
// is logged because it can re-import previously seen records.
func (s *Store) Load() *RunState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Errorf("reading %s, starting fresh: %v", s.path, err)
		}
		return NewRunState()
	}

	var st RunState
	if err := json.Unmarshal(data, &st); err != nil {
		s.log.Errorf("parsing %s, starting fresh (previously imported records may be re-imported): %v", s.path, err)
		return NewRunState()
	}
	if st.Topics == nil {
		st.Topics = make(map[string]*TopicState)
	}
	return &st
}

// Save stamps the last-run time and overwrites the state file atomically
// (temp file + rename).
func (s *Store) Save(st *RunState) error {
	st.LastRun = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tmp-state-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing state: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("renaming state: %w", err)
	}

	success = true
	return nil
}

// NewRunState returns an empty state document.
func NewRunState() *RunState {
	return &RunState{Topics: make(map[string]*TopicState)}
}

// Topic returns the state for the named topic, creating an empty one if
// absent. A null entry decoded from the state file counts as absent.
func (r *RunState) Topic(name string) *TopicState {
	ts := r.Topics[name]
	if ts == nil {
		ts = &TopicState{ProcessedPMIDs: []string{}}
		r.Topics[name] = ts
	}
	return ts
}

// ProcessedSet builds a membership set over ProcessedPMIDs.
func (t *TopicState) ProcessedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(t.ProcessedPMIDs))
	for _, id := range t.ProcessedPMIDs {
		set[id] = struct{}{}
	}
	return set
}

// Append records newly-written PMIDs and stamps the per-topic update
// time. IDs already present are skipped so the sequence stays
// duplicate-free.
func (t *TopicState) Append(ids []string) {
	seen := t.ProcessedSet()
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		t.ProcessedPMIDs = append(t.ProcessedPMIDs, id)
	}
	t.LastUpdate = time.Now().Format(time.RFC3339)
}
