// Package ledger persists the per-record sync bookkeeping that makes
// repeated runs incremental. The ledger maps record ids to the state
// last written to disk; a record is reprocessed only when its remote
// timestamp or folder set no longer matches.
package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"
)

// Entry is the last-seen state for one record. Entries are created on
// first write, overwritten on every subsequent write, and never pruned,
// even when the record later disappears upstream.
type Entry struct {
	Title           string   `json:"title"`
	PrimaryFolder   string   `json:"primary_folder"`
	AllFolders      []string `json:"all_folders"`
	RemoteUpdatedAt string   `json:"last_updated_granola"`
	ImportedAt      string   `json:"imported_at"`
}

// Ledger is the persisted sync state. LastSync is updated once per run
// whether or not any record changed.
type Ledger struct {
	LastSync *string          `json:"last_sync"`
	Meetings map[string]Entry `json:"meetings"`
}

// Snapshot is the current upstream view of a record, compared against
// an Entry to decide whether reprocessing is needed.
type Snapshot struct {
	RemoteUpdatedAt string
	Folders         []string
}

// Load reads the ledger file. A missing file yields a fresh empty
// ledger; a corrupt file is an error so a damaged ledger cannot trigger
// a silent full re-import.
func Load(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Ledger{Meetings: make(map[string]Entry)}, nil
		}
		return nil, fmt.Errorf("reading sync ledger: %w", err)
	}

	var led Ledger
	if err := json.Unmarshal(data, &led); err != nil {
		return nil, fmt.Errorf("parsing sync ledger %s: %w", path, err)
	}
	if led.Meetings == nil {
		led.Meetings = make(map[string]Entry)
	}
	return &led, nil
}

// Save writes the ledger via write-then-rename, so a crash mid-save
// leaves the previous ledger intact for the next run.
func (l *Ledger) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sync ledger: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing sync ledger: %w", err)
	}
	return nil
}

// Touch stamps the global last-sync time.
func (l *Ledger) Touch(now time.Time) {
	ts := now.Format(time.RFC3339)
	l.LastSync = &ts
}

// ShouldProcess is the change-detection predicate: process iff the run
// is forced, the record is new to the ledger, its remote timestamp
// moved, or its folder set changed.
func ShouldProcess(entry *Entry, snap Snapshot, force bool) bool {
	if force || entry == nil {
		return true
	}
	if entry.RemoteUpdatedAt != snap.RemoteUpdatedAt {
		return true
	}
	return !sameFolderSet(entry.AllFolders, snap.Folders)
}

// sameFolderSet compares folder membership as sets: reordering alone
// does not force a rewrite, but that is a separate question from the
// primary-folder choice, which is positional.
func sameFolderSet(a, b []string) bool {
	seen := make(map[string]struct{}, len(a))
	for _, f := range a {
		seen[f] = struct{}{}
	}
	other := make(map[string]struct{}, len(b))
	for _, f := range b {
		other[f] = struct{}{}
	}
	if len(seen) != len(other) {
		return false
	}
	for f := range seen {
		if _, ok := other[f]; !ok {
			return false
		}
	}
	return true
}
