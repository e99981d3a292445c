package meeting

import "encoding/json"

// Document is one meeting record from the Granola cache. The cache owns
// it; the sync engine treats it as read-only input. Loosely structured
// fields (notes, people, metadata) stay raw and are decoded leniently at
// point of use so one malformed substructure cannot sink the whole record.
type Document struct {
	ID            string
	Title         string          `json:"title"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
	DeletedAt     string          `json:"deleted_at"`
	Summary       string          `json:"summary"`
	NotesMarkdown string          `json:"notes_markdown"`
	NotesPlain    string          `json:"notes_plain"`
	Notes         json.RawMessage `json:"notes"`
	People        json.RawMessage `json:"people"`
	Metadata      json.RawMessage `json:"metadata"`
}

// Deleted reports whether the record carries a tombstone. Tombstoned
// records are excluded from sync entirely.
func (d *Document) Deleted() bool {
	return d.DeletedAt != ""
}

// RemoteUpdatedAt is the timestamp used for change detection. Granola
// leaves updated_at unset on documents that were never edited.
func (d *Document) RemoteUpdatedAt() string {
	if d.UpdatedAt != "" {
		return d.UpdatedAt
	}
	return d.CreatedAt
}

// Panel is one AI-enhanced notes panel attached to a document.
type Panel struct {
	ID      string
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

// SyncReport aggregates the per-record outcomes of one sync run.
type SyncReport struct {
	New         int
	Updated     int
	Unchanged   int
	Stubs       int
	Transcripts int
	Failures    []string // per-record errors, non-fatal
	VaultDir    string
}

// Total is the number of non-tombstoned records seen this run.
func (r *SyncReport) Total() int {
	return r.New + r.Updated + r.Unchanged + len(r.Failures)
}

// ListItem is one row of the `list` command output.
type ListItem struct {
	ID            string
	Title         string
	CreatedAt     string
	Folders       []string
	HasNotes      bool
	HasTranscript bool
}
