package usecases

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arjunmalhotra/granola-sync/internal/cache"
	"github.com/arjunmalhotra/granola-sync/internal/domain/meeting"
	"github.com/arjunmalhotra/granola-sync/internal/folders"
	"github.com/arjunmalhotra/granola-sync/internal/ledger"
	"github.com/arjunmalhotra/granola-sync/internal/render"
)

// UnfiledFolder receives records with no folder membership.
const UnfiledFolder = "Unfiled"

// Sync drives one incremental sync run: load the cache, decide per
// record whether work is needed, write artifacts, update the ledger.
// All paths are injected so tests can run against temp directories.
type Sync struct {
	CachePath      string
	VaultDir       string
	LedgerPath     string
	TranscriptsDir string // directory name under VaultDir, e.g. "_transcripts"

	// Now is the clock for ledger timestamps. Defaults to time.Now.
	Now func() time.Time
}

// SyncOptions are the per-run knobs.
type SyncOptions struct {
	Force bool // reprocess every record regardless of change detection
}

// Execute runs the sync. Records are processed sequentially in cache
// order; per-record failures are collected in the report and never
// abort the run. The ledger is persisted at the end of every run, even
// a no-op one.
func (s *Sync) Execute(opts *SyncOptions) (*meeting.SyncReport, error) {
	if opts == nil {
		opts = &SyncOptions{}
	}
	now := s.Now
	if now == nil {
		now = time.Now
	}

	st, err := cache.Load(s.CachePath)
	if err != nil {
		return nil, err
	}

	led, err := ledger.Load(s.LedgerPath)
	if err != nil {
		return nil, err
	}

	resolved := folders.Resolve(st.FolderLists, st.FolderMeta)

	transcriptsDir := filepath.Join(s.VaultDir, s.TranscriptsDir)
	if err := os.MkdirAll(transcriptsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating vault directories: %w", err)
	}

	report := &meeting.SyncReport{VaultDir: s.VaultDir}

	for i := range st.Documents {
		doc := &st.Documents[i]
		if doc.Deleted() {
			continue // tombstone: no files, no ledger entry
		}

		folderList := resolved[doc.ID]
		if len(folderList) == 0 {
			folderList = []string{UnfiledFolder}
		}

		var entry *ledger.Entry
		if e, ok := led.Meetings[doc.ID]; ok {
			entry = &e
		}

		snap := ledger.Snapshot{
			RemoteUpdatedAt: doc.RemoteUpdatedAt(),
			Folders:         folderList,
		}
		if !ledger.ShouldProcess(entry, snap, opts.Force) {
			report.Unchanged++
			continue
		}

		if err := s.writeRecord(doc, folderList, st, report); err != nil {
			// Ledger untouched: the record stays eligible next run.
			report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", doc.ID, err))
			continue
		}

		led.Meetings[doc.ID] = ledger.Entry{
			Title:           render.Title(doc),
			PrimaryFolder:   folderList[0],
			AllFolders:      folderList,
			RemoteUpdatedAt: snap.RemoteUpdatedAt,
			ImportedAt:      now().Format(time.RFC3339),
		}

		if entry == nil {
			report.New++
		} else {
			report.Updated++
		}
	}

	led.Touch(now())
	if err := led.Save(s.LedgerPath); err != nil {
		return nil, err
	}

	return report, nil
}

// writeRecord writes every artifact for one record: the optional
// transcript, the primary note, and one stub per secondary folder. Any
// failure aborts the record before its ledger upsert.
func (s *Sync) writeRecord(doc *meeting.Document, folderList []string, st *cache.State, report *meeting.SyncReport) error {
	title := render.Title(doc)
	primary := folderList[0]
	stem := render.FileStem(title, doc.CreatedAt)
	filename := stem + ".md"

	transcriptRef := ""
	if text := render.ExtractTranscript(st.Transcripts[doc.ID]); text != "" {
		transcriptFile := stem + "_transcript.txt"
		path := filepath.Join(s.VaultDir, s.TranscriptsDir, transcriptFile)
		content := render.TranscriptContent(title, doc.CreatedAt, text)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing transcript: %w", err)
		}
		transcriptRef = s.TranscriptsDir + "/" + transcriptFile
		report.Transcripts++
	}

	primaryDir := filepath.Join(s.VaultDir, primary)
	if err := os.MkdirAll(primaryDir, 0o755); err != nil {
		return fmt.Errorf("creating folder %s: %w", primary, err)
	}
	content := render.MeetingContent(doc, folderList, primary, transcriptRef, st.Panels[doc.ID])
	if err := os.WriteFile(filepath.Join(primaryDir, filename), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing note: %w", err)
	}

	// Stubs are rewritten unconditionally whenever the record is
	// reprocessed; there is no stub-level change detection.
	secondary := folderList[1:]
	for _, folder := range secondary {
		stubDir := filepath.Join(s.VaultDir, folder)
		if err := os.MkdirAll(stubDir, 0o755); err != nil {
			return fmt.Errorf("creating folder %s: %w", folder, err)
		}
		relPath := "../" + primary + "/" + filename
		stub := render.StubContent(title, relPath, doc.CreatedAt, secondary)
		if err := os.WriteFile(filepath.Join(stubDir, filename), []byte(stub), 0o644); err != nil {
			return fmt.Errorf("writing stub in %s: %w", folder, err)
		}
		report.Stubs++
	}

	return nil
}
