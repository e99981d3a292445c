package usecases_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arjunmalhotra/granola-sync/internal/domain/meeting/usecases"
	"github.com/arjunmalhotra/granola-sync/internal/ledger"
)

// writeCache writes a double-encoded cache file from a state object.
func writeCache(t *testing.T, dir string, state map[string]any) string {
	t.Helper()
	inner, err := json.Marshal(map[string]any{"state": state})
	require.NoError(t, err)
	outer, err := json.Marshal(map[string]string{"cache": string(inner)})
	require.NoError(t, err)
	path := filepath.Join(dir, "cache-v3.json")
	require.NoError(t, os.WriteFile(path, outer, 0o644))
	return path
}

func newSync(t *testing.T, cachePath string) (*usecases.Sync, string) {
	t.Helper()
	vault := t.TempDir()
	return &usecases.Sync{
		CachePath:      cachePath,
		VaultDir:       vault,
		LedgerPath:     filepath.Join(vault, ".granola-sync-state.json"),
		TranscriptsDir: "_transcripts",
		Now:            func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) },
	}, vault
}

func baseState() map[string]any {
	return map[string]any{
		"documents": map[string]any{
			"doc-1": map[string]any{
				"title":      "Q1 Planning!!",
				"created_at": "2024-03-01T10:00:00Z",
				"updated_at": "2024-03-01T11:00:00Z",
				"summary":    "Planning the quarter.",
			},
		},
		"transcripts": map[string]any{
			"doc-1": []map[string]any{
				{"speaker": "A", "text": "hello"},
				{"speaker": nil, "text": ""},
				{"speaker": "B", "text": "bye"},
			},
		},
		"documentLists": map[string]any{
			"f1-work": []string{"doc-1"},
			"f2-proj": []string{"doc-1"},
		},
		"documentListsMetadata": map[string]any{
			"f1-work": map[string]any{"title": "Work"},
			"f2-proj": map[string]any{"title": "Projects"},
		},
	}
}

func TestSync_WritesPrimaryStubAndTranscript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cachePath := writeCache(t, dir, baseState())
	syncer, vault := newSync(t, cachePath)

	report, err := syncer.Execute(nil)
	require.NoError(t, err)
	require.Equal(t, 1, report.New)
	require.Equal(t, 1, report.Stubs)
	require.Equal(t, 1, report.Transcripts)
	require.Empty(t, report.Failures)

	filename := "2024-03-01_Q1 Planning.md"

	primary, err := os.ReadFile(filepath.Join(vault, "Work", filename))
	require.NoError(t, err)
	require.Contains(t, string(primary), "# Q1 Planning!!")
	require.Contains(t, string(primary), "**Primary Folder:** Work")
	require.Contains(t, string(primary), "[[_transcripts/2024-03-01_Q1 Planning_transcript.txt]]")

	stub, err := os.ReadFile(filepath.Join(vault, "Projects", filename))
	require.NoError(t, err)
	require.Contains(t, string(stub), "[[../Work/"+filename+"]]")

	transcript, err := os.ReadFile(filepath.Join(vault, "_transcripts", "2024-03-01_Q1 Planning_transcript.txt"))
	require.NoError(t, err)
	require.Contains(t, string(transcript), "[A] hello\n\n[B] bye")

	led, err := ledger.Load(syncer.LedgerPath)
	require.NoError(t, err)
	require.NotNil(t, led.LastSync)
	entry := led.Meetings["doc-1"]
	require.Equal(t, "Work", entry.PrimaryFolder)
	require.Equal(t, []string{"Work", "Projects"}, entry.AllFolders)
	require.Equal(t, "2024-03-01T11:00:00Z", entry.RemoteUpdatedAt)
}

func TestSync_SecondRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cachePath := writeCache(t, dir, baseState())
	syncer, vault := newSync(t, cachePath)

	_, err := syncer.Execute(nil)
	require.NoError(t, err)

	primaryPath := filepath.Join(vault, "Work", "2024-03-01_Q1 Planning.md")
	before, err := os.Stat(primaryPath)
	require.NoError(t, err)

	report, err := syncer.Execute(nil)
	require.NoError(t, err)
	require.Equal(t, 0, report.New)
	require.Equal(t, 0, report.Updated)
	require.Equal(t, 1, report.Unchanged)
	require.Equal(t, report.Total(), report.Unchanged)

	after, err := os.Stat(primaryPath)
	require.NoError(t, err)
	require.Equal(t, before.ModTime(), after.ModTime(), "unchanged record must not be rewritten")
}

func TestSync_ForceReprocessesEverything(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cachePath := writeCache(t, dir, baseState())
	syncer, _ := newSync(t, cachePath)

	_, err := syncer.Execute(nil)
	require.NoError(t, err)

	report, err := syncer.Execute(&usecases.SyncOptions{Force: true})
	require.NoError(t, err)
	require.Equal(t, 1, report.Updated)
	require.Equal(t, 0, report.Unchanged)
}

func TestSync_FolderChangeTriggersReprocess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	state := baseState()
	state["documentLists"] = map[string]any{"f1-work": []string{"doc-1"}}
	cachePath := writeCache(t, dir, state)
	syncer, vault := newSync(t, cachePath)

	_, err := syncer.Execute(nil)
	require.NoError(t, err)

	// Same timestamp, but the record gains a second folder.
	state["documentLists"] = map[string]any{
		"f1-work": []string{"doc-1"},
		"f2-proj": []string{"doc-1"},
	}
	writeCache(t, dir, state)

	report, err := syncer.Execute(nil)
	require.NoError(t, err)
	require.Equal(t, 1, report.Updated)
	require.Equal(t, 0, report.Unchanged)

	_, err = os.Stat(filepath.Join(vault, "Projects", "2024-03-01_Q1 Planning.md"))
	require.NoError(t, err, "stub for the new folder must exist")

	led, err := ledger.Load(syncer.LedgerPath)
	require.NoError(t, err)
	require.Equal(t, []string{"Work", "Projects"}, led.Meetings["doc-1"].AllFolders)
}

func TestSync_TombstonedRecordIsInvisible(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	state := baseState()
	state["documents"].(map[string]any)["doc-1"].(map[string]any)["deleted_at"] = "2024-03-05T00:00:00Z"
	cachePath := writeCache(t, dir, state)
	syncer, vault := newSync(t, cachePath)

	report, err := syncer.Execute(nil)
	require.NoError(t, err)
	require.Equal(t, 0, report.Total())

	_, err = os.Stat(filepath.Join(vault, "Work"))
	require.True(t, os.IsNotExist(err), "no folder should be created for a tombstoned record")

	led, err := ledger.Load(syncer.LedgerPath)
	require.NoError(t, err)
	require.Empty(t, led.Meetings)
	require.NotNil(t, led.LastSync, "last_sync is stamped even on a no-op run")
}

func TestSync_UnfiledRecordLandsInUnfiled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	state := baseState()
	state["documentLists"] = map[string]any{}
	cachePath := writeCache(t, dir, state)
	syncer, vault := newSync(t, cachePath)

	report, err := syncer.Execute(nil)
	require.NoError(t, err)
	require.Equal(t, 1, report.New)
	require.Equal(t, 0, report.Stubs)

	_, err = os.Stat(filepath.Join(vault, "Unfiled", "2024-03-01_Q1 Planning.md"))
	require.NoError(t, err)
}

func TestSync_MissingCacheIsFatal(t *testing.T) {
	t.Parallel()

	syncer, _ := newSync(t, filepath.Join(t.TempDir(), "nope.json"))
	_, err := syncer.Execute(nil)
	require.Error(t, err)
}
