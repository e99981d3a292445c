package ledger_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/arjunmalhotra/granola-sync/internal/ledger"
)

func TestLoad_MissingFileYieldsFreshLedger(t *testing.T) {
	t.Parallel()

	led, err := ledger.Load(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if led.LastSync != nil {
		t.Errorf("LastSync = %v, want nil", *led.LastSync)
	}
	if len(led.Meetings) != 0 {
		t.Errorf("Meetings = %v, want empty", led.Meetings)
	}
}

func TestLoad_CorruptFileIsAnError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.Load(path); err == nil {
		t.Fatal("expected error for corrupt ledger")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	led := &ledger.Ledger{Meetings: map[string]ledger.Entry{
		"doc-1": {
			Title:           "Standup",
			PrimaryFolder:   "Work",
			AllFolders:      []string{"Work", "Projects"},
			RemoteUpdatedAt: "2024-03-01T10:00:00Z",
			ImportedAt:      "2024-03-02T09:00:00Z",
		},
	}}
	led.Touch(time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC))

	if err := led.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := ledger.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(led, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestShouldProcess(t *testing.T) {
	t.Parallel()

	entry := &ledger.Entry{
		RemoteUpdatedAt: "2024-03-01T10:00:00Z",
		AllFolders:      []string{"Work", "Projects"},
	}

	cases := []struct {
		name  string
		entry *ledger.Entry
		snap  ledger.Snapshot
		force bool
		want  bool
	}{
		{
			name:  "unchanged record is skipped",
			entry: entry,
			snap:  ledger.Snapshot{RemoteUpdatedAt: "2024-03-01T10:00:00Z", Folders: []string{"Work", "Projects"}},
			want:  false,
		},
		{
			name: "new record is processed",
			snap: ledger.Snapshot{RemoteUpdatedAt: "2024-03-01T10:00:00Z"},
			want: true,
		},
		{
			name:  "force overrides change detection",
			entry: entry,
			snap:  ledger.Snapshot{RemoteUpdatedAt: "2024-03-01T10:00:00Z", Folders: []string{"Work", "Projects"}},
			force: true,
			want:  true,
		},
		{
			name:  "remote timestamp moved",
			entry: entry,
			snap:  ledger.Snapshot{RemoteUpdatedAt: "2024-03-05T10:00:00Z", Folders: []string{"Work", "Projects"}},
			want:  true,
		},
		{
			name:  "folder set gained a member",
			entry: &ledger.Entry{RemoteUpdatedAt: "2024-03-01T10:00:00Z", AllFolders: []string{"Work"}},
			snap:  ledger.Snapshot{RemoteUpdatedAt: "2024-03-01T10:00:00Z", Folders: []string{"Work", "Projects"}},
			want:  true,
		},
		{
			name:  "folder reorder alone does not reprocess",
			entry: entry,
			snap:  ledger.Snapshot{RemoteUpdatedAt: "2024-03-01T10:00:00Z", Folders: []string{"Projects", "Work"}},
			want:  false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ledger.ShouldProcess(tc.entry, tc.snap, tc.force); got != tc.want {
				t.Errorf("ShouldProcess = %v, want %v", got, tc.want)
			}
		})
	}
}
