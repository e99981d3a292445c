package folders_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arjunmalhotra/granola-sync/internal/cache"
	"github.com/arjunmalhotra/granola-sync/internal/folders"
)

func TestResolve_FirstMembershipWins(t *testing.T) {
	t.Parallel()

	lists := []cache.FolderList{
		{FolderID: "f-work", DocumentIDs: []string{"doc-1", "doc-2"}},
		{FolderID: "f-proj", DocumentIDs: []string{"doc-1"}},
	}
	meta := map[string]cache.FolderMeta{
		"f-work": {Title: "Work"},
		"f-proj": {Title: "Projects"},
	}

	got := folders.Resolve(lists, meta)
	want := map[string][]string{
		"doc-1": {"Work", "Projects"},
		"doc-2": {"Work"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve (-want +got):\n%s", diff)
	}
}

func TestResolve_ReorderedRelationChangesPrimary(t *testing.T) {
	t.Parallel()

	lists := []cache.FolderList{
		{FolderID: "f-proj", DocumentIDs: []string{"doc-1"}},
		{FolderID: "f-work", DocumentIDs: []string{"doc-1"}},
	}
	meta := map[string]cache.FolderMeta{
		"f-work": {Title: "Work"},
		"f-proj": {Title: "Projects"},
	}

	got := folders.Resolve(lists, meta)["doc-1"]
	// Deliberate: relation order decides the primary folder.
	if got[0] != "Projects" {
		t.Errorf("primary = %q, want %q", got[0], "Projects")
	}
}

func TestResolve_MissingMetadataFallsBack(t *testing.T) {
	t.Parallel()

	lists := []cache.FolderList{{FolderID: "f-x", DocumentIDs: []string{"doc-1"}}}

	got := folders.Resolve(lists, nil)
	if diff := cmp.Diff([]string{folders.UnknownFolder}, got["doc-1"]); diff != "" {
		t.Errorf("Resolve (-want +got):\n%s", diff)
	}
}

func TestResolve_UnfiledDocumentHasNoEntry(t *testing.T) {
	t.Parallel()

	got := folders.Resolve(nil, nil)
	if _, ok := got["doc-1"]; ok {
		t.Error("expected no entry for unfiled document")
	}
}
