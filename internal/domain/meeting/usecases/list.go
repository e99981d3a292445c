package usecases

import (
	"sort"
	"time"

	"github.com/arjunmalhotra/granola-sync/internal/cache"
	"github.com/arjunmalhotra/granola-sync/internal/domain/meeting"
	"github.com/arjunmalhotra/granola-sync/internal/folders"
	"github.com/arjunmalhotra/granola-sync/internal/render"
	"github.com/arjunmalhotra/granola-sync/internal/tiptap"
)

// List reads the cache and reports meetings without writing anything.
type List struct {
	CachePath string

	Now func() time.Time
}

// ListOptions filter the listing.
type ListOptions struct {
	Days      int  // only meetings created in the last N days; 0 = all
	NotesOnly bool // only meetings with any notes content
}

// Execute returns matching meetings, newest first.
func (l *List) Execute(opts *ListOptions) ([]meeting.ListItem, error) {
	if opts == nil {
		opts = &ListOptions{}
	}
	now := l.Now
	if now == nil {
		now = time.Now
	}

	st, err := cache.Load(l.CachePath)
	if err != nil {
		return nil, err
	}

	resolved := folders.Resolve(st.FolderLists, st.FolderMeta)

	var cutoff time.Time
	if opts.Days > 0 {
		cutoff = now().AddDate(0, 0, -opts.Days)
	}

	var items []meeting.ListItem
	for i := range st.Documents {
		doc := &st.Documents[i]
		if doc.Deleted() {
			continue
		}

		created, parseErr := time.Parse(time.RFC3339, doc.CreatedAt)
		if !cutoff.IsZero() && (parseErr != nil || created.Before(cutoff)) {
			continue
		}

		hasNotes := doc.NotesMarkdown != "" || doc.NotesPlain != "" || tiptap.ToMarkdown(doc.Notes) != ""
		if opts.NotesOnly && !hasNotes {
			continue
		}

		folderList := resolved[doc.ID]
		if len(folderList) == 0 {
			folderList = []string{UnfiledFolder}
		}

		items = append(items, meeting.ListItem{
			ID:            doc.ID,
			Title:         render.Title(doc),
			CreatedAt:     doc.CreatedAt,
			Folders:       folderList,
			HasNotes:      hasNotes,
			HasTranscript: render.ExtractTranscript(st.Transcripts[doc.ID]) != "",
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})

	return items, nil
}
