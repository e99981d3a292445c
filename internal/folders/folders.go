// Package folders resolves the many-to-many document/folder relation
// into per-document folder name lists.
package folders

import "github.com/arjunmalhotra/granola-sync/internal/cache"

// UnknownFolder is used when a folder has no metadata title.
const UnknownFolder = "Unknown Folder"

// Resolve maps each document id to its folder display names. Order
// matters: folders appear in relation-scan order, and the first one is
// the document's primary folder. Documents with no membership have no
// entry; the orchestrator files those under "Unfiled".
func Resolve(lists []cache.FolderList, meta map[string]cache.FolderMeta) map[string][]string {
	names := make(map[string]string, len(meta))
	for id, m := range meta {
		names[id] = m.Title
	}

	resolved := make(map[string][]string)
	for _, fl := range lists {
		name := names[fl.FolderID]
		if name == "" {
			name = UnknownFolder
		}
		for _, docID := range fl.DocumentIDs {
			resolved[docID] = append(resolved[docID], name)
		}
	}
	return resolved
}
