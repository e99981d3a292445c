// Package cache loads the Granola desktop app's local cache file. The
// file is double-encoded: the outer JSON carries the real payload as a
// string under "cache", and the inner payload holds a "state" object
// with the documents, transcripts, panels, and folder relations.
package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/arjunmalhotra/granola-sync/internal/domain/meeting"
)

// State is the slice of the Granola cache the sync engine consumes.
//
// Documents, FolderLists, and each document's panel list preserve the
// JSON object key order of the cache file. That order is load-bearing:
// the first folder a document appears under becomes its primary folder,
// and panels render in panel-id order.
type State struct {
	Documents   []meeting.Document
	Transcripts map[string]json.RawMessage
	Panels      map[string][]meeting.Panel
	FolderLists []FolderList
	FolderMeta  map[string]FolderMeta
}

// FolderList is one folder's document membership, in stored order.
type FolderList struct {
	FolderID    string
	DocumentIDs []string
}

// FolderMeta is the display metadata for one folder.
type FolderMeta struct {
	Title string `json:"title"`
}

// Load reads and unwraps the cache file. A missing file is the one
// fatal precondition of the whole tool.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("granola cache not found at %s", path)
		}
		return nil, fmt.Errorf("reading granola cache: %w", err)
	}
	return Parse(data)
}

// Parse decodes the double-encoded cache payload.
func Parse(data []byte) (*State, error) {
	var outer struct {
		Cache string `json:"cache"`
	}
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, fmt.Errorf("parsing cache envelope: %w", err)
	}

	var inner struct {
		State struct {
			Documents             json.RawMessage            `json:"documents"`
			Transcripts           map[string]json.RawMessage `json:"transcripts"`
			DocumentPanels        json.RawMessage            `json:"documentPanels"`
			DocumentLists         json.RawMessage            `json:"documentLists"`
			DocumentListsMetadata map[string]FolderMeta      `json:"documentListsMetadata"`
		} `json:"state"`
	}
	if err := json.Unmarshal([]byte(outer.Cache), &inner); err != nil {
		return nil, fmt.Errorf("parsing cache payload: %w", err)
	}

	st := &State{
		Transcripts: inner.State.Transcripts,
		Panels:      make(map[string][]meeting.Panel),
		FolderMeta:  inner.State.DocumentListsMetadata,
	}
	if st.Transcripts == nil {
		st.Transcripts = make(map[string]json.RawMessage)
	}
	if st.FolderMeta == nil {
		st.FolderMeta = make(map[string]FolderMeta)
	}

	for _, m := range objectMembers(inner.State.Documents) {
		var doc meeting.Document
		if err := json.Unmarshal(m.value, &doc); err != nil {
			continue // malformed record, non-fatal
		}
		doc.ID = m.key
		st.Documents = append(st.Documents, doc)
	}

	for _, m := range objectMembers(inner.State.DocumentLists) {
		var ids []string
		if err := json.Unmarshal(m.value, &ids); err != nil {
			continue
		}
		st.FolderLists = append(st.FolderLists, FolderList{FolderID: m.key, DocumentIDs: ids})
	}

	for _, docMember := range objectMembers(inner.State.DocumentPanels) {
		for _, panelMember := range objectMembers(docMember.value) {
			var panel meeting.Panel
			if err := json.Unmarshal(panelMember.value, &panel); err != nil {
				continue
			}
			panel.ID = panelMember.key
			st.Panels[docMember.key] = append(st.Panels[docMember.key], panel)
		}
	}

	return st, nil
}

type member struct {
	key   string
	value json.RawMessage
}

// objectMembers walks a JSON object token by token, preserving key
// order. Go maps would shuffle it. Non-object input yields nil.
func objectMembers(raw json.RawMessage) []member {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var members []member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return members
		}
		key, ok := keyTok.(string)
		if !ok {
			return members
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return members
		}
		members = append(members, member{key: key, value: value})
	}
	return members
}
