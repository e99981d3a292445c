// Package render assembles the markdown artifacts written into the
// knowledge base: the full meeting note, the cross-reference stubs for
// secondary folders, and the transcript text files.
package render

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/arjunmalhotra/granola-sync/internal/domain/meeting"
	"github.com/arjunmalhotra/granola-sync/internal/tiptap"
)

// DefaultTitle is used when a record has no usable title.
const DefaultTitle = "Untitled Meeting"

// Title returns the display title for a record.
func Title(doc *meeting.Document) string {
	if t := strings.TrimSpace(doc.Title); t != "" {
		return t
	}
	return DefaultTitle
}

// MeetingContent builds the full markdown note for one record. Section
// order is fixed; empty sections are omitted. transcriptRef is the
// relative path to the transcript artifact, empty when none was written.
func MeetingContent(doc *meeting.Document, folders []string, primary string, transcriptRef string, panels []meeting.Panel) string {
	title := Title(doc)

	var sb strings.Builder
	sb.WriteString("# " + title + "\n\n")
	sb.WriteString("**Date:** " + FormatDate(doc.CreatedAt) + "\n")
	sb.WriteString("**Primary Folder:** " + primary + "\n")

	if len(folders) > 1 {
		var others []string
		for _, f := range folders {
			if f != primary {
				others = append(others, f)
			}
		}
		if len(others) > 0 {
			sb.WriteString("**Also in:** " + strings.Join(others, ", ") + "\n")
		}
	}

	if people := Attendees(doc.People); len(people) > 0 {
		sb.WriteString("**People:** " + strings.Join(people, ", ") + "\n")
	}

	if url := deepLink(doc.Metadata); url != "" {
		sb.WriteString("**Granola:** [View in app](" + url + ")\n")
	}

	if doc.Summary != "" {
		sb.WriteString("\n## Summary\n\n" + doc.Summary + "\n")
	}

	notes := notesText(doc)
	rendered := renderPanels(panels)

	if notes != "" {
		sb.WriteString("\n## Private Notes\n\n" + notes + "\n")
	} else if len(rendered) == 0 {
		sb.WriteString("\n## Notes\n\n*No notes recorded*\n")
	}

	if len(rendered) > 0 {
		sb.WriteString("\n## AI-Enhanced Notes\n\n")
		for _, p := range rendered {
			if p.title != "" {
				sb.WriteString("### " + p.title + "\n\n")
			}
			sb.WriteString(p.body + "\n\n")
		}
	}

	if transcriptRef != "" {
		sb.WriteString("\n## Transcript\n\n[[" + transcriptRef + "]]\n")
	}

	return sb.String()
}

// StubContent builds the short pointer note written into each secondary
// folder. primaryPath is relative to the stub's own directory.
func StubContent(title, primaryPath, createdAt string, secondary []string) string {
	var sb strings.Builder
	sb.WriteString("# " + title + "\n\n")
	sb.WriteString("→ **This meeting is located in:** [[" + primaryPath + "]]\n\n")
	sb.WriteString("**Date:** " + FormatDate(createdAt) + "\n")

	if len(secondary) > 1 {
		sb.WriteString("**Also filed in:** " + strings.Join(secondary, ", ") + "\n")
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString("[View full meeting →](" + primaryPath + ")\n")
	return sb.String()
}

// notesText resolves the notes source: precomputed markdown wins, then
// plain text, then the structured tree.
func notesText(doc *meeting.Document) string {
	if doc.NotesMarkdown != "" {
		return doc.NotesMarkdown
	}
	if doc.NotesPlain != "" {
		return doc.NotesPlain
	}
	return tiptap.ToMarkdown(doc.Notes)
}

type renderedPanel struct {
	title string
	body  string
}

func renderPanels(panels []meeting.Panel) []renderedPanel {
	var out []renderedPanel
	for _, p := range panels {
		if body := tiptap.ToMarkdown(p.Content); body != "" {
			out = append(out, renderedPanel{title: p.Title, body: body})
		}
	}
	return out
}

// Attendees extracts display names from the people payload. Name falls
// back to email; entries with neither, and entries that are not
// objects, are dropped.
func Attendees(raw json.RawMessage) []string {
	var people struct {
		Attendees []json.RawMessage `json:"attendees"`
	}
	if err := json.Unmarshal(raw, &people); err != nil {
		return nil
	}

	var names []string
	for _, entry := range people.Attendees {
		var person struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		if err := json.Unmarshal(entry, &person); err != nil {
			continue
		}
		name := person.Name
		if name == "" {
			name = person.Email
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func deepLink(raw json.RawMessage) string {
	var md struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &md); err != nil {
		return ""
	}
	return md.URL
}

// FormatDate renders an ISO-8601 timestamp as "YYYY-MM-DD HH:MM", or
// "Unknown" when absent or unparseable.
func FormatDate(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		return "Unknown"
	}
	return t.Format("2006-01-02 15:04")
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(ts string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
