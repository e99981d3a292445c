package render

import (
	"encoding/json"
	"strings"
)

// ExtractTranscript normalizes a raw transcript payload to plain text.
// An empty return means "no transcript"; the caller must not write an
// artifact for it. Segments with empty text and entries that are not
// objects are dropped. A payload that is already a flat string is
// returned as-is.
func ExtractTranscript(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var flat string
	if err := json.Unmarshal(raw, &flat); err == nil {
		return strings.TrimSpace(flat)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return ""
	}

	var segments []string
	for _, entry := range entries {
		var seg struct {
			Speaker string `json:"speaker"`
			Text    string `json:"text"`
		}
		if err := json.Unmarshal(entry, &seg); err != nil {
			continue
		}
		if seg.Text == "" {
			continue
		}
		if seg.Speaker != "" {
			segments = append(segments, "["+seg.Speaker+"] "+seg.Text)
		} else {
			segments = append(segments, seg.Text)
		}
	}
	return strings.Join(segments, "\n\n")
}

// TranscriptContent wraps the normalized transcript text with the
// header written into every transcript artifact.
func TranscriptContent(title, createdAt, text string) string {
	var sb strings.Builder
	sb.WriteString("Transcript: " + title + "\n")
	sb.WriteString("Date: " + FormatDate(createdAt) + "\n")
	sb.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
	sb.WriteString(text)
	return sb.String()
}
