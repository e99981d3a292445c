package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arjunmalhotra/granola-sync/internal/domain/meeting"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) SyncStarted(force bool) {
	fmt.Fprintf(f.w, "🍯 Granola → knowledge base sync\n")
	if force {
		f.Warning("Force mode: re-importing all meetings")
	}
}

func (f *Formatter) LastSync(ts string) {
	if len(ts) > 19 {
		ts = ts[:19]
	}
	fmt.Fprintf(f.w, "📅 Last sync: %s\n", ts)
}

func (f *Formatter) FirstSync() {
	fmt.Fprintf(f.w, "📅 First sync - importing all meetings\n")
}

func (f *Formatter) SyncReport(report *meeting.SyncReport) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(f.w, "\n%s\n📊 SYNC REPORT\n%s\n\n", rule, rule)
	fmt.Fprintf(f.w, "✨ New meetings:        %d\n", report.New)
	fmt.Fprintf(f.w, "🔄 Updated meetings:    %d\n", report.Updated)
	fmt.Fprintf(f.w, "⏭️  Unchanged meetings:  %d\n", report.Unchanged)
	fmt.Fprintf(f.w, "📎 Stub files written:  %d\n", report.Stubs)
	fmt.Fprintf(f.w, "🎤 Transcripts written: %d\n", report.Transcripts)
	if len(report.Failures) > 0 {
		fmt.Fprintf(f.w, "❌ Failed records:      %d\n", len(report.Failures))
	}
	fmt.Fprintf(f.w, "\n📁 Total meetings:      %d\n", report.Total())
	fmt.Fprintf(f.w, "📂 Location:            %s\n", report.VaultDir)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) MeetingListHeader(count int) {
	fmt.Fprintf(f.w, "📁 Meetings (%d):\n\n", count)
}

func (f *Formatter) MeetingListItem(item meeting.ListItem, date string) {
	status := ""
	if item.HasNotes {
		status += " 📝"
	}
	if item.HasTranscript {
		status += " 🎤"
	}
	fmt.Fprintf(f.w, "  %s  %s  [%s]%s\n", date, item.Title, strings.Join(item.Folders, ", "), status)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}
