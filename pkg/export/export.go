// Package export writes local copies of the task list and journal.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"tableflip.dev/daybook/pkg/entry"
)

// Default file names used when no output path is given.
const (
	TasksFile   = "tasks.json"
	JournalFile = "journal-entries.csv"
)

// JournalHeader is the first row of every journal export.
const JournalHeader = "Date,Text,Sentiment,Tags,Motivational Message"

// TasksJSON writes tasks as a JSON array indented by two spaces.
func TasksJSON(w io.Writer, tasks []entry.Task) error {
	if tasks == nil {
		tasks = []entry.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("export: encode tasks: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("export: write tasks: %w", err)
	}
	return nil
}

// JournalCSV writes entries as CSV in the local time zone.
func JournalCSV(w io.Writer, entries []entry.JournalEntry) error {
	return journalCSV(w, entries, time.Local)
}

// journalCSV always quotes the free text columns and leaves the others bare,
// with a missing sentiment as an empty cell. encoding/csv only quotes when it
// must, so rows are assembled by hand.
func journalCSV(w io.Writer, entries []entry.JournalEntry, loc *time.Location) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(JournalHeader)
	for _, e := range entries {
		bw.WriteByte('\n')
		bw.WriteString(shortDate(e.CreatedAt.Time, loc))
		bw.WriteByte(',')
		bw.WriteString(quote(e.Text))
		bw.WriteByte(',')
		bw.WriteString(string(e.Sentiment))
		bw.WriteByte(',')
		bw.WriteString(strings.Join(e.Tags, "; "))
		bw.WriteByte(',')
		bw.WriteString(quote(e.MotivationalMessage))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: write journal: %w", err)
	}
	return nil
}

func shortDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(loc)
	return fmt.Sprintf("%d/%d/%d", t.Month(), t.Day(), t.Year())
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
