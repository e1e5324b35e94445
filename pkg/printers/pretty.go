package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/glyph"
)

// Empty-state messages, chosen by whether a search term is active.
const (
	NoTasks           = "No tasks yet. Create your first task with `daybook tasks add`."
	NoMatchingTasks   = "No tasks match your search."
	NoEntries         = "No journal entries yet. Write your first entry with `daybook journal write`."
	NoMatchingEntries = "No entries match your search."
)

const longDate = "January 2, 2006, 03:04 PM"

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) empty(msg string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), " %s\n\n", msg)
}

// Tasks renders tasks as a table, or the empty-state message.
func (pp *PrettyPrint) Tasks(tasks []entry.Task, searching bool) {
	if len(tasks) == 0 {
		if searching {
			pp.empty(NoMatchingTasks)
		} else {
			pp.empty(NoTasks)
		}
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	for i := range tasks {
		row := pp.taskRow(&tasks[i])
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(tasks[i].ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) taskRow(t *entry.Task) []interface{} {
	faint := color.New(color.Faint)
	bullet := glyph.Task.String()
	title := t.Title
	if t.Completed {
		bullet = glyph.Completed.String()
		title = faint.Sprint(glyph.Strike(title))
	}

	due := ""
	if t.DueDate != nil && *t.DueDate != "" {
		due = fmt.Sprintf("%s %s", glyph.Due, *t.DueDate)
	}

	return []interface{}{bullet, title, due, Tags(t.Tags), pp.reminder(t)}
}

func (pp *PrettyPrint) reminder(t *entry.Task) string {
	if !t.ReminderEnabled {
		return ""
	}
	bell := color.New(color.FgCyan).Sprint(glyph.Reminder.String())
	switch {
	case t.ReminderSent:
		return bell + " sent"
	case t.LastReminderStatus != "":
		return bell + " " + t.LastReminderStatus
	default:
		return bell
	}
}

// Task renders one task with every field the backend reports.
func (pp *PrettyPrint) Task(t *entry.Task) {
	b := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("ID"), t.ID)
	tbl.AddRow(b.Sprint("Title"), t.Title)
	state := "open"
	if t.Completed {
		state = "completed"
	}
	tbl.AddRow(b.Sprint("Status"), state)
	if t.DueDate != nil && *t.DueDate != "" {
		tbl.AddRow(b.Sprint("Due"), *t.DueDate)
	}
	if len(t.Tags) > 0 {
		tbl.AddRow(b.Sprint("Tags"), Tags(t.Tags))
	}
	if t.UserEmail != "" {
		contact := t.UserEmail
		if t.UserName != "" {
			contact = fmt.Sprintf("%s <%s>", t.UserName, t.UserEmail)
		}
		tbl.AddRow(b.Sprint("Contact"), contact)
	}
	reminder := "off"
	if t.ReminderEnabled {
		reminder = "on"
	}
	if t.ReminderSent {
		reminder += ", sent"
	}
	if t.LastReminderStatus != "" {
		reminder += ", last " + t.LastReminderStatus
	}
	if t.LastReminderSentAt != nil && !t.LastReminderSentAt.IsZero() {
		reminder += " at " + t.LastReminderSentAt.Local().Format(longDate)
	}
	tbl.AddRow(b.Sprint("Reminder"), reminder)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Journal renders entries newest first, or the empty-state message.
func (pp *PrettyPrint) Journal(entries []entry.JournalEntry, searching bool) {
	if len(entries) == 0 {
		if searching {
			pp.empty(NoMatchingEntries)
		} else {
			pp.empty(NoEntries)
		}
		return
	}
	for i := range entries {
		pp.Entry(&entries[i])
	}
}

// Entry renders one journal entry.
func (pp *PrettyPrint) Entry(e *entry.JournalEntry) {
	faint := color.New(color.Faint)
	msg := color.New(color.FgBlue, color.Italic)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	w := pp.out()
	if pp.ShowID {
		_, _ = y.Fprintf(w, "%s ", e.ID)
	}
	if !e.CreatedAt.IsZero() {
		_, _ = faint.Fprintf(w, "%s ", e.CreatedAt.Local().Format(longDate))
	}
	_, _ = fmt.Fprintln(w, Badge(e.Sentiment))
	_, _ = fmt.Fprintf(w, "%s %s\n", glyph.Entry, e.Text)
	if e.MotivationalMessage != "" {
		_, _ = msg.Fprintf(w, "%s %s\n", glyph.Inspiration, e.MotivationalMessage)
	}
	if len(e.Tags) > 0 {
		_, _ = fmt.Fprintln(w, Tags(e.Tags))
	}
	_, _ = fmt.Fprintln(w, "")
}

// Draft renders the stored journal draft.
func (pp *PrettyPrint) Draft(d entry.Draft, present bool) {
	faint := color.New(color.Faint)
	if !present {
		pp.empty("No saved draft.")
		return
	}
	_, _ = fmt.Fprintln(pp.out(), d.Text)
	if strings.TrimSpace(d.Tags) != "" {
		_, _ = fmt.Fprintln(pp.out(), Tags(entry.ParseTags(d.Tags)))
	}
	_, _ = faint.Fprintf(pp.out(), "%d characters\n", len([]rune(d.Text)))
}

// Tags renders tags as "#a #b".
func Tags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	c := color.New(color.FgMagenta)
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = c.Sprint("#" + t)
	}
	return strings.Join(parts, " ")
}
