package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/glyph"
)

const width = len("11 12 13 14 15 16 17") // an example week

// JournalMonth prints the month containing then, highlighting days with at
// least one entry.
func (pp *PrettyPrint) JournalMonth(then time.Time, entries []entry.JournalEntry) {
	days := DaysIn(then)
	count := make([]int, days)
	for _, e := range entries {
		if e.CreatedAt.IsZero() {
			continue
		}
		local := e.CreatedAt.Local()
		if local.Year() == then.Year() && local.Month() == then.Month() {
			count[local.Day()-1]++
		}
	}
	pp.PrintMonthCount(then, count)
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	w := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)
	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), m)

	// Pad out the start of the month.
	_, _ = fmt.Fprint(w, strings.Repeat("   ", int(d)))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	days := DaysIn(then)
	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		}
		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

// TaskMonth lists every day of the month containing then with the tasks due
// on it, followed by the tasks that have no due date.
func (pp *PrettyPrint) TaskMonth(then time.Time, tasks []entry.Task) {
	w := pp.out()
	p := color.New()
	b := color.New(color.Bold)
	i := color.New(color.Italic)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)

	now := time.Now()
	byDay := make(map[int][]*entry.Task)
	var open []*entry.Task
	for k := range tasks {
		t := &tasks[k]
		due, ok := t.Due()
		if !ok {
			open = append(open, t)
			continue
		}
		if due.Year() == then.Year() && due.Month() == then.Month() {
			byDay[due.Day()] = append(byDay[due.Day()], t)
		}
	}

	d := StartDay(then)
	for day := 1; day <= DaysIn(then); day++ {
		today := now.Year() == then.Year() && now.Month() == then.Month() && now.Day() == day
		printer := p
		switch {
		case d == time.Sunday && today:
			printer = bs
		case d == time.Sunday:
			printer = s
		case today:
			printer = b
		}
		_, _ = printer.Fprintf(w, "%2d %s", day, d.String()[0:1])

		for n, t := range byDay[day] {
			if n > 0 {
				_, _ = p.Fprint(w, "    ")
			}
			_, _ = p.Fprintf(w, "  %s\n", taskLine(t))
		}
		if len(byDay[day]) == 0 {
			_, _ = p.Fprint(w, "\n")
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
		}
	}

	if len(open) > 0 {
		_, _ = i.Fprintf(w, "\nOpen\n")
		for _, t := range open {
			_, _ = p.Fprintf(w, "%s\n", taskLine(t))
		}
	}
}

func taskLine(t *entry.Task) string {
	if t.Completed {
		return fmt.Sprintf("%s %s", glyph.Completed, glyph.Strike(t.Title))
	}
	return fmt.Sprintf("%s %s", glyph.Task, t.Title)
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
