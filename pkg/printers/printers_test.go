package printers

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/entry"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newTestPrinter() (*PrettyPrint, *bytes.Buffer) {
	var buf bytes.Buffer
	return &PrettyPrint{Out: &buf}, &buf
}

func TestTasksEmptyStates(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Tasks(nil, false)
	if !strings.Contains(buf.String(), NoTasks) {
		t.Fatalf("got %q", buf.String())
	}
	buf.Reset()
	pp.Tasks([]entry.Task{}, true)
	if !strings.Contains(buf.String(), NoMatchingTasks) {
		t.Fatalf("got %q", buf.String())
	}
}

func TestTasksRows(t *testing.T) {
	pp, buf := newTestPrinter()
	due := "2024-05-01"
	pp.ShowID = true
	pp.Tasks([]entry.Task{
		{ID: "t1", Title: "Buy milk", DueDate: &due, Tags: []string{"home", "errand"}, ReminderEnabled: true, ReminderSent: true},
		{ID: "t2", Title: "Done thing", Completed: true},
	}, false)
	out := buf.String()
	for _, want := range []string{"t1", "Buy milk", "› 2024-05-01", "#home #errand", "♪ sent", "✘", "t2"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestJournalEntry(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Journal([]entry.JournalEntry{{
		Text:                "Ran a 5k",
		Tags:                []string{"health"},
		Sentiment:           entry.Positive,
		MotivationalMessage: "Great pace!",
	}}, false)
	out := buf.String()
	for _, want := range []string{"[positive]", "Ran a 5k", "! Great pace!", "#health"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	pp.Journal(nil, true)
	if !strings.Contains(buf.String(), NoMatchingEntries) {
		t.Fatalf("got %q", buf.String())
	}
}

func TestBadge(t *testing.T) {
	if got := Badge(""); got != "[Unknown]" {
		t.Fatalf("got %q", got)
	}
	if got := Badge("Mixed"); got != "[Mixed]" {
		t.Fatalf("got %q", got)
	}
	if SentimentAttribute("NEGATIVE") != color.FgRed || SentimentAttribute("whatever") != color.FgHiBlack {
		t.Fatal("unexpected sentiment colors")
	}
}

func TestSentimentCharts(t *testing.T) {
	pp, buf := newTestPrinter()
	bars := []app.SentimentBar{{Sentiment: "positive", Count: 2}, {Sentiment: "Unknown", Count: 1}}
	pp.SentimentChart(bars)
	out := buf.String()
	if !strings.Contains(out, strings.Repeat("█", chartWidth)) || !strings.Contains(out, strings.Repeat("█", chartWidth/2)) {
		t.Fatalf("unexpected bars:\n%s", out)
	}

	buf.Reset()
	pp.SentimentDistribution(bars)
	out = buf.String()
	for _, want := range []string{"positive: 2", "66.7%", "Unknown: 1", "33.3%"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPercent(t *testing.T) {
	if Percent(0, 0) != "0.0%" || Percent(1, 4) != "25.0%" {
		t.Fatal("unexpected percent")
	}
}

func TestDraft(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Draft(entry.Draft{Text: "héllo", Tags: "a, b"}, true)
	out := buf.String()
	if !strings.Contains(out, "5 characters") || !strings.Contains(out, "#a #b") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestCalendars(t *testing.T) {
	march := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local)
	pp, buf := newTestPrinter()
	pp.JournalMonth(march, []entry.JournalEntry{{CreatedAt: entry.Timestamp{Time: march.AddDate(0, 0, 4)}}})
	if !strings.Contains(buf.String(), "March 2024") || !strings.Contains(buf.String(), "31") {
		t.Fatalf("got:\n%s", buf.String())
	}

	buf.Reset()
	due := "2024-03-05"
	pp.TaskMonth(march, []entry.Task{{Title: "Dentist", DueDate: &due}, {Title: "Someday"}})
	out := buf.String()
	if !strings.Contains(out, " 5 T  ● Dentist") {
		t.Fatalf("missing due task in:\n%s", out)
	}
	if !strings.Contains(out, "Open\n● Someday") {
		t.Fatalf("missing open task in:\n%s", out)
	}
}

func TestMonthHelpers(t *testing.T) {
	feb := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	if DaysIn(feb) != 29 || StartDay(feb) != time.Thursday {
		t.Fatalf("days=%d start=%v", DaysIn(feb), StartDay(feb))
	}
	if NextMonth(feb).Month() != time.March {
		t.Fatal("expected march")
	}
}
