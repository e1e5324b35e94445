package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/client"
	"tableflip.dev/daybook/pkg/client/clienttest"
	"tableflip.dev/daybook/pkg/draft"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/export"
	"tableflip.dev/daybook/pkg/store"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type dirConfig string

func (c dirConfig) BasePath() string            { return string(c) }
func (c dirConfig) APIBaseURL() string          { return "" }
func (c dirConfig) DevSecret() (string, string) { return "", "" }
func (c dirConfig) DraftDelay() time.Duration   { return time.Second }
func (c dirConfig) JournalLimit() int           { return 10 }

func newJournal(t *testing.T, baseURL string) *app.Journal {
	t.Helper()
	c, err := client.New(baseURL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return app.NewJournal(c, zerolog.Nop())
}

func newSaver(t *testing.T) (*draft.Autosaver, *store.Persistence) {
	t.Helper()
	p, err := store.Load(dirConfig(t.TempDir()), zerolog.Nop())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return draft.New(p), p
}

func TestListSinceAndSearch(t *testing.T) {
	srv := clienttest.New(t)
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	srv.AddEntry(entry.JournalEntry{Text: "old run", CreatedAt: entry.Timestamp{Time: now.AddDate(0, 0, -30)}})
	srv.AddEntry(entry.JournalEntry{Text: "new run", CreatedAt: entry.Timestamp{Time: now.AddDate(0, 0, -1)}})
	srv.AddEntry(entry.JournalEntry{Text: "nap", CreatedAt: entry.Timestamp{Time: now}})

	var buf bytes.Buffer
	l := List{Output: Output{Out: &buf, JSON: true}, Journal: newJournal(t, srv.BaseURL()), Search: "run", Since: "1w", Now: func() time.Time { return now }}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []entry.JournalEntry
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Text != "new run" {
		t.Fatalf("got %+v", got)
	}
}

func TestWriteWithMoreInspiration(t *testing.T) {
	srv := clienttest.New(t)
	saver, p := newSaver(t)
	_ = p.SaveDraft(entry.Draft{Text: "stale draft"})

	var buf bytes.Buffer
	w := Write{Output: Output{Out: &buf}, Journal: newJournal(t, srv.BaseURL()), Draft: entry.Draft{Text: "A great day", Tags: "sun"}, More: true, Saver: saver}
	if err := w.Do(context.Background()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Latest Analysis", "[positive]", "A great day", "More for a positive day", "#sun"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if _, ok := p.LoadDraft(); ok {
		t.Fatal("submission should clear the stored draft")
	}
}

func TestComposeSubmits(t *testing.T) {
	srv := clienttest.New(t)
	saver, p := newSaver(t)
	_ = p.SaveDraft(entry.Draft{Text: "Started yesterday", Tags: "old"})

	var buf bytes.Buffer
	c := Compose{
		Output:  Output{Out: &buf},
		Journal: newJournal(t, srv.BaseURL()),
		Saver:   saver,
		In:      strings.NewReader("and it was sad\n"),
		Tags:    "new, tags",
	}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("compose: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Restored draft (17 characters)") || !strings.Contains(out, "[negative]") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Started yesterday\nand it was sad") || !strings.Contains(out, "#new #tags") {
		t.Fatalf("expected restored text continued:\n%s", out)
	}
	if _, ok := p.LoadDraft(); ok {
		t.Fatal("draft should be cleared after submission")
	}
}

func TestComposeKeep(t *testing.T) {
	srv := clienttest.New(t)
	saver, p := newSaver(t)
	c := Compose{
		Output:  Output{Out: &bytes.Buffer{}},
		Journal: newJournal(t, srv.BaseURL()),
		Saver:   saver,
		In:      strings.NewReader("line one\nline two\n"),
		Keep:    true,
	}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("compose: %v", err)
	}
	d, ok := p.LoadDraft()
	if !ok || d.Text != "line one\nline two" {
		t.Fatalf("draft = %+v %v", d, ok)
	}
	for _, r := range srv.Requests() {
		if strings.HasPrefix(r, "POST") {
			t.Fatalf("keep must not submit, saw %s", r)
		}
	}
}

func TestComposeFailureKeepsDraft(t *testing.T) {
	srv := clienttest.New(t)
	base := srv.BaseURL()
	srv.Close()

	saver, p := newSaver(t)
	c := Compose{
		Output:  Output{Out: &bytes.Buffer{}},
		Journal: newJournal(t, base),
		Saver:   saver,
		In:      strings.NewReader("offline thoughts\n"),
	}
	if err := c.Do(context.Background()); err == nil {
		t.Fatal("expected request error")
	}
	if d, ok := p.LoadDraft(); !ok || d.Text != "offline thoughts" {
		t.Fatalf("draft = %+v %v", d, ok)
	}
}

func TestDraftShowAndClear(t *testing.T) {
	_, p := newSaver(t)
	_ = p.SaveDraft(entry.Draft{Text: "hello", Tags: "x"})

	var buf bytes.Buffer
	d := Draft{Output: Output{Out: &buf}, Store: p}
	if err := d.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "5 characters") {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	d.Clear = true
	if err := d.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.LoadDraft(); ok {
		t.Fatal("expected draft cleared")
	}
}

func TestStatsJSON(t *testing.T) {
	srv := clienttest.New(t)
	srv.AddEntry(entry.JournalEntry{Sentiment: entry.Positive, Text: "a"})
	srv.AddEntry(entry.JournalEntry{Text: "b"})
	srv.AddEntry(entry.JournalEntry{Sentiment: entry.Positive, Text: "c"})

	var buf bytes.Buffer
	s := Stats{Output: Output{Out: &buf, JSON: true}, Journal: newJournal(t, srv.BaseURL())}
	if err := s.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	var got Summary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Total != 3 || got.Counts["positive"] != 2 || got.Counts["Unknown"] != 1 || len(got.Chart) != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestExportCSV(t *testing.T) {
	srv := clienttest.New(t)
	srv.AddEntry(entry.JournalEntry{Text: `He said "hi"`, Sentiment: entry.Neutral})
	path := filepath.Join(t.TempDir(), export.JournalFile)

	e := Export{Output: Output{Out: &bytes.Buffer{}}, Journal: newJournal(t, srv.BaseURL()), Path: path}
	if err := e.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(b), "\n")
	if lines[0] != export.JournalHeader || !strings.Contains(lines[1], `"He said ""hi"""`) {
		t.Fatalf("unexpected csv:\n%s", b)
	}
}

func TestExportCSVJSONSummary(t *testing.T) {
	srv := clienttest.New(t)
	srv.AddEntry(entry.JournalEntry{Text: "one"})
	path := filepath.Join(t.TempDir(), export.JournalFile)

	var buf bytes.Buffer
	e := Export{Output: Output{Out: &buf, JSON: true}, Journal: newJournal(t, srv.BaseURL()), Path: path}
	if err := e.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got["path"] != path || got["count"] != float64(1) {
		t.Fatalf("unexpected summary %v", got)
	}
}
