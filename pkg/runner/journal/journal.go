// Package journal runs the journal subcommands.
package journal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/draft"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/export"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/timeutil"
)

var errNoJournal = errors.New("journal: no journal manager")

// Output is shared by every journal runner.
type Output struct {
	JSON   bool
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (o Output) writer() io.Writer {
	if o.Out == nil {
		return color.Output
	}
	return o.Out
}

func (o Output) printer() *printers.PrettyPrint {
	return &printers.PrettyPrint{ShowID: o.ShowID, Out: o.writer()}
}

// List prints recent entries, optionally filtered by a search term and by
// age.
type List struct {
	Output
	Journal *app.Journal
	Limit   int
	Search  string
	// Since keeps entries created within a window such as "1w".
	Since string
	Now   func() time.Time
}

func (l *List) Do(ctx context.Context) error {
	if l.Journal == nil {
		return errNoJournal
	}
	var cutoff time.Time
	if l.Since != "" {
		now := time.Now
		if l.Now != nil {
			now = l.Now
		}
		var err error
		if cutoff, err = timeutil.Since(now(), l.Since); err != nil {
			return &entry.ValidationError{Field: "since", Message: err.Error()}
		}
	}
	if err := l.Journal.Load(ctx, l.Limit); err != nil {
		return err
	}
	entries := l.Journal.Filter(l.Search)
	if !cutoff.IsZero() {
		kept := entries[:0]
		for _, e := range entries {
			if !e.CreatedAt.Before(cutoff) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	if l.JSON {
		return printers.JSON(l.writer(), entries)
	}
	pp := l.printer()
	pp.TitleWithCount("Journal", len(entries), "entry")
	pp.Journal(entries, l.Search != "" || l.Since != "")
	return nil
}

// Write submits one entry and prints the analysis the backend returned.
type Write struct {
	Output
	Journal *app.Journal
	Draft   entry.Draft
	// More also requests a second motivational message.
	More bool
	// Saver, when set, has its stored draft cleared after submission.
	Saver *draft.Autosaver
}

func (w *Write) Do(ctx context.Context) error {
	if w.Journal == nil {
		return errNoJournal
	}
	created, err := w.Journal.Create(ctx, w.Draft)
	if err != nil {
		return err
	}
	if w.Saver != nil {
		if err := w.Saver.Submitted(); err != nil {
			return err
		}
	}
	if w.More {
		if more, err := w.Journal.RequestMoreInspiration(ctx); err != nil {
			return err
		} else if more != nil {
			created = more
		}
	}
	return latest(w.Output, created)
}

func latest(o Output, e *entry.JournalEntry) error {
	if o.JSON {
		return printers.JSON(o.writer(), e)
	}
	pp := o.printer()
	pp.Title("Latest Analysis")
	pp.Entry(e)
	return nil
}

// Compose reads the entry from In line by line, autosaving the draft as it
// grows. End of input submits the entry unless Keep is set, in which case the
// draft is saved for later.
type Compose struct {
	Output
	Journal *app.Journal
	Saver   *draft.Autosaver
	In      io.Reader
	// Tags replaces the restored draft's tags when non-empty.
	Tags string
	Keep bool
}

func (c *Compose) Do(ctx context.Context) error {
	if c.Journal == nil || c.Saver == nil {
		return errNoJournal
	}
	in := c.In
	if in == nil {
		in = os.Stdin
	}

	d, restored := c.Saver.Restore()
	if restored && !c.JSON {
		_, _ = color.New(color.Faint).Fprintf(c.writer(), "Restored draft (%d characters)\n", len([]rune(d.Text)))
	}
	if c.Tags != "" {
		d.Tags = c.Tags
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
		readErr <- sc.Err()
	}()

	for done := false; !done; {
		select {
		case <-ctx.Done():
			// Interrupted while typing: keep what we have.
			_ = c.Saver.Flush()
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				done = true
				break
			}
			if d.Text != "" {
				d.Text += "\n"
			}
			d.Text += line
			c.Saver.Change(d)
		}
	}
	if err := <-readErr; err != nil {
		_ = c.Saver.Flush()
		return err
	}

	if c.Keep || d.Empty() {
		c.Saver.Change(d)
		if err := c.Saver.Flush(); err != nil {
			return err
		}
		if !c.JSON {
			if d.Empty() {
				_, _ = fmt.Fprintln(c.writer(), "Nothing to submit; draft cleared.")
			} else {
				_, _ = fmt.Fprintln(c.writer(), "Draft saved.")
			}
		}
		return nil
	}

	created, err := c.Journal.Create(ctx, d)
	if err != nil {
		// The draft survives a failed submission.
		_ = c.Saver.Flush()
		return err
	}
	if err := c.Saver.Submitted(); err != nil {
		return err
	}
	return latest(c.Output, created)
}

// DraftWatcher streams draft changes.
type DraftWatcher interface {
	WatchDraft(ctx context.Context) (<-chan store.DraftEvent, error)
}

// Draft shows or clears the stored draft, or follows it as it changes.
type Draft struct {
	Output
	Store store.DraftStore
	Clear bool
	// Follow prints the draft again after every change until ctx ends.
	Follow  bool
	Watcher DraftWatcher
}

func (d *Draft) Do(ctx context.Context) error {
	if d.Store == nil {
		return errors.New("journal: no draft store")
	}
	if d.Clear {
		if err := d.Store.DeleteDraft(); err != nil {
			return err
		}
		if !d.JSON {
			_, _ = fmt.Fprintln(d.writer(), "Draft cleared.")
		}
		return nil
	}

	cur, ok := d.Store.LoadDraft()
	if err := d.show(cur, ok); err != nil {
		return err
	}
	if !d.Follow {
		return nil
	}
	if d.Watcher == nil {
		return errors.New("journal: draft store cannot be watched")
	}
	events, err := d.Watcher.WatchDraft(ctx)
	if err != nil {
		return err
	}
	for evt := range events {
		if !d.JSON {
			_, _ = fmt.Fprintln(d.writer(), strings.Repeat("─", 20))
		}
		if err := d.show(evt.Draft, evt.Present); err != nil {
			return err
		}
	}
	return nil
}

func (d *Draft) show(cur entry.Draft, ok bool) error {
	if d.JSON {
		if !ok {
			return printers.JSON(d.writer(), nil)
		}
		return printers.JSON(d.writer(), cur)
	}
	d.printer().Draft(cur, ok)
	return nil
}

// Stats prints the sentiment chart, the distribution and a month of activity.
type Stats struct {
	Output
	Journal *app.Journal
	Limit   int
	Month   time.Time
}

// Summary is the JSON form of Stats.
type Summary struct {
	Total  int                `json:"total"`
	Counts map[string]int     `json:"counts"`
	Chart  []app.SentimentBar `json:"chart"`
}

func (s *Stats) Do(ctx context.Context) error {
	if s.Journal == nil {
		return errNoJournal
	}
	if err := s.Journal.Load(ctx, s.Limit); err != nil {
		return err
	}
	entries := s.Journal.Entries()
	chart := app.SentimentChart(entries)
	if s.JSON {
		return printers.JSON(s.writer(), Summary{Total: len(entries), Counts: app.SentimentCounts(entries), Chart: chart})
	}
	pp := s.printer()
	if len(entries) == 0 {
		pp.Journal(nil, false)
		return nil
	}
	pp.SentimentChart(chart)
	pp.SentimentDistribution(chart)
	month := s.Month
	if month.IsZero() {
		month = time.Now()
	}
	pp.JournalMonth(month, entries)
	return nil
}

// Export writes recent entries to Path as CSV. "-" writes to Out.
type Export struct {
	Output
	Journal *app.Journal
	Limit   int
	Path    string
}

func (e *Export) Do(ctx context.Context) error {
	if e.Journal == nil {
		return errNoJournal
	}
	if err := e.Journal.Load(ctx, e.Limit); err != nil {
		return err
	}
	entries := e.Journal.Entries()
	if e.Path == "-" {
		return export.JournalCSV(e.writer(), entries)
	}
	path := e.Path
	if path == "" {
		path = export.JournalFile
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.JournalCSV(f, entries); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if e.JSON {
		return printers.JSON(e.writer(), map[string]any{"path": path, "count": len(entries)})
	}
	_, _ = fmt.Fprintf(e.writer(), "Exported %d entries to %s\n", len(entries), path)
	return nil
}
