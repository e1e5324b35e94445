// Package tasks runs the task subcommands against an app.Tasks manager.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/export"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/timeutil"
)

var errNoTasks = errors.New("tasks: no task manager")

// Output is shared by every task runner.
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

func (o Output) task(t *entry.Task) error {
	if o.JSON {
		return printers.JSON(o.writer(), t)
	}
	o.printer().Task(t)
	return nil
}

// List prints the task list, optionally filtered.
type List struct {
	Output
	Tasks  *app.Tasks
	Search string
}

func (l *List) Do(ctx context.Context) error {
	if l.Tasks == nil {
		return errNoTasks
	}
	if err := l.Tasks.Load(ctx); err != nil {
		return err
	}
	tasks := l.Tasks.Filter(l.Search)
	if l.JSON {
		return printers.JSON(l.writer(), tasks)
	}
	pp := l.printer()
	pp.TitleWithCount("Tasks", len(tasks), "task")
	pp.Tasks(tasks, l.Search != "")
	return nil
}

// Add creates a task and prints the updated list.
type Add struct {
	Output
	Tasks *app.Tasks
	Form  entry.TaskForm
}

func (a *Add) Do(ctx context.Context) error {
	if a.Tasks == nil {
		return errNoTasks
	}
	// Validate before any request is made.
	if _, err := a.Form.Input(); err != nil {
		return err
	}
	if err := a.Tasks.Load(ctx); err != nil {
		return err
	}
	created, err := a.Tasks.Create(ctx, a.Form)
	if err != nil {
		return err
	}
	if a.JSON {
		return printers.JSON(a.writer(), created)
	}
	pp := a.printer()
	all := a.Tasks.Tasks()
	pp.TitleWithCount("Tasks", len(all), "task")
	pp.Tasks(all, false)
	return nil
}

// Toggle flips completion of one task.
type Toggle struct {
	Output
	Tasks *app.Tasks
	ID    entry.ID
}

func (t *Toggle) Do(ctx context.Context) error {
	if t.Tasks == nil {
		return errNoTasks
	}
	// Loaded first so an acknowledgment without a body has a task to flip.
	if err := t.Tasks.Load(ctx); err != nil {
		return err
	}
	got, err := t.Tasks.ToggleCompletion(ctx, t.ID)
	if err != nil {
		return err
	}
	if got == nil {
		return fmt.Errorf("task %s is not in the task list", t.ID)
	}
	return t.task(got)
}

// Remind flips the reminder flag of one task.
type Remind struct {
	Output
	Tasks *app.Tasks
	ID    entry.ID
}

func (r *Remind) Do(ctx context.Context) error {
	if r.Tasks == nil {
		return errNoTasks
	}
	if err := r.Tasks.Load(ctx); err != nil {
		return err
	}
	got, err := r.Tasks.ToggleReminder(ctx, r.ID)
	if err != nil {
		return err
	}
	if got == nil {
		return fmt.Errorf("task %s is not in the task list", r.ID)
	}
	return r.task(got)
}

// Delete removes one task. Deleting a task that is already gone succeeds.
type Delete struct {
	Output
	Tasks *app.Tasks
	ID    entry.ID
}

func (d *Delete) Do(ctx context.Context) error {
	if d.Tasks == nil {
		return errNoTasks
	}
	if err := d.Tasks.Remove(ctx, d.ID); err != nil {
		return err
	}
	if d.JSON {
		return printers.JSON(d.writer(), map[string]any{"id": d.ID, "deleted": true})
	}
	_, _ = fmt.Fprintf(d.writer(), "Deleted task %s\n", d.ID)
	return nil
}

// Get prints one task.
type Get struct {
	Output
	Tasks *app.Tasks
	ID    entry.ID
}

func (g *Get) Do(ctx context.Context) error {
	if g.Tasks == nil {
		return errNoTasks
	}
	got, err := g.Tasks.Get(ctx, g.ID)
	if err != nil {
		return err
	}
	return g.task(got)
}

// Due prints the tasks due within Window.
type Due struct {
	Output
	Tasks *app.Tasks
	// Window is a human window such as "30m", "2h" or "45".
	Window     string
	Privileged bool
}

func (d *Due) Do(ctx context.Context) error {
	if d.Tasks == nil {
		return errNoTasks
	}
	minutes, err := timeutil.ParseMinutes(d.Window)
	if err != nil {
		return &entry.ValidationError{Field: "window_minutes", Message: err.Error()}
	}
	due, err := d.Tasks.Due(ctx, minutes, d.Privileged)
	if err != nil {
		return err
	}
	if d.JSON {
		return printers.JSON(d.writer(), due)
	}
	pp := d.printer()
	pp.TitleWithCount(fmt.Sprintf("Due within %s", timeutil.FormatWindow(time.Duration(minutes)*time.Minute)), len(due), "task")
	pp.Tasks(due, true)
	return nil
}

// Export writes the task list to Path as indented JSON. "-" writes to Out.
type Export struct {
	Output
	Tasks *app.Tasks
	Path  string
}

func (e *Export) Do(ctx context.Context) error {
	if e.Tasks == nil {
		return errNoTasks
	}
	if err := e.Tasks.Load(ctx); err != nil {
		return err
	}
	tasks := e.Tasks.Tasks()
	if e.Path == "-" {
		return export.TasksJSON(e.writer(), tasks)
	}
	path := e.Path
	if path == "" {
		path = export.TasksFile
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.TasksJSON(f, tasks); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if e.JSON {
		return printers.JSON(e.writer(), map[string]any{"path": path, "count": len(tasks)})
	}
	_, _ = fmt.Fprintf(e.writer(), "Exported %d tasks to %s\n", len(tasks), path)
	return nil
}

// Calendar prints a month with the tasks due on each day.
type Calendar struct {
	Output
	Tasks *app.Tasks
	Month time.Time
}

func (c *Calendar) Do(ctx context.Context) error {
	if c.Tasks == nil {
		return errNoTasks
	}
	if err := c.Tasks.Load(ctx); err != nil {
		return err
	}
	month := c.Month
	if month.IsZero() {
		month = time.Now()
	}
	c.printer().TaskMonth(month, c.Tasks.Tasks())
	return nil
}
