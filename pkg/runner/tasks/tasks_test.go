package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/client"
	"tableflip.dev/daybook/pkg/client/clienttest"
	"tableflip.dev/daybook/pkg/entry"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newManager(t *testing.T, opts ...client.Option) (*app.Tasks, *clienttest.Server) {
	t.Helper()
	srv := clienttest.New(t)
	c, err := client.New(srv.BaseURL(), opts...)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return app.NewTasks(c, zerolog.Nop()), srv
}

func TestListFiltered(t *testing.T) {
	m, srv := newManager(t)
	srv.AddTask(entry.Task{Title: "Buy milk", Tags: []string{"home"}})
	srv.AddTask(entry.Task{Title: "File taxes"})

	var buf bytes.Buffer
	l := List{Output: Output{Out: &buf}, Tasks: m, Search: "MILK"}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Buy milk") || strings.Contains(out, "File taxes") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Tasks - 1 task\n") {
		t.Fatalf("missing title:\n%s", out)
	}
}

func TestAddJSON(t *testing.T) {
	m, srv := newManager(t)
	var buf bytes.Buffer
	a := Add{Output: Output{Out: &buf, JSON: true}, Tasks: m, Form: entry.TaskForm{Title: "Buy milk", Tags: "home, errand"}}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	var got entry.Task
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got.Title != "Buy milk" || len(got.Tags) != 2 || got.Tags[1] != "errand" {
		t.Fatalf("unexpected task %+v", got)
	}
	if len(srv.Tasks()) != 1 {
		t.Fatal("expected task stored")
	}
}

func TestAddInvalidEmailSendsNothing(t *testing.T) {
	m, srv := newManager(t)
	a := Add{Output: Output{Out: &bytes.Buffer{}}, Tasks: m, Form: entry.TaskForm{Title: "x", UserEmail: "not-an-email"}}
	if err := a.Do(context.Background()); !app.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Fatalf("expected no requests, got %v", srv.Requests())
	}
}

func TestToggleWithAck(t *testing.T) {
	m, srv := newManager(t)
	task := srv.AddTask(entry.Task{Title: "a"})
	srv.ToggleReply = clienttest.ReplyEmpty

	var buf bytes.Buffer
	tg := Toggle{Output: Output{Out: &buf, JSON: true}, Tasks: m, ID: task.ID}
	if err := tg.Do(context.Background()); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	var got entry.Task
	_ = json.Unmarshal(buf.Bytes(), &got)
	if !got.Completed {
		t.Fatalf("expected local flip, got %+v", got)
	}
}

func TestToggleUnknownTask(t *testing.T) {
	m, srv := newManager(t)
	srv.ToggleReply = clienttest.ReplyAck
	tg := Toggle{Output: Output{Out: &bytes.Buffer{}}, Tasks: m, ID: "404"}
	if err := tg.Do(context.Background()); !client.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemindReloadsOnAck(t *testing.T) {
	m, srv := newManager(t)
	task := srv.AddTask(entry.Task{Title: "a"})
	srv.ReminderReply = clienttest.ReplyAck

	var buf bytes.Buffer
	r := Remind{Output: Output{Out: &buf}, Tasks: m, ID: task.ID}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("remind: %v", err)
	}
	if !strings.Contains(buf.String(), "Reminder  on") {
		t.Fatalf("expected reminder on:\n%s", buf.String())
	}
	lists := 0
	for _, req := range srv.Requests() {
		if req == "GET /api/tasks" {
			lists++
		}
	}
	if lists != 2 {
		t.Fatalf("expected a reconciling reload, got %v", srv.Requests())
	}
}

func TestDeleteTwice(t *testing.T) {
	m, srv := newManager(t)
	task := srv.AddTask(entry.Task{Title: "a"})
	for i := 0; i < 2; i++ {
		var buf bytes.Buffer
		d := Delete{Output: Output{Out: &buf}, Tasks: m, ID: task.ID}
		if err := d.Do(context.Background()); err != nil {
			t.Fatalf("delete %d: %v", i, err)
		}
		if !strings.Contains(buf.String(), "Deleted task "+task.ID.String()) {
			t.Fatalf("got %q", buf.String())
		}
	}
}

func TestDuePrivileged(t *testing.T) {
	m, srv := newManager(t, client.WithDevSecret("X-Dev-Secret", "s3cret"))
	past := "2000-01-01"
	srv.AddTask(entry.Task{Title: "overdue", DueDate: &past})

	for _, privileged := range []bool{false, true} {
		var buf bytes.Buffer
		d := Due{Output: Output{Out: &buf}, Tasks: m, Window: "1h", Privileged: privileged}
		if err := d.Do(context.Background()); err != nil {
			t.Fatalf("due: %v", err)
		}
		if !strings.Contains(buf.String(), "Due within 1h") || !strings.Contains(buf.String(), "overdue") {
			t.Fatalf("unexpected output:\n%s", buf.String())
		}
	}
	if got := srv.SecretHeaders(); len(got) != 2 || got[0] != "" || got[1] != "s3cret" {
		t.Fatalf("secret headers = %q", got)
	}
}

func TestDueBadWindow(t *testing.T) {
	m, srv := newManager(t)
	d := Due{Output: Output{Out: &bytes.Buffer{}}, Tasks: m, Window: "90s"}
	if err := d.Do(context.Background()); !app.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(srv.Requests()) != 0 {
		t.Fatal("no request expected")
	}
}

func TestExportFile(t *testing.T) {
	m, srv := newManager(t)
	srv.AddTask(entry.Task{Title: "a"})
	path := filepath.Join(t.TempDir(), "tasks.json")

	var buf bytes.Buffer
	e := Export{Output: Output{Out: &buf}, Tasks: m, Path: path}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "[\n  {\n    \"id\": \"1\"") {
		t.Fatalf("unexpected export:\n%s", b)
	}
	if !strings.Contains(buf.String(), "Exported 1 tasks to "+path) {
		t.Fatalf("got %q", buf.String())
	}
}

func TestExportFileJSONSummary(t *testing.T) {
	m, srv := newManager(t)
	srv.AddTask(entry.Task{Title: "a"})
	srv.AddTask(entry.Task{Title: "b"})
	path := filepath.Join(t.TempDir(), "tasks.json")

	var buf bytes.Buffer
	e := Export{Output: Output{Out: &buf, JSON: true}, Tasks: m, Path: path}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	var got struct {
		Path  string `json:"path"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got.Path != path || got.Count != 2 {
		t.Fatalf("unexpected summary %+v", got)
	}
}
