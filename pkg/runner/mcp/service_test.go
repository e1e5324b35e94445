package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/client"
	"tableflip.dev/daybook/pkg/client/clienttest"
	"tableflip.dev/daybook/pkg/entry"
)

func newService(t *testing.T, opts ...client.Option) (*Service, *clienttest.Server) {
	t.Helper()
	srv := clienttest.New(t)
	c, err := client.New(srv.BaseURL(), opts...)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	log := zerolog.Nop()
	return NewService(app.NewTasks(c, log), app.NewJournal(c, log), log), srv
}

func TestServiceCreateAndList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.CreateTask(ctx, entry.TaskForm{Title: "Buy milk", Tags: "home, , errand"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected backend id")
	}
	if len(created.Tags) != 2 {
		t.Fatalf("expected empty tag dropped, got %v", created.Tags)
	}
	if _, err := svc.CreateTask(ctx, entry.TaskForm{Title: "File taxes"}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	got, err := svc.ListTasks(ctx, "errand")
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Buy milk" {
		t.Fatalf("unexpected tasks %+v", got)
	}
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	svc, srv := newService(t)
	_, err := svc.CreateTask(context.Background(), entry.TaskForm{Title: "  "})
	if !app.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestServiceToggleLoadsUnknownTask(t *testing.T) {
	ctx := context.Background()
	svc, srv := newService(t)
	srv.ToggleReply = clienttest.ReplyAck
	task := srv.AddTask(entry.Task{Title: "Stretch"})

	toggled, err := svc.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("expected task completed")
	}
}

func TestServiceToggleMissing(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.ToggleTask(context.Background(), "404")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestServiceToggleReminder(t *testing.T) {
	ctx := context.Background()
	svc, srv := newService(t)
	srv.ReminderReply = clienttest.ReplyReminderAck
	task := srv.AddTask(entry.Task{Title: "Call mom", UserEmail: "me@example.com"})

	got, err := svc.ToggleReminder(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleReminder failed: %v", err)
	}
	if !got.ReminderEnabled {
		t.Fatal("expected reminder enabled")
	}
}

func TestServiceDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, srv := newService(t)
	task := srv.AddTask(entry.Task{Title: "Old"})

	for i := 0; i < 2; i++ {
		if err := svc.DeleteTask(ctx, task.ID); err != nil {
			t.Fatalf("delete %d: %v", i, err)
		}
	}
	if len(srv.Tasks()) != 0 {
		t.Fatal("expected task removed")
	}
}

func TestServiceDueWindow(t *testing.T) {
	ctx := context.Background()
	svc, srv := newService(t, client.WithDevSecret("X-Dev-Secret", "shh"))

	_, minutes, err := svc.DueTasks(ctx, "2h", true)
	if err != nil {
		t.Fatalf("DueTasks failed: %v", err)
	}
	if minutes != 120 {
		t.Fatalf("expected 120 minutes, got %d", minutes)
	}
	if got := srv.SecretHeaders(); len(got) != 1 || got[0] != "shh" {
		t.Fatalf("expected secret header, got %v", got)
	}

	if _, _, err := svc.DueTasks(ctx, "soon", false); !app.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceJournalFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	if got, err := svc.InspireMore(ctx); err != nil || got != nil {
		t.Fatalf("expected nothing to inspire, got %+v, %v", got, err)
	}

	created, err := svc.CreateEntry(ctx, entry.Draft{Text: "A great walk", Tags: "outdoors"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if created.Sentiment != entry.Positive {
		t.Fatalf("expected positive sentiment, got %q", created.Sentiment)
	}

	inspired, err := svc.InspireMore(ctx)
	if err != nil {
		t.Fatalf("InspireMore failed: %v", err)
	}
	if inspired == nil || inspired.MotivationalMessage == created.MotivationalMessage {
		t.Fatalf("expected a fresh message, got %+v", inspired)
	}

	if _, err := svc.CreateEntry(ctx, entry.Draft{Text: "An awful commute"}); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	summary, err := svc.Sentiment(ctx, 0)
	if err != nil {
		t.Fatalf("Sentiment failed: %v", err)
	}
	if summary.Total != 2 || summary.Counts["positive"] != 1 || summary.Counts["negative"] != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestServiceUnconfigured(t *testing.T) {
	svc := &Service{}
	if _, err := svc.ListTasks(context.Background(), ""); !errors.Is(err, errNotConfigured) {
		t.Fatalf("expected errNotConfigured, got %v", err)
	}
	if _, err := svc.ListJournal(context.Background(), 0, ""); !errors.Is(err, errNotConfigured) {
		t.Fatalf("expected errNotConfigured, got %v", err)
	}
}

func TestArgumentHelpers(t *testing.T) {
	var req mcp.CallToolRequest
	req.Params.Arguments = map[string]any{
		"search":     "milk",
		"limit":      float64(5),
		"privileged": true,
	}
	if got := optString(req, "search"); got != "milk" {
		t.Fatalf("optString = %q", got)
	}
	if got := optInt(req, "limit"); got != 5 {
		t.Fatalf("optInt = %d", got)
	}
	if !optBool(req, "privileged") {
		t.Fatal("optBool = false")
	}
	if got := optString(req, "missing"); got != "" {
		t.Fatalf("optString missing = %q", got)
	}
}

func TestTemplateArg(t *testing.T) {
	cases := map[string]any{
		"7": "7",
		"8": []string{"8"},
		"":  []string{},
	}
	for want, in := range cases {
		if got := templateArg(in); got != want {
			t.Errorf("templateArg(%v) = %q, want %q", in, got, want)
		}
	}
	if got := templateArg(nil); got != "" {
		t.Errorf("templateArg(nil) = %q", got)
	}
}
