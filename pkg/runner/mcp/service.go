// Package mcp exposes the daybook task list and journal as Model Context
// Protocol tools and resources.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/timeutil"
)

// Service is the session shared by every tool call: one task list and one
// journal for the lifetime of the server.
type Service struct {
	Tasks   *app.Tasks
	Journal *app.Journal
	// JournalLimit is used when a call does not give one.
	JournalLimit int

	log zerolog.Logger
}

// ErrTaskNotFound is returned when a task is in neither the local list nor
// the backend's.
var ErrTaskNotFound = errors.New("task not found")

var errNotConfigured = errors.New("service is not configured")

// NewService builds a service over the given managers.
func NewService(tasks *app.Tasks, journal *app.Journal, log zerolog.Logger) *Service {
	return &Service{
		Tasks:        tasks,
		Journal:      journal,
		JournalLimit: 10,
		log:          log.With().Str("component", "mcp").Logger(),
	}
}

// SentimentSummary aggregates the loaded journal.
type SentimentSummary struct {
	Total  int                `json:"total"`
	Counts map[string]int     `json:"counts"`
	Chart  []app.SentimentBar `json:"chart"`
}

// ListTasks reloads the task list and returns the tasks matching search.
func (s *Service) ListTasks(ctx context.Context, search string) ([]entry.Task, error) {
	if s.Tasks == nil {
		return nil, errNotConfigured
	}
	if err := s.Tasks.Load(ctx); err != nil {
		return nil, err
	}
	return s.Tasks.Filter(search), nil
}

// CreateTask validates and creates a task.
func (s *Service) CreateTask(ctx context.Context, form entry.TaskForm) (*entry.Task, error) {
	if s.Tasks == nil {
		return nil, errNotConfigured
	}
	return s.Tasks.Create(ctx, form)
}

// GetTask fetches one task.
func (s *Service) GetTask(ctx context.Context, id entry.ID) (*entry.Task, error) {
	if s.Tasks == nil {
		return nil, errNotConfigured
	}
	return s.Tasks.Get(ctx, id)
}

// ToggleTask flips completion.
func (s *Service) ToggleTask(ctx context.Context, id entry.ID) (*entry.Task, error) {
	if err := s.ensureTask(ctx, id); err != nil {
		return nil, err
	}
	t, err := s.Tasks.ToggleCompletion(ctx, id)
	if err == nil && t == nil {
		err = ErrTaskNotFound
	}
	return t, err
}

// ToggleReminder flips the reminder flag.
func (s *Service) ToggleReminder(ctx context.Context, id entry.ID) (*entry.Task, error) {
	if err := s.ensureTask(ctx, id); err != nil {
		return nil, err
	}
	t, err := s.Tasks.ToggleReminder(ctx, id)
	if err == nil && t == nil {
		err = ErrTaskNotFound
	}
	return t, err
}

// DeleteTask removes a task. Deleting a missing task succeeds.
func (s *Service) DeleteTask(ctx context.Context, id entry.ID) error {
	if s.Tasks == nil {
		return errNotConfigured
	}
	return s.Tasks.Remove(ctx, id)
}

// DueTasks returns the tasks due within window, for example "30m" or "2h".
func (s *Service) DueTasks(ctx context.Context, window string, privileged bool) ([]entry.Task, int, error) {
	if s.Tasks == nil {
		return nil, 0, errNotConfigured
	}
	minutes, err := timeutil.ParseMinutes(window)
	if err != nil {
		return nil, 0, &entry.ValidationError{Field: "window", Message: err.Error()}
	}
	tasks, err := s.Tasks.Due(ctx, minutes, privileged)
	return tasks, minutes, err
}

// ListJournal reloads recent entries and returns those matching search.
func (s *Service) ListJournal(ctx context.Context, limit int, search string) ([]entry.JournalEntry, error) {
	if s.Journal == nil {
		return nil, errNotConfigured
	}
	if limit <= 0 {
		limit = s.JournalLimit
	}
	if err := s.Journal.Load(ctx, limit); err != nil {
		return nil, err
	}
	return s.Journal.Filter(search), nil
}

// CreateEntry submits a journal entry. It becomes the entry InspireMore
// refreshes.
func (s *Service) CreateEntry(ctx context.Context, d entry.Draft) (*entry.JournalEntry, error) {
	if s.Journal == nil {
		return nil, errNotConfigured
	}
	return s.Journal.Create(ctx, d)
}

// InspireMore refreshes the motivational message of the last entry created
// through this service. It returns nil when none was created yet.
func (s *Service) InspireMore(ctx context.Context) (*entry.JournalEntry, error) {
	if s.Journal == nil {
		return nil, errNotConfigured
	}
	return s.Journal.RequestMoreInspiration(ctx)
}

// Sentiment loads recent entries and aggregates their sentiment.
func (s *Service) Sentiment(ctx context.Context, limit int) (*SentimentSummary, error) {
	entries, err := s.ListJournal(ctx, limit, "")
	if err != nil {
		return nil, err
	}
	return &SentimentSummary{
		Total:  len(entries),
		Counts: app.SentimentCounts(entries),
		Chart:  app.SentimentChart(entries),
	}, nil
}

// ensureTask loads the task list when id is not held locally, so that an
// acknowledgment without a body still has a task to update.
func (s *Service) ensureTask(ctx context.Context, id entry.ID) error {
	if s.Tasks == nil {
		return errNotConfigured
	}
	if id == "" {
		return fmt.Errorf("id is required")
	}
	for _, t := range s.Tasks.Tasks() {
		if t.ID == id {
			return nil
		}
	}
	s.log.Debug().Str("id", id.String()).Msg("Task not loaded, refreshing")
	return s.Tasks.Load(ctx)
}
