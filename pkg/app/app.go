// Package app holds the in-memory view of the backend's tasks and journal
// entries. Managers apply the results of user actions to that view so CLIs
// and the MCP bridge share one set of synchronization rules.
package app

import (
	"context"
	"errors"

	"tableflip.dev/daybook/pkg/client"
	"tableflip.dev/daybook/pkg/entry"
)

// TaskBackend is the subset of *client.Client used by Tasks.
type TaskBackend interface {
	ListTasks(ctx context.Context) ([]entry.Task, error)
	CreateTask(ctx context.Context, in entry.TaskInput) (*entry.Task, error)
	GetTask(ctx context.Context, id entry.ID) (*entry.Task, error)
	ToggleTask(ctx context.Context, id entry.ID) (client.Mutation, error)
	ToggleReminder(ctx context.Context, id entry.ID) (client.Mutation, error)
	DeleteTask(ctx context.Context, id entry.ID) error
	DueTasks(ctx context.Context, minutes int, privileged bool) ([]entry.Task, error)
}

// JournalBackend is the subset of *client.Client used by Journal.
type JournalBackend interface {
	ListJournal(ctx context.Context, limit int) ([]entry.JournalEntry, error)
	CreateJournalEntry(ctx context.Context, in entry.JournalInput) (*entry.JournalEntry, error)
	Inspire(ctx context.Context, sentiment entry.Sentiment) (string, error)
}

var _ TaskBackend = (*client.Client)(nil)
var _ JournalBackend = (*client.Client)(nil)

var errNoBackend = errors.New("app: no backend configured")

// IsValidation reports whether err was raised before any request was made.
func IsValidation(err error) bool {
	var verr *entry.ValidationError
	return errors.As(err, &verr)
}
