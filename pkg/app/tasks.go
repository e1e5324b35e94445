package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/client"
	"tableflip.dev/daybook/pkg/entry"
)

// Tasks is the authoritative in-memory copy of the task list. Requests are
// issued without holding the lock, so overlapping calls (a double-clicked
// delete) race exactly as they would in a browser.
type Tasks struct {
	backend TaskBackend
	log     zerolog.Logger

	mu    sync.RWMutex
	tasks []entry.Task
}

// NewTasks returns an empty manager. Call Load to populate it.
func NewTasks(backend TaskBackend, log zerolog.Logger) *Tasks {
	return &Tasks{
		backend: backend,
		log:     log.With().Str("component", "tasks").Logger(),
		tasks:   []entry.Task{},
	}
}

// Tasks returns a copy of the current collection in backend order.
func (m *Tasks) Tasks() []entry.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTasks(m.tasks)
}

// Filter returns the tasks matching term. See FilterTasks.
func (m *Tasks) Filter(term string) []entry.Task {
	return FilterTasks(m.Tasks(), term)
}

// Load replaces the collection with the backend's current list. On failure
// the previous collection is kept.
func (m *Tasks) Load(ctx context.Context) error {
	if m.backend == nil {
		return errNoBackend
	}
	tasks, err := m.backend.ListTasks(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("Failed to load tasks")
		return err
	}
	m.mu.Lock()
	m.tasks = cloneTasks(tasks)
	m.mu.Unlock()
	return nil
}

// Create validates the form, creates the task and appends the stored record.
// Validation failures return an *entry.ValidationError and send nothing.
func (m *Tasks) Create(ctx context.Context, form entry.TaskForm) (*entry.Task, error) {
	if m.backend == nil {
		return nil, errNoBackend
	}
	in, err := form.Input()
	if err != nil {
		return nil, err
	}
	created, err := m.backend.CreateTask(ctx, in)
	if err != nil {
		m.log.Error().Err(err).Str("title", in.Title).Msg("Failed to create task")
		return nil, err
	}
	m.mu.Lock()
	m.tasks = append(m.tasks, *created.Clone())
	m.mu.Unlock()
	return created.Clone(), nil
}

// Get fetches a single task. A task already held locally is replaced by the
// fetched copy; an unknown one is not added.
func (m *Tasks) Get(ctx context.Context, id entry.ID) (*entry.Task, error) {
	if m.backend == nil {
		return nil, errNoBackend
	}
	t, err := m.backend.GetTask(ctx, id)
	if err != nil {
		m.log.Error().Err(err).Str("id", id.String()).Msg("Failed to fetch task")
		return nil, err
	}
	m.mu.Lock()
	m.replaceLocked(*t)
	m.mu.Unlock()
	return t.Clone(), nil
}

// ToggleCompletion asks the backend to flip completion. A full task in the
// response replaces the local copy. A bare acknowledgment is taken as success
// and completion is flipped locally with no later reconciliation. Any other
// response triggers a full Load.
func (m *Tasks) ToggleCompletion(ctx context.Context, id entry.ID) (*entry.Task, error) {
	if m.backend == nil {
		return nil, errNoBackend
	}
	mut, err := m.backend.ToggleTask(ctx, id)
	if err != nil {
		m.log.Error().Err(err).Str("id", id.String()).Msg("Failed to toggle task")
		return nil, err
	}

	switch {
	case mut.Shape == client.ShapeEntity && mut.Task != nil:
		m.mu.Lock()
		m.replaceLocked(*mut.Task)
		m.mu.Unlock()
		return mut.Task.Clone(), nil

	case mut.Shape == client.ShapeAck || mut.Shape == client.ShapeReminderAck:
		m.log.Debug().Str("id", id.String()).Stringer("shape", mut.Shape).Msg("Toggle returned no task, flipping locally")
		m.mu.Lock()
		defer m.mu.Unlock()
		i := m.indexLocked(id)
		if i < 0 {
			return nil, nil
		}
		m.tasks[i].Completed = !m.tasks[i].Completed
		return m.tasks[i].Clone(), nil

	default:
		m.log.Debug().Str("id", id.String()).Stringer("shape", mut.Shape).Msg("Unrecognized toggle response, reloading")
		if err := m.Load(ctx); err != nil {
			return nil, err
		}
		return m.find(id), nil
	}
}

// ToggleReminder asks the backend to flip reminder_enabled. A full task
// replaces the local copy, a bare reminder_enabled acknowledgment patches that
// one field, and any other response triggers a full Load.
func (m *Tasks) ToggleReminder(ctx context.Context, id entry.ID) (*entry.Task, error) {
	if m.backend == nil {
		return nil, errNoBackend
	}
	mut, err := m.backend.ToggleReminder(ctx, id)
	if err != nil {
		m.log.Error().Err(err).Str("id", id.String()).Msg("Failed to toggle reminder")
		return nil, err
	}

	switch {
	case mut.Shape == client.ShapeEntity && mut.Task != nil:
		m.mu.Lock()
		m.replaceLocked(*mut.Task)
		m.mu.Unlock()
		return mut.Task.Clone(), nil

	case mut.Shape == client.ShapeReminderAck && mut.ReminderEnabled != nil:
		m.mu.Lock()
		defer m.mu.Unlock()
		i := m.indexLocked(id)
		if i < 0 {
			return nil, nil
		}
		m.tasks[i].ReminderEnabled = *mut.ReminderEnabled
		return m.tasks[i].Clone(), nil

	default:
		m.log.Debug().Str("id", id.String()).Stringer("shape", mut.Shape).Msg("Unrecognized reminder response, reloading")
		if err := m.Load(ctx); err != nil {
			return nil, err
		}
		return m.find(id), nil
	}
}

// Remove deletes the task and drops it locally once the backend confirms. A
// 404 counts as confirmation, so deleting twice is harmless. Other failures
// leave the collection unchanged.
func (m *Tasks) Remove(ctx context.Context, id entry.ID) error {
	if m.backend == nil {
		return errNoBackend
	}
	if err := m.backend.DeleteTask(ctx, id); err != nil {
		if !client.IsNotFound(err) {
			m.log.Error().Err(err).Str("id", id.String()).Msg("Failed to delete task")
			return err
		}
		m.log.Debug().Str("id", id.String()).Msg("Task already deleted")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
	return nil
}

// Due returns the tasks due within the next minutes without touching the
// collection. privileged opts into the dev secret header.
func (m *Tasks) Due(ctx context.Context, minutes int, privileged bool) ([]entry.Task, error) {
	if m.backend == nil {
		return nil, errNoBackend
	}
	tasks, err := m.backend.DueTasks(ctx, minutes, privileged)
	if err != nil {
		if !IsValidation(err) {
			m.log.Error().Err(err).Int("window_minutes", minutes).Msg("Failed to fetch due tasks")
		}
		return nil, err
	}
	return tasks, nil
}

func (m *Tasks) find(id entry.ID) *entry.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexLocked(id); i >= 0 {
		return m.tasks[i].Clone()
	}
	return nil
}

func (m *Tasks) indexLocked(id entry.ID) int {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Tasks) replaceLocked(t entry.Task) {
	if i := m.indexLocked(t.ID); i >= 0 {
		m.tasks[i] = *t.Clone()
	}
}

func cloneTasks(in []entry.Task) []entry.Task {
	out := make([]entry.Task, len(in))
	for i := range in {
		out[i] = *in[i].Clone()
	}
	return out
}
