package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"tableflip.dev/daybook/pkg/entry"
)

// ListTasks fetches every task.
func (c *Client) ListTasks(ctx context.Context) ([]entry.Task, error) {
	r := request{op: "list tasks", method: http.MethodGet, path: "/tasks"}
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	var tasks []entry.Task
	if err := decode(r, body, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []entry.Task{}
	}
	return tasks, nil
}

// CreateTask creates a task and returns the stored record.
func (c *Client) CreateTask(ctx context.Context, in entry.TaskInput) (*entry.Task, error) {
	if in.Tags == nil {
		in.Tags = []string{}
	}
	r := request{op: "create task", method: http.MethodPost, path: "/tasks", body: in}
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	var t entry.Task
	if err := decode(r, body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTask fetches a single task.
func (c *Client) GetTask(ctx context.Context, id entry.ID) (*entry.Task, error) {
	r := request{op: "get task", method: http.MethodGet, path: taskPath(id)}
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	var t entry.Task
	if err := decode(r, body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ToggleTask flips completion for a task. The backend may answer with the
// updated task or with a bare acknowledgment.
func (c *Client) ToggleTask(ctx context.Context, id entry.ID) (Mutation, error) {
	r := request{op: "toggle task", method: http.MethodPatch, path: taskPath(id) + "/toggle"}
	body, err := c.do(ctx, r)
	if err != nil {
		return Mutation{}, err
	}
	return classifyMutation(body), nil
}

// ToggleReminder flips reminder_enabled for a task.
func (c *Client) ToggleReminder(ctx context.Context, id entry.ID) (Mutation, error) {
	r := request{op: "toggle reminder", method: http.MethodPatch, path: taskPath(id) + "/reminder-toggle"}
	body, err := c.do(ctx, r)
	if err != nil {
		return Mutation{}, err
	}
	return classifyMutation(body), nil
}

// DeleteTask deletes a task. A 404 is returned as an error like any other
// status; callers decide whether an already-deleted task matters.
func (c *Client) DeleteTask(ctx context.Context, id entry.ID) error {
	_, err := c.do(ctx, request{op: "delete task", method: http.MethodDelete, path: taskPath(id)})
	return err
}

// DueTasks fetches tasks due within the next minutes. When privileged is set
// and a dev secret is configured the secret header is attached; otherwise the
// request goes out without it.
func (c *Client) DueTasks(ctx context.Context, minutes int, privileged bool) ([]entry.Task, error) {
	if minutes <= 0 {
		return nil, &entry.ValidationError{Field: "window_minutes", Message: "Due window must be a positive number of minutes."}
	}
	r := request{
		op:         "due tasks",
		method:     http.MethodGet,
		path:       "/tasks/due",
		query:      url.Values{"window_minutes": []string{strconv.Itoa(minutes)}},
		privileged: privileged,
	}
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	var tasks []entry.Task
	if err := decode(r, body, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []entry.Task{}
	}
	return tasks, nil
}

func taskPath(id entry.ID) string {
	return "/tasks/" + url.PathEscape(id.String())
}
