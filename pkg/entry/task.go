package entry

import (
	"strings"
	"time"
)

// Task is a to-do item as stored by the backend. The reminder status fields
// are owned by the backend; the client only ever asks for ReminderEnabled to
// be flipped.
type Task struct {
	ID        ID       `json:"id"`
	Title     string   `json:"title"`
	DueDate   *string  `json:"dueDate"`
	Tags      []string `json:"tags"`
	Completed bool     `json:"completed"`

	UserEmail string `json:"user_email,omitempty"`
	UserName  string `json:"user_name,omitempty"`

	ReminderEnabled    bool       `json:"reminder_enabled"`
	ReminderSent       bool       `json:"reminder_sent"`
	LastReminderStatus string     `json:"last_reminder_status,omitempty"`
	LastReminderSentAt *Timestamp `json:"last_reminder_sent_at,omitempty"`
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Tags = cloneStrings(t.Tags)
	if t.DueDate != nil {
		due := *t.DueDate
		cp.DueDate = &due
	}
	if t.LastReminderSentAt != nil {
		at := *t.LastReminderSentAt
		cp.LastReminderSentAt = &at
	}
	return &cp
}

// Matches reports whether term is a case-insensitive substring of the title
// or of any tag. The empty term matches everything.
func (t *Task) Matches(term string) bool {
	return matches(strings.ToLower(term), t.Title, t.Tags)
}

// Due parses DueDate. Both plain dates and full timestamps are accepted.
func (t *Task) Due() (time.Time, bool) {
	if t.DueDate == nil || *t.DueDate == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(layoutISO, *t.DueDate); err == nil {
		return d, true
	}
	if d, err := ParseTime(*t.DueDate); err == nil {
		return d, true
	}
	return time.Time{}, false
}

// TaskInput is the body of a create-task request.
type TaskInput struct {
	Title     string   `json:"title"`
	DueDate   *string  `json:"dueDate"`
	Tags      []string `json:"tags"`
	UserEmail string   `json:"user_email,omitempty"`
	UserName  string   `json:"user_name,omitempty"`
}

// TaskForm is raw task input as typed by a user. Tags is a comma separated
// list and DueDate is either empty or YYYY-MM-DD.
type TaskForm struct {
	Title     string
	DueDate   string
	Tags      string
	UserEmail string
	UserName  string
}

// Input validates the form and converts it to a request body.
func (f TaskForm) Input() (TaskInput, error) {
	if blank(f.Title) {
		return TaskInput{}, &ValidationError{Field: "title", Message: "Task title is required."}
	}
	in := TaskInput{
		Title:    strings.TrimSpace(f.Title),
		Tags:     ParseTags(f.Tags),
		UserName: strings.TrimSpace(f.UserName),
	}
	if due := strings.TrimSpace(f.DueDate); due != "" {
		if !validDate(due) {
			return TaskInput{}, &ValidationError{Field: "dueDate", Message: "Due date must look like 2006-01-02."}
		}
		in.DueDate = &due
	}
	if email := strings.TrimSpace(f.UserEmail); email != "" {
		if !ValidEmail(email) {
			return TaskInput{}, &ValidationError{Field: "user_email", Message: "Please enter a valid email address."}
		}
		in.UserEmail = email
	}
	return in, nil
}
