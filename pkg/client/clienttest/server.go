// Package clienttest runs an in-memory backend speaking the daybook HTTP API,
// for tests of code built on the client.
package clienttest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/entry"
)

// ToggleReply selects the body shape returned by the toggle endpoints.
type ToggleReply int

const (
	// ReplyEntity echoes the full updated task.
	ReplyEntity ToggleReply = iota
	// ReplyAck returns {"success": true}.
	ReplyAck
	// ReplyReminderAck returns only {"reminder_enabled": v}.
	ReplyReminderAck
	// ReplyEmpty returns 204 with no body.
	ReplyEmpty
)

var messages = map[entry.Sentiment]string{
	entry.Positive: "Keep riding that wave!",
	entry.Negative: "Tough days pass. Be kind to yourself.",
	entry.Neutral:  "Steady is a fine place to be.",
	entry.Mixed:    "It's okay to feel more than one thing.",
}

// Server is a fake backend. Its fields may be changed between requests.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	next          int
	tasks         []entry.Task
	entries       []entry.JournalEntry
	requests      []string
	secretHeaders []string

	ToggleReply   ToggleReply
	ReminderReply ToggleReply
	// Now stamps created journal entries.
	Now func() time.Time
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	s := &Server{Now: time.Now}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks", s.listTasks)
	mux.HandleFunc("POST /api/tasks", s.createTask)
	mux.HandleFunc("GET /api/tasks/due", s.dueTasks)
	mux.HandleFunc("GET /api/tasks/{id}", s.getTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)
	mux.HandleFunc("PATCH /api/tasks/{id}/toggle", s.toggleTask)
	mux.HandleFunc("PATCH /api/tasks/{id}/reminder-toggle", s.toggleReminder)
	mux.HandleFunc("GET /api/journal", s.listJournal)
	mux.HandleFunc("POST /api/journal", s.createEntry)
	mux.HandleFunc("POST /api/journal/inspire", s.inspire)
	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to hand to client.New.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// AddTask seeds a task and returns it with its assigned id.
func (s *Server) AddTask(t entry.Task) entry.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.newIDLocked()
	if t.Tags == nil {
		t.Tags = []string{}
	}
	s.tasks = append(s.tasks, t)
	return t
}

// AddEntry seeds a journal entry, newest first.
func (s *Server) AddEntry(e entry.JournalEntry) entry.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.newIDLocked()
	if e.Tags == nil {
		e.Tags = []string{}
	}
	s.entries = append([]entry.JournalEntry{e}, s.entries...)
	return e
}

// Tasks returns the backend's tasks.
func (s *Server) Tasks() []entry.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entry.Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = *s.tasks[i].Clone()
	}
	return out
}

// Requests lists "METHOD path" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// SecretHeaders lists the X-Dev-Secret values seen on due queries, with ""
// for requests that carried none.
func (s *Server) SecretHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.secretHeaders...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) newIDLocked() entry.ID {
	s.next++
	return entry.ID(strconv.Itoa(s.next))
}

func (s *Server) indexLocked(id string) int {
	for i := range s.tasks {
		if string(s.tasks[i].ID) == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) listTasks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Tasks())
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in entry.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	t := s.AddTask(entry.Task{Title: in.Title, DueDate: in.DueDate, Tags: in.Tags, UserEmail: in.UserEmail, UserName: in.UserName})
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, s.tasks[i])
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.reply(w, s.ToggleReply, s.tasks[i])
}

func (s *Server) toggleReminder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	s.tasks[i].ReminderEnabled = !s.tasks[i].ReminderEnabled
	s.reply(w, s.ReminderReply, s.tasks[i])
}

func (s *Server) reply(w http.ResponseWriter, shape ToggleReply, t entry.Task) {
	switch shape {
	case ReplyAck:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	case ReplyReminderAck:
		writeJSON(w, http.StatusOK, map[string]bool{"reminder_enabled": t.ReminderEnabled})
	case ReplyEmpty:
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusOK, t)
	}
}

func (s *Server) dueTasks(w http.ResponseWriter, r *http.Request) {
	minutes, err := strconv.Atoi(r.URL.Query().Get("window_minutes"))
	if err != nil || minutes <= 0 {
		writeError(w, http.StatusBadRequest, "window_minutes must be a positive integer")
		return
	}
	s.mu.Lock()
	s.secretHeaders = append(s.secretHeaders, r.Header.Get("X-Dev-Secret"))
	s.mu.Unlock()

	horizon := time.Now().Add(time.Duration(minutes) * time.Minute)
	out := []entry.Task{}
	for _, t := range s.Tasks() {
		if due, ok := t.Due(); ok && !t.Completed && !due.After(horizon) {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listJournal(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.entries
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []entry.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var in entry.JournalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	sentiment := classify(in.Text)
	e := s.AddEntry(entry.JournalEntry{
		Text:                in.Text,
		Tags:                in.Tags,
		Sentiment:           sentiment,
		MotivationalMessage: messages[sentiment],
		CreatedAt:           entry.Timestamp{Time: s.Now()},
	})
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) inspire(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Sentiment entry.Sentiment `json:"sentiment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"motivationalMessage": fmt.Sprintf("More for a %s day: %s", in.Sentiment.Label(), messages[in.Sentiment.Normalize()]),
	})
}

func classify(text string) entry.Sentiment {
	lower := strings.ToLower(text)
	good := strings.Contains(lower, "great") || strings.Contains(lower, "happy")
	bad := strings.Contains(lower, "sad") || strings.Contains(lower, "awful")
	switch {
	case good && bad:
		return entry.Mixed
	case good:
		return entry.Positive
	case bad:
		return entry.Negative
	default:
		return entry.Neutral
	}
}
