package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/client"
	"tableflip.dev/daybook/pkg/entry"
)

// Journal is the in-memory copy of recent journal entries, newest first. It
// also remembers the entry created most recently in this session, which is
// the one RequestMoreInspiration refreshes.
type Journal struct {
	backend JournalBackend
	log     zerolog.Logger

	mu      sync.RWMutex
	entries []entry.JournalEntry
	latest  *entry.JournalEntry
}

// NewJournal returns an empty manager. Call Load to populate it.
func NewJournal(backend JournalBackend, log zerolog.Logger) *Journal {
	return &Journal{
		backend: backend,
		log:     log.With().Str("component", "journal").Logger(),
		entries: []entry.JournalEntry{},
	}
}

// Entries returns a copy of the current entries.
func (m *Journal) Entries() []entry.JournalEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneEntries(m.entries)
}

// Latest returns the entry created most recently in this session, or nil.
func (m *Journal) Latest() *entry.JournalEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest.Clone()
}

// Filter returns the entries matching term. See FilterEntries.
func (m *Journal) Filter(term string) []entry.JournalEntry {
	return FilterEntries(m.Entries(), term)
}

// SentimentCounts aggregates the full collection. See SentimentCounts.
func (m *Journal) SentimentCounts() map[string]int {
	return SentimentCounts(m.Entries())
}

// SentimentChart returns chart rows for the full collection.
func (m *Journal) SentimentChart() []SentimentBar {
	return SentimentChart(m.Entries())
}

// Load replaces the entries with the backend's most recent limit entries. A
// non-positive limit uses client.DefaultJournalLimit. On failure the previous
// entries are kept.
func (m *Journal) Load(ctx context.Context, limit int) error {
	if m.backend == nil {
		return errNoBackend
	}
	if limit <= 0 {
		limit = client.DefaultJournalLimit
	}
	entries, err := m.backend.ListJournal(ctx, limit)
	if err != nil {
		m.log.Error().Err(err).Int("limit", limit).Msg("Failed to load entries")
		return err
	}
	m.mu.Lock()
	m.entries = cloneEntries(entries)
	m.mu.Unlock()
	return nil
}

// Create submits the draft and prepends the stored entry.
func (m *Journal) Create(ctx context.Context, d entry.Draft) (*entry.JournalEntry, error) {
	if m.backend == nil {
		return nil, errNoBackend
	}
	in, err := d.Input()
	if err != nil {
		return nil, err
	}
	created, err := m.backend.CreateJournalEntry(ctx, in)
	if err != nil {
		m.log.Error().Err(err).Msg("Failed to create entry")
		return nil, err
	}
	m.mu.Lock()
	m.entries = append([]entry.JournalEntry{*created.Clone()}, m.entries...)
	m.latest = created.Clone()
	m.mu.Unlock()
	return created.Clone(), nil
}

// RequestMoreInspiration fetches a new motivational message for the latest
// entry's sentiment and patches only that field, on the latest entry and on
// its copy in the list. It does nothing and returns nil when no entry has
// been created in this session.
func (m *Journal) RequestMoreInspiration(ctx context.Context) (*entry.JournalEntry, error) {
	if m.backend == nil {
		return nil, errNoBackend
	}
	latest := m.Latest()
	if latest == nil {
		return nil, nil
	}
	msg, err := m.backend.Inspire(ctx, latest.Sentiment)
	if err != nil {
		m.log.Error().Err(err).Str("sentiment", latest.Sentiment.Label()).Msg("Failed to get inspiration")
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest != nil && m.latest.ID == latest.ID {
		m.latest.MotivationalMessage = msg
	}
	for i := range m.entries {
		if m.entries[i].ID == latest.ID {
			m.entries[i].MotivationalMessage = msg
		}
	}
	latest.MotivationalMessage = msg
	return latest, nil
}

func cloneEntries(in []entry.JournalEntry) []entry.JournalEntry {
	out := make([]entry.JournalEntry, len(in))
	for i := range in {
		out[i] = *in[i].Clone()
	}
	return out
}
