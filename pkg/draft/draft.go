// Package draft keeps an in-progress journal entry mirrored to local storage.
//
// An Autosaver is Idle until the draft changes, then PendingSave until its
// single-shot timer fires. Every change cancels the pending timer and arms a
// new one, so at most one save is outstanding.
package draft

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/store"
)

// DefaultDelay is how long the draft must sit unchanged before it is saved.
const DefaultDelay = time.Second

// State is the debounce state of an Autosaver.
type State int

const (
	// Idle means nothing is waiting to be written.
	Idle State = iota
	// PendingSave means a save timer is armed for the latest change.
	PendingSave
)

func (s State) String() string {
	if s == PendingSave {
		return "pending-save"
	}
	return "idle"
}

// Timer is the part of *time.Timer an Autosaver needs.
type Timer interface {
	Stop() bool
}

// Clock schedules the save timer.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures an Autosaver.
type Option func(*Autosaver)

// WithDelay sets the debounce delay. Non-positive values keep DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(a *Autosaver) {
		if d > 0 {
			a.delay = d
		}
	}
}

// WithClock replaces the wall clock, for tests.
func WithClock(c Clock) Option {
	return func(a *Autosaver) {
		a.clock = c
	}
}

// WithLogger sets the logger for save and delete results.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Autosaver) {
		a.log = log.With().Str("component", "draft").Logger()
	}
}

// Autosaver debounces draft changes into a store.DraftStore.
type Autosaver struct {
	store store.DraftStore
	delay time.Duration
	clock Clock
	log   zerolog.Logger

	mu       sync.Mutex
	state    State
	current  entry.Draft
	timer    Timer
	gen      uint64
	restored bool
}

// New returns an Idle autosaver over s.
func New(s store.DraftStore, opts ...Option) *Autosaver {
	a := &Autosaver{
		store: s,
		delay: DefaultDelay,
		clock: realClock{},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Restore loads the stored draft into the autosaver and returns it. Only the
// first call reads storage; later calls report false.
func (a *Autosaver) Restore() (entry.Draft, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.restored {
		return entry.Draft{}, false
	}
	a.restored = true
	d, ok := a.store.LoadDraft()
	if ok {
		a.current = d
	}
	return d, ok
}

// Change records a new draft value and re-arms the save timer.
func (a *Autosaver) Change(d entry.Draft) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.restored = true
	a.current = d
	a.cancelLocked()
	gen := a.gen
	a.timer = a.clock.AfterFunc(a.delay, func() { a.fire(gen) })
	a.state = PendingSave
}

// Submitted clears the draft after a successful submission, cancelling any
// pending save and deleting the stored copy.
func (a *Autosaver) Submitted() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
	a.current = entry.Draft{}
	if err := a.store.DeleteDraft(); err != nil {
		a.log.Error().Err(err).Msg("Failed to clear draft")
		return err
	}
	return nil
}

// Flush performs a pending save now. It does nothing when Idle.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != PendingSave {
		return nil
	}
	a.cancelLocked()
	return a.persistLocked()
}

// Stop cancels a pending save without writing anything.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
}

// State reports whether a save is pending.
func (a *Autosaver) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Current is the latest draft value seen by the autosaver.
func (a *Autosaver) Current() entry.Draft {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *Autosaver) fire(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	// A timer that lost the race with Change, Stop or Submitted is stale.
	if gen != a.gen || a.state != PendingSave {
		return
	}
	a.timer = nil
	a.state = Idle
	_ = a.persistLocked()
}

// cancelLocked stops the timer and invalidates any callback already running.
func (a *Autosaver) cancelLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
	a.state = Idle
}

func (a *Autosaver) persistLocked() error {
	if a.current.Empty() {
		if err := a.store.DeleteDraft(); err != nil {
			a.log.Error().Err(err).Msg("Failed to delete draft")
			return err
		}
		a.log.Debug().Msg("Draft cleared")
		return nil
	}
	if err := a.store.SaveDraft(a.current); err != nil {
		a.log.Error().Err(err).Msg("Failed to save draft")
		return err
	}
	a.log.Debug().Int("chars", len(a.current.Text)).Msg("Draft saved")
	return nil
}
