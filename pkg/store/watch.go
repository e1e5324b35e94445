package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/daybook/pkg/entry"
)

// DraftEvent reports the draft as it stands after a change on disk.
type DraftEvent struct {
	Draft   entry.Draft
	Present bool
}

// WatchDraft streams the stored draft every time it changes until ctx is
// cancelled. Bursts of writes are coalesced into one event. The channel is
// closed once ctx is done or the watcher fails.
func (p *Persistence) WatchDraft(ctx context.Context) (<-chan DraftEvent, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan DraftEvent, 8)
	draftPath := filepath.Join(p.basePath, DraftKey)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				p.log.Debug().Err(err).Msg("Watcher close failed")
			}
		}()

		changed := make(chan struct{}, 1)
		throttle := newEventThrottle(100*time.Millisecond, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-changed:
				d, ok := p.LoadDraft()
				select {
				case events <- DraftEvent{Draft: d, Present: ok}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Debug().Err(err).Msg("Watcher error")
				throttle.Enqueue()
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) == draftPath {
					throttle.Enqueue()
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid notifications so one burst of filesystem
// activity fires once.
type eventThrottle struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	fire  func()
}

func newEventThrottle(delay time.Duration, fire func()) *eventThrottle {
	return &eventThrottle{delay: delay, fire: fire}
}

func (t *eventThrottle) Enqueue() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, t.flush)
	}
}

func (t *eventThrottle) flush() {
	t.mu.Lock()
	t.timer = nil
	t.mu.Unlock()
	t.fire()
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
