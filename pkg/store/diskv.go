package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/entry"
)

// DraftKey is the single key the journal draft is stored under.
const DraftKey = "journal-draft"

// DraftStore is the persistence contract of the journal draft.
type DraftStore interface {
	LoadDraft() (entry.Draft, bool)
	SaveDraft(d entry.Draft) error
	DeleteDraft() error
}

// Persistence stores local state in a diskv directory.
type Persistence struct {
	d        *diskv.Diskv
	basePath string
	log      zerolog.Logger
}

var _ DraftStore = (*Persistence)(nil)

// Load opens the diskv store rooted at cfg.BasePath. A nil cfg loads the
// process configuration.
func Load(cfg Config, log zerolog.Logger) (*Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Persistence{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			// Writes land through a rename so watchers never see a
			// half-written draft.
			TempDir: filepath.Join(basePath, ".tmp"),
			// No read cache: another process may rewrite the draft.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		log:      log.With().Str("component", "store").Logger(),
	}, nil
}

// BasePath is the directory backing the store.
func (p *Persistence) BasePath() string { return p.basePath }

// LoadDraft returns the stored draft. A missing or unreadable value is
// reported as absent.
func (p *Persistence) LoadDraft() (entry.Draft, bool) {
	if !p.d.Has(DraftKey) {
		return entry.Draft{}, false
	}
	val, err := p.d.Read(DraftKey)
	if err != nil {
		p.log.Debug().Err(err).Msg("Draft unreadable, ignoring")
		return entry.Draft{}, false
	}
	var d entry.Draft
	if err := json.Unmarshal(val, &d); err != nil {
		p.log.Debug().Err(err).Msg("Draft corrupt, ignoring")
		return entry.Draft{}, false
	}
	return d, true
}

// SaveDraft replaces any stored draft with d.
func (p *Persistence) SaveDraft(d entry.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	if err := p.d.Write(DraftKey, data); err != nil {
		return fmt.Errorf("store: save draft: %w", err)
	}
	return nil
}

// DeleteDraft removes the stored draft. Deleting a missing draft succeeds.
func (p *Persistence) DeleteDraft() error {
	if err := p.d.Erase(DraftKey); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: delete draft: %w", err)
	}
	return nil
}
