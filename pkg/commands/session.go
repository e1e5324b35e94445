package commands

import (
	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/client"
	"tableflip.dev/daybook/pkg/draft"
	"tableflip.dev/daybook/pkg/store"
)

// session holds what one command invocation needs: configuration, the
// backend client and the managers built over it.
type session struct {
	cfg     store.Config
	log     zerolog.Logger
	tasks   *app.Tasks
	journal *app.Journal
}

func newSession() (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logger()
	name, value := cfg.DevSecret()
	opts := []client.Option{
		client.WithDevSecret(name, value),
		client.WithLogger(log),
	}
	if output.Verbose {
		opts = append(opts, client.WithDebugLogging(true))
	}
	c, err := client.New(cfg.APIBaseURL(), opts...)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("api", c.BaseURL()).Msg("Session ready")
	return &session{
		cfg:     cfg,
		log:     log,
		tasks:   app.NewTasks(c, log),
		journal: app.NewJournal(c, log),
	}, nil
}

// persistence opens the local draft store.
func (s *session) persistence() (*store.Persistence, error) {
	return store.Load(s.cfg, s.log)
}

// autosaver opens the draft store and wraps it in an autosaver using the
// configured delay.
func (s *session) autosaver() (*draft.Autosaver, error) {
	p, err := s.persistence()
	if err != nil {
		return nil, err
	}
	return draft.New(p, draft.WithDelay(s.cfg.DraftDelay()), draft.WithLogger(s.log)), nil
}
