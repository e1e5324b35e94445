package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration, read once at start.
type Config interface {
	// BasePath is the directory holding local state such as the journal draft.
	BasePath() string
	// APIBaseURL is the backend root every request path is joined to.
	APIBaseURL() string
	// DevSecret is the optional header pair for the due-tasks query. Both are
	// empty unless name and value were configured.
	DevSecret() (name, value string)
	DraftDelay() time.Duration
	JournalLimit() int
}

const (
	defaultAPIBaseURL   = "http://localhost:4000/api"
	defaultPath         = "~/.daybook"
	defaultDraftDelay   = time.Second
	defaultJournalLimit = 10
)

// LoadConfig reads .env from the working directory when present, then
// .daybook.yaml from $DAYBOOK_CONFIG_PATH or ./, then DAYBOOK_* environment
// variables.
func LoadConfig() (Config, error) {
	return loadConfig(viper.New(), ".env")
}

func loadConfig(v *viper.Viper, envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store: load %s: %w", f, err)
		}
	}

	v.SetDefault("api_base_url", defaultAPIBaseURL)
	v.SetDefault("path", defaultPath)
	v.SetDefault("draft_delay", defaultDraftDelay)
	v.SetDefault("journal_limit", defaultJournalLimit)
	v.SetDefault("dev_secret_header", "")
	v.SetDefault("dev_secret_value", "")
	v.SetConfigName(".daybook") // .yaml is implicit
	v.SetEnvPrefix("DAYBOOK")
	v.AutomaticEnv()

	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	cfg := &fileConfig{
		Path:         path,
		APIBase:      strings.TrimSpace(v.GetString("api_base_url")),
		SecretHeader: strings.TrimSpace(v.GetString("dev_secret_header")),
		SecretValue:  v.GetString("dev_secret_value"),
		Delay:        v.GetDuration("draft_delay"),
		Limit:        v.GetInt("journal_limit"),
	}
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBaseURL
	}
	if cfg.Delay <= 0 {
		cfg.Delay = defaultDraftDelay
	}
	if cfg.Limit <= 0 {
		cfg.Limit = defaultJournalLimit
	}
	return cfg, nil
}

type fileConfig struct {
	Path         string        `json:"path"`
	APIBase      string        `json:"api_base_url"`
	SecretHeader string        `json:"dev_secret_header,omitempty"`
	SecretValue  string        `json:"-"`
	Delay        time.Duration `json:"draft_delay"`
	Limit        int           `json:"journal_limit"`
}

func (f *fileConfig) BasePath() string { return f.Path }

func (f *fileConfig) APIBaseURL() string { return f.APIBase }

func (f *fileConfig) DevSecret() (string, string) {
	if f.SecretHeader == "" || f.SecretValue == "" {
		return "", ""
	}
	return f.SecretHeader, f.SecretValue
}

func (f *fileConfig) DraftDelay() time.Duration { return f.Delay }

func (f *fileConfig) JournalLimit() int { return f.Limit }
