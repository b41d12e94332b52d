package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/fwojciec/bfchat"
	"github.com/fwojciec/bfchat/gemini"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds settings read from the environment and optional .env files.
type Config struct {
	APIKey       string        `envconfig:"GEMINI_API_KEY"`
	GoogleAPIKey string        `envconfig:"GOOGLE_API_KEY"`
	Model        string        `envconfig:"BFCHAT_MODEL" default:"gemini-2.0-flash"`
	SeedURL      string        `envconfig:"BFCHAT_SEED_URL" default:"https://www.lllfrance.org/"`
	MaxPages     int           `envconfig:"BFCHAT_MAX_PAGES" default:"100"`
	FetchTimeout time.Duration `envconfig:"BFCHAT_FETCH_TIMEOUT" default:"10s"`
	CacheSize    int           `envconfig:"BFCHAT_CACHE_SIZE" default:"0"`
	DBPath       string        `envconfig:"BFCHAT_DB" default:":memory:"`
	UserAgent    string        `envconfig:"BFCHAT_USER_AGENT"`
}

// LoadConfig loads the given .env files, when they exist, and reads the
// environment. Variables already set in the environment win over .env
// values.
func LoadConfig(envFiles ...string) (*Config, error) {
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, bfchat.Errorf(bfchat.ECONFIG, "reading %s: %v", name, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, bfchat.Errorf(bfchat.ECONFIG, "%v", err)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = cfg.GoogleAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = gemini.DefaultModel
	}
	if cfg.SeedURL == "" {
		cfg.SeedURL = bfchat.DefaultSeedURL
	}
	return &cfg, nil
}

// Validate returns an error if the configuration cannot be used to answer
// questions.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return bfchat.Errorf(bfchat.ECONFIG, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}
	return c.ValidateCrawl()
}

// ValidateCrawl returns an error if the configuration cannot be used to
// crawl the seed site. No API key is needed for that.
func (c *Config) ValidateCrawl() error {
	if c.SeedURL == "" {
		return bfchat.Errorf(bfchat.ECONFIG, "BFCHAT_SEED_URL must not be empty")
	}
	if c.MaxPages < 0 {
		return bfchat.Errorf(bfchat.ECONFIG, "BFCHAT_MAX_PAGES must not be negative, got %d", c.MaxPages)
	}
	if c.FetchTimeout <= 0 {
		return bfchat.Errorf(bfchat.ECONFIG, "BFCHAT_FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.CacheSize < 0 {
		return bfchat.Errorf(bfchat.ECONFIG, "BFCHAT_CACHE_SIZE must not be negative, got %d", c.CacheSize)
	}
	return nil
}
