package config

import (
	"time"

	"github.com/userdeck/userdeck/internal/console/session"
)

// Config holds runtime settings for the console.
//
// Fields:
//   - APIBaseURL: base URL of the directory API, including any path prefix.
//   - RequestTimeout: per-request timeout for API calls.
//   - SessionFile: where the persisted session credential lives.
//   - SessionTTL: how long a stored credential is trusted without re-login.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	SessionFile    string
	SessionTTL     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.RequestTimeout = 10 * time.Second
	c.SessionTTL = 24 * time.Hour
	if path, err := session.DefaultPath(); err == nil {
		c.SessionFile = path
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
