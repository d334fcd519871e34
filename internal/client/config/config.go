package config

import "time"

// Config holds runtime settings for the GT Studio CLI.
//
// Fields:
//   - ServerAddr: base URL of the backend REST API.
//   - RequestTimeout: the uniform bound applied to every API request.
//   - SessionFile: where the login session is persisted. Empty selects the
//     per-user default under the OS configuration directory.
//
// Units: RequestTimeout is a time.Duration (e.g., 10*time.Second).
type Config struct {
	ServerAddr     string
	RequestTimeout time.Duration
	SessionFile    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.SessionFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
