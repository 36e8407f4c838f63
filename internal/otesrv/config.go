package otesrv

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// AccountConfig describes the single test account the sandbox accepts.
// When SharedSecret is set, logins are answered with a pending two-factor
// challenge that account.unlock must complete with a TOTP code.
type AccountConfig struct {
	Username     string `toml:"username"`
	Password     string `toml:"password"`
	SharedSecret string `toml:"shared_secret"`
	CustomerID   int    `toml:"customer_id"`
}

// Config holds all configuration for the sandbox server.
type Config struct {
	ListenAddr      string `toml:"listen_addr"`
	HandleCORS      bool   `toml:"handle_cors"`
	SessionValidity string `toml:"session_validity"` // Go duration string, e.g. "1h"
	SigningKey      string `toml:"signing_key"`      // HMAC key for session cookies; generated when empty

	Account AccountConfig `toml:"account"`

	// Registered is the zone table: domain.check reports these names as
	// taken and everything else as available.
	Registered []string `toml:"registered"`
}

// DefaultConfig returns a configuration suitable for tests and local
// development: one account, no two-factor, a small zone table.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      "localhost:8090",
		SessionValidity: "1h",
		Account: AccountConfig{
			Username:   "oteuser",
			Password:   "otepassword",
			CustomerID: 4711,
		},
		Registered: []string{"example.net", "taken.org"},
	}
}

// LoadConfig loads configuration from a toml file and validates it.
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		return nil, errors.New("config filename is required")
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	cfg := &Config{}
	if _, err := toml.Decode(string(content), cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr is required")
	}
	if c.Account.Username == "" {
		return errors.New("account.username is required")
	}
	if c.Account.Password == "" {
		return errors.New("account.password is required")
	}
	if c.SessionValidity == "" {
		c.SessionValidity = "1h"
	}
	if _, err := time.ParseDuration(c.SessionValidity); err != nil {
		return errors.Wrap(err, "invalid session_validity")
	}
	return nil
}

// sessionValidity returns the parsed session lifetime. Validate must have
// accepted the value first.
func (c *Config) sessionValidity() time.Duration {
	d, err := time.ParseDuration(c.SessionValidity)
	if err != nil {
		return time.Hour
	}
	return d
}
