package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds the CLI's connection settings, resolved from flags,
// environment and the token file
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig resolves defaults from the environment
func DefaultConfig() *Config {
	return &Config{
		ServerURL: envOr("DARTS_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("DARTS_TOKEN"),
		TokenFile: envOr("DARTS_TOKEN_FILE", defaultTokenFile()),
		Output:    envOr("DARTS_OUTPUT", "text"),
	}
}

// LoadToken reads the saved token unless one was already given via
// flag or environment. A missing token file just means logged out.
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken persists the token so later invocations stay logged in
func (c *Config) SaveToken(token string) error {
	c.Token = token

	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0700); err != nil {
		return err
	}
	return os.WriteFile(c.TokenFile, []byte(token), 0600)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dartscounter/token"
	}
	return filepath.Join(home, ".dartscounter", "token")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
