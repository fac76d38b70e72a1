package config

import (
	"fmt"
	"net"

	"github.com/charmbracelet/log"
)

// Validate returns the first invalid setting found.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	seen := make(map[string]bool)
	for _, t := range c.Themes {
		if t.Name == "" {
			return fmt.Errorf("themes: theme without a name")
		}
		if seen[t.Name] {
			return fmt.Errorf("themes: duplicate theme %q", t.Name)
		}
		seen[t.Name] = true
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if _, _, err := net.SplitHostPort(s.Listen); err != nil {
		return fmt.Errorf("listen must be host:port, got %q", s.Listen)
	}
	if s.IdleTimeout < 0 {
		return fmt.Errorf("idle_timeout must not be negative, got %s", s.IdleTimeout)
	}
	if s.SessionsPerMinute < 0 {
		return fmt.Errorf("sessions_per_minute must not be negative, got %d", s.SessionsPerMinute)
	}
	if s.SessionBurst < 1 {
		return fmt.Errorf("session_burst must be at least 1, got %d", s.SessionBurst)
	}
	return nil
}
