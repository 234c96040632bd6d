// Package config loads process-wide settings from the environment using
// go-envconfig struct tags, the same style the rest of the ambient stack
// uses for its own configuration.
package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// CLI groups the settings that shape command behavior rather than any
// storage concern.
type CLI struct {
	// Color controls whether clifmt emits ANSI color codes around its
	// success/error/warning prefixes.
	Color bool `env:"COLOR, default=true"`
	// Verbose raises the log level from info to debug.
	Verbose bool `env:"VERBOSE, default=false"`
	// Editor overrides $EDITOR for the `edit` command's YAML form.
	Editor string `env:"EDITOR"`
}

// Config is the full set of environment-derived settings for a
// git-issue process.
type Config struct {
	CLI CLI `env:",prefix=GIT_ISSUE_"`
}

// Load reads Config from the process environment, applying defaults for
// anything unset.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
