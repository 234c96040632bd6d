package config_test

import (
	"context"
	"testing"

	"git-issue.sh/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.CLI.Color)
	assert.False(t, cfg.CLI.Verbose)
	assert.Empty(t, cfg.CLI.Editor)
}

func TestLoadHonorsEnv(t *testing.T) {
	t.Setenv("GIT_ISSUE_COLOR", "false")
	t.Setenv("GIT_ISSUE_VERBOSE", "true")
	t.Setenv("GIT_ISSUE_EDITOR", "vim")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, cfg.CLI.Color)
	assert.True(t, cfg.CLI.Verbose)
	assert.Equal(t, "vim", cfg.CLI.Editor)
}
