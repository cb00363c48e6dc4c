package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefault_MatchesSpecNumbers(t *testing.T) {
	cfg := Default()
	require.Equal(t, 8080, cfg.Http.Port)
	require.Equal(t, 15*time.Second, cfg.Room.ClaimWindowTimeout)
	require.Equal(t, 800*time.Millisecond, cfg.Room.BotActionDelay)
	require.Equal(t, 60*time.Second, cfg.Room.DisconnectGrace)
}

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("http:\n  port: 9090\nroom:\n  claimWindowTimeout: 5s\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Http.Port)
	require.Equal(t, 5*time.Second, cfg.Room.ClaimWindowTimeout)
	// Unset keys keep their default value rather than zeroing out.
	require.Equal(t, 800*time.Millisecond, cfg.Room.BotActionDelay)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}
