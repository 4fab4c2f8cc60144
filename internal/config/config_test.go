package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, Defaults(), s)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
addr = "127.0.0.1:9000"

[curriculum]
dir = "/srv/praktik/curriculum"

[evaluation]
max-tokens = 2048
temperature = 0.5
timeout-seconds = 60
`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", s.Addr)
	require.Equal(t, "/srv/praktik/curriculum", s.CurriculumDir)
	require.Equal(t, 2048, s.EvalMaxTokens)
	require.Equal(t, 0.5, s.EvalTemp)
	require.Equal(t, time.Minute, s.EvalTimeout)
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \":9999\"\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9999", s.Addr)
	require.Equal(t, Defaults().EvalMaxTokens, s.EvalMaxTokens)
	require.Equal(t, Defaults().EvalTimeout, s.EvalTimeout)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestDefaultConfigPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	require.Equal(t, "/tmp/xdg/praktik/config.toml", DefaultConfigPath())
}
