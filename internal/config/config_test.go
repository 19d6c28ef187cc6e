package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultIsUsable(t *testing.T) {
	c := Default()
	require.Equal(t, 15000, c.HalfWidth)
	require.Equal(t, 2.0/3.0, c.SmoothnessConstant)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err, "Load of missing file should not error")
	require.Equal(t, Default(), c)
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "siqs.yaml")
	want := Default()
	want.Workers = 8
	buf, err := yaml.Marshal(want)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, buf, 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
