package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/osm-route/pkg/osmgraph"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func TestNewWithoutConfigFile(t *testing.T) {
	viper.Reset()
	chdir(t, t.TempDir())

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "berkeley.osm", cfg.MapFile)
	assert.Equal(t, osmgraph.DefaultHighwayTypes, cfg.HighwayTypes)
	assert.Equal(t, 0, cfg.MaxIterations)
	assert.Equal(t, 4, cfg.BatchWorkers)
	assert.Empty(t, cfg.FileUsed)
}

func TestNewFromConfigFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	yaml := "MAP_FILE: jakarta.osm.pbf\nROUTE_MAX_ITERATIONS: 5000\nHIGHWAY_TYPES:\n  - primary\n  - secondary\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "jakarta.osm.pbf", cfg.MapFile)
	assert.Equal(t, 5000, cfg.MaxIterations)
	assert.Equal(t, []string{"primary", "secondary"}, cfg.HighwayTypes)
	assert.NotEmpty(t, cfg.FileUsed)
}

func TestHighwayTypesFromEnv(t *testing.T) {
	viper.Reset()
	chdir(t, t.TempDir())
	t.Setenv("HIGHWAY_TYPES", "motorway, trunk ,primary")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{"motorway", "trunk", "primary"}, cfg.HighwayTypes)
}
