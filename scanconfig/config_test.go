package scanconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldor-security/log4scan/interp"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scanconfig.yaml"), []byte(body), 0o644))
}

func TestLoadConfigMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigRequiresGlobs(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "workers: 2\n")
	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigResolvesRelativeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "globs:\n  - \"logs/*.txt\"\nworkers: 3\nrecursion_limit: 5\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Len(t, cfg.Globs, 1)
	assert.Equal(t, filepath.Join(dir, "logs/*.txt"), cfg.Globs[0])
	assert.Equal(t, 3, cfg.EffectiveWorkers())
	assert.Equal(t, uint64(5), cfg.EffectiveRecursionLimit())
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, 4, cfg.EffectiveWorkers())
	assert.Equal(t, interp.MaxRecursion, cfg.EffectiveRecursionLimit())
}

func TestFilesExpandsAndDedupsGlobs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "a.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "b.txt"), []byte("hi"), 0o644))

	cfg := Config{Globs: []string{
		filepath.Join(dir, "logs", "*.txt"),
		filepath.Join(dir, "logs", "a.txt"),
	}}
	files, err := cfg.Files()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
