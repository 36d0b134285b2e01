package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrCreate_CreatesDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://huggingface.co", c.HubBaseURL)

	_, err = os.Stat(filepath.Join(dir, configFileName))
	assert.NoError(t, err)
}

func TestReadOrCreate_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	want := &Config{CacheDB: "/tmp/x.db", HubBaseURL: "http://localhost:9999"}
	require.NoError(t, Save(dir, want))

	got, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadOrCreate_EmptyDir(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)
}

func TestSave_NilConfig(t *testing.T) {
	assert.Error(t, Save(t.TempDir(), nil))
}
