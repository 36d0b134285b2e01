package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	app := newApp()
	require.NotNil(t, app)
	assert.Equal(t, appName, app.Name)

	names := make([]string, 0, len(app.Commands))
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"score", "query", "server", "auth"}, names)
}

func TestReadURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://huggingface.co/org/model\n\n  \nhttps://github.com/org/repo\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	urls, err := readURLFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://huggingface.co/org/model",
		"https://github.com/org/repo",
	}, urls)
}

func TestReadURLFile_Missing(t *testing.T) {
	_, err := readURLFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
