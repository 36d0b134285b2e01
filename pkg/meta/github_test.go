package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerRepo(t *testing.T) {
	owner, repo, ok := ownerRepo("https://github.com/google/gemma_pytorch")
	require.True(t, ok)
	assert.Equal(t, "google", owner)
	assert.Equal(t, "gemma_pytorch", repo)

	owner, repo, ok = ownerRepo("https://github.com/google/gemma_pytorch/blob/main/README.md")
	require.True(t, ok)
	assert.Equal(t, "google", owner)
	assert.Equal(t, "gemma_pytorch", repo)

	_, repo, ok = ownerRepo("https://github.com/google/gemma.git")
	require.True(t, ok)
	assert.Equal(t, "gemma", repo)

	_, _, ok = ownerRepo("https://github.com/google")
	assert.False(t, ok)

	_, _, ok = ownerRepo("https://example.com/google/repo")
	assert.False(t, ok)
}
