package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medlit-labs/litqa-cli/internal/core/ports/driven"
)

func TestNewPromptStore_NoIOInConstructor(t *testing.T) {
	tmpDir := t.TempDir()
	promptDir := filepath.Join(tmpDir, "prompts")

	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)
	assert.Equal(t, promptDir, store.Dir())

	// Directory must not exist until first Load.
	_, err = os.Stat(promptDir)
	assert.True(t, os.IsNotExist(err))
}

func TestPromptStore_LoadSeedsDefaults(t *testing.T) {
	promptDir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.Contains(t, prompt, "one or two concise sentences")
	assert.Contains(t, prompt, "I don't know")
	assert.Equal(t, 2, strings.Count(prompt, "%s"), "answer prompt needs context and question slots")

	// First load writes the default file and a README.
	_, err = os.Stat(filepath.Join(promptDir, "answer.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(promptDir, "README.md"))
	assert.NoError(t, err)
}

func TestPromptStore_UserEditWins(t *testing.T) {
	promptDir := filepath.Join(t.TempDir(), "prompts")
	require.NoError(t, os.MkdirAll(promptDir, 0700))

	custom := "Custom: %s / %s"
	require.NoError(t, os.WriteFile(filepath.Join(promptDir, "answer.txt"), []byte(custom+"\n"), 0600))

	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt, "trailing whitespace trimmed, user content kept")
}

func TestPromptStore_ReloadPicksUpChanges(t *testing.T) {
	promptDir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptAnswer)
	require.NoError(t, err)

	edited := "Edited: %s %s"
	require.NoError(t, os.WriteFile(filepath.Join(promptDir, "answer.txt"), []byte(edited), 0600))

	// Cached value until Reload.
	prompt, err := store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.NotEqual(t, edited, prompt)

	store.Reload()
	prompt, err = store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.Equal(t, edited, prompt)
}

func TestPromptStore_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(filepath.Join(t.TempDir(), "prompts"))
	require.NoError(t, err)

	_, err = store.Load("does_not_exist")
	assert.Error(t, err)
}
