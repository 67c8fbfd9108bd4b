package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medlit-labs/litqa-cli/internal/core/ports/driven"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(driven.ConfigTopK, 5))

	val, ok := store.Get(driven.ConfigTopK)
	assert.True(t, ok)
	assert.Equal(t, 5, val)

	_, ok = store.Get("nonexistent")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(driven.ConfigEmbedderType, "ollama"))
	assert.Equal(t, "ollama", store.GetString(driven.ConfigEmbedderType))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set("int_key", 42))
	assert.Equal(t, "", store.GetString("int_key"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(driven.ConfigMaxResults, 200))
	assert.Equal(t, 200, store.GetInt(driven.ConfigMaxResults))

	assert.Equal(t, 0, store.GetInt("nonexistent"))

	require.NoError(t, store.Set("string_key", "hello"))
	assert.Equal(t, 0, store.GetInt("string_key"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	topics := []string{"cancer immunotherapy", "crispr"}
	require.NoError(t, store.Set(driven.ConfigDefaultTopics, topics))
	assert.Equal(t, topics, store.GetStringSlice(driven.ConfigDefaultTopics))

	assert.Nil(t, store.GetStringSlice("nonexistent"))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.ConfigChunkWindow, 150))
	require.NoError(t, store.Set(driven.ConfigChunkOverlap, 30))
	require.NoError(t, store.Set(driven.ConfigEmbedderModel, "nomic-embed-text"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 150, reopened.GetInt(driven.ConfigChunkWindow))
	assert.Equal(t, 30, reopened.GetInt(driven.ConfigChunkOverlap))
	assert.Equal(t, "nomic-embed-text", reopened.GetString(driven.ConfigEmbedderModel))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.ConfigMaxResults, 100))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[pubmed]")
	assert.Contains(t, string(data), "max_results = 100")
}

func TestConfigStore_LoadMissingFile(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// Load on a store whose file was never written starts empty.
	require.NoError(t, store.Load())
	_, ok := store.Get(driven.ConfigTopK)
	assert.False(t, ok)
}

func TestUnflattenMap(t *testing.T) {
	flat := map[string]any{
		"pubmed.max_results": 100,
		"retrieval.top_k":    3,
		"storage.data_dir":   "/tmp/litqa",
	}

	nested := unflattenMap(flat)

	pubmed, ok := nested["pubmed"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 100, pubmed["max_results"])

	// Round trip through flatten restores the original keys.
	assert.Equal(t, flat, flattenMap(nested, ""))
}
