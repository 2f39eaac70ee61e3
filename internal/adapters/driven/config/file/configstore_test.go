package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "docdesk")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api.base_url", "https://docs.example.com/api/v1"))
	require.NoError(t, store.Set("api.timeout_seconds", 15))
	require.NoError(t, store.Set("api.rate_per_second", 2.5))
	require.NoError(t, store.Set("log.verbose", true))

	assert.Equal(t, "https://docs.example.com/api/v1", store.GetString("api.base_url"))
	assert.Equal(t, 15, store.GetInt("api.timeout_seconds"))
	assert.InDelta(t, 2.5, store.GetFloat("api.rate_per_second"), 0.001)
	assert.InDelta(t, 15.0, store.GetFloat("api.timeout_seconds"), 0.001)
	assert.True(t, store.GetBool("log.verbose"))

	// Wrong types and missing keys read as zero values.
	assert.Equal(t, "", store.GetString("api.timeout_seconds"))
	assert.Equal(t, 0, store.GetInt("api.base_url"))
	assert.Zero(t, store.GetFloat("api.base_url"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_PersistsAsTables(t *testing.T) {
	tmpDir := t.TempDir()
	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set("api.base_url", "http://localhost:8000/api/v1"))
	require.NoError(t, store1.Set("api.timeout_seconds", 30))
	require.NoError(t, store1.Set("search.debounce_ms", 300))
	require.NoError(t, store1.Set("api.rate_per_second", 10.0))

	raw, err := os.ReadFile(store1.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[api]")
	assert.Contains(t, string(raw), "[search]")

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", store2.GetString("api.base_url"))
	assert.Equal(t, 30, store2.GetInt("api.timeout_seconds"))
	assert.Equal(t, 300, store2.GetInt("search.debounce_ms"))
	assert.InDelta(t, 10.0, store2.GetFloat("api.rate_per_second"), 0.001)
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte(`
[api]
base_url = "https://docs.example.com/api/v1"
rate_per_second = 4

[documents]
page_size = 50
`)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/api/v1", store.GetString("api.base_url"))
	assert.InDelta(t, 4.0, store.GetFloat("api.rate_per_second"), 0.001)
	assert.Equal(t, 50, store.GetInt("documents.page_size"))
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	_, ok := store.Get("api.base_url")
	assert.False(t, ok)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("api.base_url", "http://localhost:8000/api/v1"))

	info, err := os.Stat(store.Path())

	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_WriteError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("api.base_url", "x"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = store.Set("documents.page_size", id)
			_ = store.GetInt("documents.page_size")
		}(i)
	}
	wg.Wait()
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"api.base_url":        "u",
		"api.timeout_seconds": 30,
		"log":                 "plain",
		"log.file":            "/tmp/x.log",
	})

	assert.Equal(t, map[string]any{
		"api":      map[string]any{"base_url": "u", "timeout_seconds": 30},
		"log":      "plain",
		"log.file": "/tmp/x.log",
	}, nested)
	assert.Equal(t, map[string]any{
		"api.base_url":        "u",
		"api.timeout_seconds": 30,
		"log":                 "plain",
		"log.file":            "/tmp/x.log",
	}, flattenMap(nested, ""))
}
