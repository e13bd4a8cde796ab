package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  port: 8088\ndatabase:\n  type: mysql\n  host: db\n  port: 3306\n  user: u\n  password: p\n  dbname: wx\n"), 0644))

	t.Setenv("WXP_STORAGE_DATA_DIR", "/srv/data")
	t.Setenv("PROMPT_COVER", "封面：{title}")

	require.NoError(t, Init(file))

	assert.Equal(t, ":8088", GetServerAddress())
	assert.Equal(t, "u:p@tcp(db:3306)/wx?charset=utf8mb4&parseTime=True&loc=Local", GetDSN())
	assert.Equal(t, "/srv/data", GetString("storage.data_dir"))
	assert.Equal(t, "封面：{title}", GetString("prompts.cover"))
	assert.Equal(t, "https://api.deepseek.com", GetString("ai.deepseek_base_url"))
	assert.Equal(t, 2, GetInt("ai.max_retries"))
}

func TestMissingFileUsesDefaults(t *testing.T) {
	v := newViper()
	v.SetConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, v.ReadInConfig())
	assert.Equal(t, "sqlite", v.GetString("database.type"))
	assert.Equal(t, 5000, v.GetInt("server.port"))
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server: [port\n"), 0644))

	found, err := readConfig(newViper(), file)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	found, err = readConfig(newViper(), filepath.Join(dir, "absent.yaml"))
	assert.False(t, found)
	assert.NoError(t, err)
}
