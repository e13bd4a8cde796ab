package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.txt")
	require.NoError(t, SaveFile(path, []byte("hi")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestSafeJoin(t *testing.T) {
	p, ok := SafeJoin("/tmp/covers", "cover_1.png")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("/tmp/covers", "cover_1.png"), p)

	for _, bad := range []string{"", "../etc/passwd", "a/b.png", ".hidden", ".."} {
		_, ok := SafeJoin("/tmp/covers", bad)
		assert.False(t, ok, bad)
	}
}

func TestMD5Hex(t *testing.T) {
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", MD5Hex("hello"))
}

func TestNewFileName(t *testing.T) {
	a := NewFileName("audio", "webm")
	b := NewFileName("audio", "webm")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "audio_"))
	assert.True(t, strings.HasSuffix(a, ".webm"))
}

func TestNewID(t *testing.T) {
	require.NoError(t, InitNode(1))
	assert.NotEqual(t, NewID(), NewID())
}

func TestExt(t *testing.T) {
	assert.Equal(t, "pdf", Ext("Report.PDF"))
	assert.Equal(t, "", Ext("noext"))
}
