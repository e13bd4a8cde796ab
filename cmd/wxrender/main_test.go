package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(file, []byte("# 标题\n\n正文"), 0644))

	out, err := run(t, "", "render", "--theme", "tech", file)
	require.NoError(t, err)
	assert.Contains(t, out, "正文")
	assert.Contains(t, out, "#7c3aed")

	themeFile := filepath.Join(dir, "theme.json")
	require.NoError(t, os.WriteFile(themeFile, []byte(`{"primary_color":"#abcdef","heading_color":"#abcdef"}`), 0644))
	output := filepath.Join(dir, "out.html")
	_, err = run(t, "", "render", "--theme-json", themeFile, "-o", output, file)
	require.NoError(t, err)
	html, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(html), "#abcdef")

	out, err = run(t, "**粗体**", "render", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "粗体")

	_, err = run(t, "", "render", filepath.Join(dir, "missing.md"))
	assert.Error(t, err)
}

func TestMetaCommand(t *testing.T) {
	out, err := run(t, "# 标题\n\n![a](a.png)\n\n这是一段比较长的摘要内容", "meta", "--max", "4", "-")
	require.NoError(t, err)
	assert.Equal(t, "标题", gjson.Get(out, "title").String())
	assert.Equal(t, "这是一段...", gjson.Get(out, "summary").String())
	assert.Equal(t, "a.png", gjson.Get(out, "images.0").String())
}

func TestThemesCommand(t *testing.T) {
	out, err := run(t, "", "themes")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 19)
	assert.True(t, strings.HasPrefix(lines[0], "insight"))
}
