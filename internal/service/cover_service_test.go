package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/cover"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeCover(t *testing.T, dir, imageURL string) image.Config {
	t.Helper()
	require.True(t, strings.HasPrefix(imageURL, coverRoute))
	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(imageURL, coverRoute)))
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg
}

func TestGenerateCoverFallback(t *testing.T) {
	dir := t.TempDir()
	srv := NewCoverService(newTestConfigService(t, "", nil), CoverOptions{Dir: dir})

	result, err := srv.Generate(context.Background(), "u1", &CoverRequest{Title: "标题", Theme: "tech"})
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, "标题", result.Prompt)

	cfg := decodeCover(t, dir, result.ImageURL)
	assert.Equal(t, cover.Width, cfg.Width)
	assert.Equal(t, cover.Height, cfg.Height)
}

func TestGenerateCoverWithAI(t *testing.T) {
	dir := t.TempDir()
	reply := "生成完成 ![cover](data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 40, 40)) + ")"
	poe, poeServer := newFakeLLM(t, reply)
	deepSeek, deepSeekServer := newFakeLLM(t, "  星空下的城市  ")

	configSrv := newTestConfigService(t, "u1", &UserKeys{DeepSeekAPIKey: "sk", PoeAPIKey: "poe"})
	srv := NewCoverService(configSrv, CoverOptions{
		DeepSeek: aiOptions(deepSeekServer.URL),
		Poe:      aiOptions(poeServer.URL),
		Dir:      dir,
	})

	result, err := srv.Generate(context.Background(), "u1", &CoverRequest{Title: "城市", Summary: "夜景", Theme: "dark"})
	require.NoError(t, err)
	assert.False(t, result.Fallback)
	assert.Equal(t, "星空下的城市", result.Prompt)

	coverPrompt := deepSeek.last().Get("messages.0.content").String()
	assert.Contains(t, coverPrompt, "文章标题：城市")
	assert.Contains(t, coverPrompt, "视觉风格要求：专业简约")

	drawReq := poe.last()
	assert.True(t, drawReq.Get("image_only").Bool())
	assert.Contains(t, drawReq.Get("messages.0.content").String(), coverStylePrompts["dark"])

	cfg := decodeCover(t, dir, result.ImageURL)
	assert.Equal(t, cover.Width, cfg.Width)
	assert.Equal(t, cover.Height, cfg.Height)
}

func TestGenerateCoverDrawFailure(t *testing.T) {
	dir := t.TempDir()
	_, poeServer := newFakeLLM(t, "没有图片")
	configSrv := newTestConfigService(t, "u1", &UserKeys{PoeAPIKey: "poe"})
	srv := NewCoverService(configSrv, CoverOptions{Poe: aiOptions(poeServer.URL), Dir: dir})

	result, err := srv.Generate(context.Background(), "u1", &CoverRequest{Title: "标题"})
	require.NoError(t, err)
	assert.True(t, result.Fallback)
}

func TestCoverPath(t *testing.T) {
	dir := t.TempDir()
	srv := NewCoverService(newTestConfigService(t, "", nil), CoverOptions{Dir: dir})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("x"), 0644))

	p, err := srv.Path("a.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.png"), p)

	_, err = srv.Path("missing.png")
	assert.ErrorIs(t, err, constant.ErrFileNotFound)

	_, err = srv.Path("../a.png")
	assert.ErrorIs(t, err, constant.ErrInvalidParams)
}
