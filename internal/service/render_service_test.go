package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/pkg/theme"
)

func TestSelectTheme(t *testing.T) {
	th, source := selectTheme([]byte(`"tech"`))
	assert.Equal(t, "tech", th.ID)
	assert.Equal(t, constant.ThemeSourceCatalog, source)

	th, source = selectTheme([]byte(`{"primary_color":"#ff0000"}`))
	assert.Equal(t, "#ff0000", th.PrimaryColor)
	assert.Equal(t, constant.ThemeSourceInline, source)

	th, _ = selectTheme(nil)
	assert.Equal(t, theme.DefaultID, th.ID)

	th, _ = selectTheme([]byte(`"no-such-theme"`))
	assert.Equal(t, theme.DefaultID, th.ID)
}

func TestConvert(t *testing.T) {
	srv := NewRenderService(newTestConfigService(t, "", nil), RenderOptions{})

	_, err := srv.Convert(context.Background(), "  \n", nil)
	assert.ErrorIs(t, err, constant.ErrContentEmpty)

	result, err := srv.Convert(context.Background(), "# 标题\n\n正文内容", []byte(`"tech"`))
	require.NoError(t, err)
	assert.Equal(t, "标题", result.Title)
	assert.Equal(t, "正文内容", result.Summary)
	assert.Contains(t, result.HTML, "正文内容")
	assert.Contains(t, result.HTML, "#7c3aed")
	assert.Nil(t, result.Theme)
	assert.Len(t, srv.Themes(), len(theme.List()))
}

func TestConvertCustom(t *testing.T) {
	llm, server := newFakeLLM(t, "```json\n{\"primary_color\": \"#ff5500\", \"heading_style\": \"underline\"}\n```")
	configSrv := newTestConfigService(t, "u1", &UserKeys{DeepSeekAPIKey: "sk"})
	srv := NewRenderService(configSrv, RenderOptions{DeepSeek: aiOptions(server.URL)})
	ctx := context.Background()

	_, err := srv.ConvertCustom(ctx, "u1", "正文", " ")
	assert.ErrorIs(t, err, constant.ErrStyleDescriptionEmpty)

	result, err := srv.ConvertCustom(ctx, "u1", "# 标题\n\n正文", "橙色活力")
	require.NoError(t, err)
	require.NotNil(t, result.Theme)
	assert.Equal(t, theme.CustomID, result.Theme.ID)
	assert.Equal(t, "#ff5500", result.Theme.PrimaryColor)
	assert.Equal(t, theme.HeadingUnderline, result.Theme.HeadingStyle)
	assert.Contains(t, result.HTML, "#ff5500")

	req := llm.last()
	assert.Equal(t, int64(500), req.Get("max_tokens").Int())
	assert.Contains(t, req.Get("messages.0.content").String(), "风格描述：橙色活力")

	// 同一风格描述命中缓存
	_, err = srv.ConvertCustom(ctx, "u1", "正文", "橙色活力")
	require.NoError(t, err)
	assert.Equal(t, 1, llm.count())
}

func TestConvertCustomFallsBackToDefault(t *testing.T) {
	ctx := context.Background()

	// 未配置密钥
	srv := NewRenderService(newTestConfigService(t, "", nil), RenderOptions{})
	result, err := srv.ConvertCustom(ctx, "u1", "正文", "随便")
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultID, result.Theme.ID)

	// 回复无法解析
	_, server := newFakeLLM(t, "抱歉，我无法生成")
	srv = NewRenderService(newTestConfigService(t, "u1", &UserKeys{DeepSeekAPIKey: "sk"}), RenderOptions{DeepSeek: aiOptions(server.URL)})
	result, err = srv.ConvertCustom(ctx, "u1", "正文", "随便")
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultID, result.Theme.ID)
}

func TestParse(t *testing.T) {
	srv := NewRenderService(newTestConfigService(t, "", nil), RenderOptions{})
	result, err := srv.Parse("# 你好\n\n![a](a.png)\n\n世界")
	require.NoError(t, err)
	assert.Equal(t, "你好", result.Title)
	assert.Equal(t, []string{"a.png"}, result.Images)
	assert.Equal(t, 21, result.WordCount)

	_, err = srv.Parse("")
	assert.ErrorIs(t, err, constant.ErrContentEmpty)
}
