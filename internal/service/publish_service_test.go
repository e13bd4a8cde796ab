package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/wechat"
)

func newFakeWeChat(t *testing.T, draft *gjson.Result) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"TOKEN","expires_in":7200}`))
	})
	mux.HandleFunc("/material/add_material", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"media_id":"THUMB","url":"http://mmbiz/x.png"}`))
	})
	mux.HandleFunc("/draft/add", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*draft = gjson.ParseBytes(body)
		_, _ = w.Write([]byte(`{"media_id":"DRAFT"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestPublish(t *testing.T) {
	var draft gjson.Result
	server := newFakeWeChat(t, &draft)
	coverDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(coverDir, "cover_1.png"), pngBytes(t, 900, 383), 0644))

	configSrv := newTestConfigService(t, "u1", &UserKeys{WeChatAppID: "wx", WeChatAppSecret: "secret"})
	srv := NewPublishService(configSrv, PublishOptions{
		WeChat:   wechat.Options{BaseURL: server.URL, Tokens: NewTokenCache(nil, 8)},
		CoverDir: coverDir,
	})

	mediaID, err := srv.Publish(context.Background(), "u1", &PublishRequest{
		Title:     "标题",
		Content:   "<p>正文</p>",
		Summary:   "摘要",
		CoverPath: "/api/cover/cover_1.png",
		Author:    "作者",
	})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", mediaID)
	assert.Equal(t, "标题", draft.Get("articles.0.title").String())
	assert.Equal(t, "摘要", draft.Get("articles.0.digest").String())
	assert.Equal(t, "THUMB", draft.Get("articles.0.thumb_media_id").String())
	assert.Equal(t, "作者", draft.Get("articles.0.author").String())
}

func TestPublishErrors(t *testing.T) {
	ctx := context.Background()
	srv := NewPublishService(newTestConfigService(t, "", nil), PublishOptions{CoverDir: t.TempDir()})

	_, err := srv.Publish(ctx, "u1", &PublishRequest{Title: "t"})
	assert.ErrorIs(t, err, constant.ErrContentEmpty)

	_, err = srv.Publish(ctx, "u1", &PublishRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, constant.ErrWeChatNotConfigured)

	var draft gjson.Result
	server := newFakeWeChat(t, &draft)
	configSrv := newTestConfigService(t, "u1", &UserKeys{WeChatAppID: "wx", WeChatAppSecret: "secret"})
	srv = NewPublishService(configSrv, PublishOptions{
		WeChat:   wechat.Options{BaseURL: server.URL},
		CoverDir: t.TempDir(),
	})

	_, err = srv.Publish(ctx, "u1", &PublishRequest{Title: "t", Content: "c", CoverPath: "missing.png"})
	assert.ErrorIs(t, err, constant.ErrFileNotFound)

	_, err = srv.Publish(ctx, "u1", &PublishRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, constant.ErrNoCoverImage)
}

func TestServerIP(t *testing.T) {
	lookup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"192.0.2.10"}`))
	}))
	defer lookup.Close()

	srv := NewPublishService(newTestConfigService(t, "", nil), PublishOptions{
		WeChat: wechat.Options{IPLookupURL: lookup.URL},
	})
	ip, err := srv.ServerIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.10", ip)
}
