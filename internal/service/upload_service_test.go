package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/imghost"
)

func TestExtractDocument(t *testing.T) {
	srv := NewUploadService(newTestConfigService(t, "", nil), imghost.Options{})

	content, err := srv.ExtractDocument("a.md", []byte("\xef\xbb\xbf# 标题"))
	require.NoError(t, err)
	assert.Equal(t, "# 标题", content)

	_, err = srv.ExtractDocument("a.exe", []byte("x"))
	assert.ErrorIs(t, err, constant.ErrUnsupportedFormat)
}

func TestUploadImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "img-key", r.FormValue("key"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://i.ibb.co/a.png","display_url":"https://ibb.co/a"}}`))
	}))
	defer server.Close()
	ctx := context.Background()

	srv := NewUploadService(newTestConfigService(t, "", nil), imghost.Options{BaseURL: server.URL})
	_, err := srv.UploadImage(ctx, "u1", []byte("img"))
	assert.ErrorIs(t, err, constant.ErrImgBBNotConfigured)
	_, err = srv.UploadImage(ctx, "u1", nil)
	assert.ErrorIs(t, err, constant.ErrFileEmpty)

	srv = NewUploadService(newTestConfigService(t, "u1", &UserKeys{ImgBBAPIKey: "img-key"}), imghost.Options{BaseURL: server.URL})
	result, err := srv.UploadImage(ctx, "u1", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/a.png", result.URL)
}
