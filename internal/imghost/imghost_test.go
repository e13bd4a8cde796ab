package imghost

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yockii/wx_publisher/internal/constant"
)

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		if !assert.NoError(t, r.ParseForm()) {
			return
		}
		assert.Equal(t, "key1", r.PostForm.Get("key"))
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("img")), r.PostForm.Get("image"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://i.ibb.co/a.png","display_url":"https://ibb.co/a"}}`))
	}))
	defer srv.Close()

	res, err := NewClient(Options{BaseURL: srv.URL}, "key1").Upload(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/a.png", res.URL)
	assert.Equal(t, "https://ibb.co/a", res.DisplayURL)
}

func TestUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":{"message":"Invalid API v1 key."}}`))
	}))
	defer srv.Close()

	_, err := NewClient(Options{BaseURL: srv.URL}, "bad").Upload(context.Background(), []byte("img"))
	assert.ErrorIs(t, err, constant.ErrUpstream)
	assert.Contains(t, err.Error(), "Invalid API v1 key.")

	_, err = NewClient(Options{BaseURL: srv.URL}, "").Upload(context.Background(), []byte("img"))
	assert.ErrorIs(t, err, constant.ErrImgBBNotConfigured)
}

type fakeUploader struct {
	calls int32
	fail  bool
}

func (f *fakeUploader) Upload(_ context.Context, data []byte) (*Result, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.fail {
		return nil, errors.New("boom")
	}
	return &Result{URL: "https://cdn/" + string(data)}, nil
}

func TestLocalImages(t *testing.T) {
	md := "![a](a.png) ![b](https://x/b.png) ![c](data:image/png;base64,AA==) ![a again](a.png) ![d](<img/d.jpg>)"
	assert.Equal(t, []string{"a.png", "img/d.jpg"}, LocalImages(md))
}

func TestRewriteLocalImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("A"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "b.png"), []byte("B"), 0644))

	up := &fakeUploader{}
	md := "# T\n\n![a.png](a.png)\n\n![b](img/b.png)\n\n![r](https://x/r.png)\n\n![a2](a.png)"
	out, err := RewriteLocalImages(context.Background(), md, dir, up)
	require.NoError(t, err)
	assert.Equal(t, "# T\n\n![a.png](https://cdn/A)\n\n![b](https://cdn/B)\n\n![r](https://x/r.png)\n\n![a2](https://cdn/A)", out)
	assert.Equal(t, int32(2), atomic.LoadInt32(&up.calls))
}

func TestRewriteLocalImagesErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := RewriteLocalImages(context.Background(), "![x](../secret.png)", dir, &fakeUploader{})
	assert.Error(t, err)

	_, err = RewriteLocalImages(context.Background(), "![x](missing.png)", dir, &fakeUploader{})
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("A"), 0644))
	_, err = RewriteLocalImages(context.Background(), "![x](a.png)", dir, &fakeUploader{fail: true})
	assert.Error(t, err)

	out, err := RewriteLocalImages(context.Background(), "no images", dir, &fakeUploader{})
	require.NoError(t, err)
	assert.Equal(t, "no images", out)
}
