package wechat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yockii/wx_publisher/internal/constant"
)

func TestOutboundIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`{"ip":"203.0.113.7"}`))
	}))
	defer srv.Close()

	ip, err := OutboundIP(context.Background(), Options{IPLookupURL: srv.URL + "/?format=json"})
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestOutboundIPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := OutboundIP(context.Background(), Options{IPLookupURL: srv.URL + "/empty"})
	assert.ErrorIs(t, err, constant.ErrUpstream)

	_, err = OutboundIP(context.Background(), Options{IPLookupURL: srv.URL + "/down"})
	assert.ErrorIs(t, err, constant.ErrUpstream)
}
