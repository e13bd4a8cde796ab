package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yockii/wx_publisher/internal/ai"
	"github.com/yockii/wx_publisher/internal/model"
	"github.com/yockii/wx_publisher/pkg/database"
	"github.com/yockii/wx_publisher/pkg/util"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	require.NoError(t, util.InitNode(1))
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"), gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, "sqlite"))
	return db
}

func newTestConfigService(t *testing.T, userID string, keys *UserKeys) ConfigService {
	t.Helper()
	srv := NewConfigService(newTestDB(t), t.TempDir())
	if keys != nil {
		require.NoError(t, srv.Save(context.Background(), userID, keys))
	}
	return srv
}

// fakeLLM 记录收到的请求并返回预设回复
type fakeLLM struct {
	mu       sync.Mutex
	requests []gjson.Result
	reply    string
	status   int
}

func newFakeLLM(t *testing.T, reply string) (*fakeLLM, *httptest.Server) {
	f := &fakeLLM{reply: reply, status: http.StatusOK}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, gjson.ParseBytes(body))
		status := f.status
		f.mu.Unlock()
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":` + quote(f.reply) + `}}]}`))
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeLLM) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeLLM) last() gjson.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func aiOptions(url string) ai.Options {
	return ai.Options{
		Name:       "test",
		BaseURL:    url,
		Model:      "test-model",
		MaxRetries: 0,
		Backoff:    time.Millisecond,
	}
}
