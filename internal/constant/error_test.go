package constant

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yockii/wx_publisher/pkg/mdtree"
)

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrInvalidParams, http.StatusBadRequest},
		{ErrContentEmpty, http.StatusBadRequest},
		{fmt.Errorf("调用 DeepSeek 失败: %w", ErrUpstream), http.StatusBadGateway},
		{fmt.Errorf("解析失败: %w", mdtree.ErrInvalidInput), http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrFileNotFound, http.StatusNotFound},
		{ErrDatabaseError, http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetErrorCode(tt.err), tt.err.Error())
	}
}
