package handler

import (
	"context"
	"testing"

	"resume-agent-go/internal/config"
	"resume-agent-go/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHealthDegradedWithoutComponents 依赖未初始化时健康检查整体降级
func TestHealthDegradedWithoutComponents(t *testing.T) {
	h := NewResumeHandler(&config.Config{}, &storage.Storage{}, nil)

	status := h.Health(context.Background())
	require.NotNil(t, status)
	assert.False(t, status.Healthy())
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unconfigured", status.Components["redis"])
	assert.Equal(t, "unconfigured", status.Components["mysql"])
}

// TestHealthNilStorage 存储管理器为空时不panic，返回降级状态
func TestHealthNilStorage(t *testing.T) {
	h := NewResumeHandler(&config.Config{}, nil, nil)

	status := h.Health(context.Background())
	assert.False(t, status.Healthy())
	assert.Equal(t, "unconfigured", status.Components["redis"])
	assert.Equal(t, "unconfigured", status.Components["mysql"])
}

// TestPresignedURLExpiryResponse 下载链接有效期以秒为单位回传给调用方
func TestPresignedURLExpiryResponse(t *testing.T) {
	assert.Equal(t, 900, int(presignedURLExpiry.Seconds()))
}
