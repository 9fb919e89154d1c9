package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEinoPDFTextExtractor(t *testing.T) {
	extractor, err := NewEinoPDFTextExtractor(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, extractor)
}

// TestExtractFromFileNotFound 文件不存在时返回错误而不是空文本
func TestExtractFromFileNotFound(t *testing.T) {
	extractor, err := NewEinoPDFTextExtractor(context.Background())
	require.NoError(t, err)

	text, _, err := extractor.ExtractFromFile(context.Background(), "/nonexistent/resume.pdf")
	assert.Error(t, err)
	assert.Empty(t, text)
}

// TestExtractTextFromBytesInvalid 非PDF字节流解析失败
func TestExtractTextFromBytesInvalid(t *testing.T) {
	extractor, err := NewEinoPDFTextExtractor(context.Background())
	require.NoError(t, err)

	text, _, err := extractor.ExtractTextFromBytes(context.Background(),
		[]byte("this is not a pdf"), "memory://bad.pdf", nil)
	assert.Error(t, err)
	assert.Empty(t, text)
}
