package processor

import (
	"context"

	"resume-agent-go/internal/types"
)

//
// PDF解析相关接口
//

// PDFExtractor PDF提取器接口
type PDFExtractor interface {
	// ExtractFromFile 从PDF文件提取文本和元数据
	ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error)

	// ExtractTextFromBytes 从字节数组提取文本和元数据
	// uri仅用于日志和元数据标识
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error)
}

//
// 字段提取相关接口
//

// CandidateExtractor 候选人字段提取接口
type CandidateExtractor interface {
	// Extract 从简历纯文本提取结构化候选人记录
	Extract(ctx context.Context, text string) (*types.CandidateRecord, error)
}

//
// 存储相关接口
//

// FileDownloader 原始简历下载接口
type FileDownloader interface {
	// GetResumeFile 按对象键下载原始简历
	GetResumeFile(ctx context.Context, objectName string) ([]byte, error)

	// UploadParsedText 上传解析后的纯文本，返回对象键
	UploadParsedText(ctx context.Context, submissionUUID string, text string) (string, error)
}
