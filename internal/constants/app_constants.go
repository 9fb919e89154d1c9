package constants

import "time"

const (
	// DefaultParserVer 当前解析流水线版本，写入 resume_submissions.parser_version
	DefaultParserVer = "1.0"

	// 简历提交处理状态
	StatusPendingParsing   = "PENDING_PARSING"
	StatusProcessing       = "PROCESSING"
	StatusParsed           = "PARSED"
	StatusProcessingFailed = "PROCESSING_FAILED"

	// RawFileMD5ExpireDuration 原始文件MD5去重记录的默认过期时间
	RawFileMD5ExpireDuration = 30 * 24 * time.Hour
)
