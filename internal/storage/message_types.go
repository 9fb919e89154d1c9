package storage

import "time"

// ResumeUploadMessage 简历上传事件
// API侧上传完对象存储后发布，消费者据此驱动提取流水线
type ResumeUploadMessage struct {
	SubmissionUUID      string    `json:"submission_uuid"`          // 提交UUID，主键
	SubmissionTimestamp time.Time `json:"submission_timestamp"`     // 提交时间戳
	SourceChannel       string    `json:"source_channel,omitempty"` // 来源渠道
	OriginalFilename    string    `json:"original_filename"`        // 原始文件名
	OriginalFilePathOSS string    `json:"original_file_path_oss"`   // MinIO中的对象键
	RawFileMD5          string    `json:"raw_file_md5,omitempty"`   // 原始文件MD5，处理失败时用于回滚去重记录
}
