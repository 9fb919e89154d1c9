package constants

// Redis Key 前缀和格式常量
// 统一命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// FileModulePrefix 文件模块
	FileModulePrefix = "file"
	// ResumeModulePrefix 简历模块
	ResumeModulePrefix = "resume"

	// EntityDedupSet 去重集合实体
	EntityDedupSet = "dedup_set"
	// EntityRecord 解析记录实体
	EntityRecord = "record"

	// KeyRawFileMD5Set 原始文件MD5集合，用于上传去重 (SET)
	// 格式: app:file:dedup_set:raw
	KeyRawFileMD5Set = AppPrefix + ":" + FileModulePrefix + ":" + EntityDedupSet + ":raw"

	// KeyParsedTextMD5Set 解析文本MD5集合，用于内容级去重 (SET)
	// 格式: app:file:dedup_set:text
	KeyParsedTextMD5Set = AppPrefix + ":" + FileModulePrefix + ":" + EntityDedupSet + ":text"

	// KeyCandidateRecord 解析出的候选人记录缓存 (STRING, JSON)
	// 格式: app:resume:record:{submission_uuid}
	KeyCandidateRecord = AppPrefix + ":" + ResumeModulePrefix + ":" + EntityRecord + ":%s"
)
