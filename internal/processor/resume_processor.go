// Package processor 驱动简历从上传事件到结构化候选人记录的完整流水线
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"resume-agent-go/internal/constants"
	"resume-agent-go/internal/extractor"
	"resume-agent-go/internal/logger"
	"resume-agent-go/internal/storage"
	"resume-agent-go/internal/storage/models"
	"resume-agent-go/internal/types"
)

// 候选人记录缓存的保留时间
const candidateRecordCacheTTL = 24 * time.Hour

// MetadataStore 处理流程需要的元数据写入能力
type MetadataStore interface {
	UpdateResumeProcessingStatus(ctx context.Context, submissionUUID string, status string) error
	UpdateResumeSubmissionFields(ctx context.Context, submissionUUID string, updates map[string]interface{}) error
	SaveCandidate(ctx context.Context, candidate *models.Candidate) error
}

// DedupCache 去重集合与记录缓存能力
type DedupCache interface {
	CheckAndAddParsedTextMD5(ctx context.Context, md5Hex string) (bool, error)
	RemoveRawFileMD5(ctx context.Context, md5Hex string) error
	CacheCandidateRecord(ctx context.Context, submissionUUID string, record *types.CandidateRecord, ttl time.Duration) error
}

// ResumeProcessor 简历处理器
// 消费上传事件：下载原始文件、提取文本、跑字段提取流水线、落库并回填缓存
type ResumeProcessor struct {
	pdfExtractor  PDFExtractor
	extractor     CandidateExtractor
	files         FileDownloader
	meta          MetadataStore
	cache         DedupCache
	parserVersion string
}

// NewResumeProcessor 创建简历处理器
func NewResumeProcessor(pdfExtractor PDFExtractor, extractor CandidateExtractor, files FileDownloader, meta MetadataStore, cache DedupCache, parserVersion string) (*ResumeProcessor, error) {
	if pdfExtractor == nil || extractor == nil || files == nil || meta == nil || cache == nil {
		return nil, fmt.Errorf("处理器依赖不完整")
	}
	if parserVersion == "" {
		parserVersion = constants.DefaultParserVer
	}
	return &ResumeProcessor{
		pdfExtractor:  pdfExtractor,
		extractor:     extractor,
		files:         files,
		meta:          meta,
		cache:         cache,
		parserVersion: parserVersion,
	}, nil
}

// HandleUploadMessage RabbitMQ消费入口
// 返回true表示Ack。业务性失败会把提交标记为失败并Ack，不无限重投
func (p *ResumeProcessor) HandleUploadMessage(ctx context.Context, body []byte) bool {
	var msg storage.ResumeUploadMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		logger.Error().Err(err).Msg("上传消息反序列化失败，丢弃")
		return true
	}
	if msg.SubmissionUUID == "" || msg.OriginalFilePathOSS == "" {
		logger.Error().
			Str("submission_uuid", msg.SubmissionUUID).
			Msg("上传消息缺少必要字段，丢弃")
		return true
	}

	if err := p.ProcessUploadedResume(ctx, &msg); err != nil {
		logger.Error().Err(err).
			Str("submission_uuid", msg.SubmissionUUID).
			Msg("简历处理失败")
		p.markFailed(ctx, &msg)
		return true
	}
	return true
}

// ProcessUploadedResume 执行完整处理流程
func (p *ResumeProcessor) ProcessUploadedResume(ctx context.Context, msg *storage.ResumeUploadMessage) error {
	startTime := time.Now()
	logger.Info().
		Str("submission_uuid", msg.SubmissionUUID).
		Str("filename", msg.OriginalFilename).
		Msg("开始处理简历")

	if err := p.meta.UpdateResumeProcessingStatus(ctx, msg.SubmissionUUID, constants.StatusProcessing); err != nil {
		return NewUpdateError(msg.SubmissionUUID, err.Error())
	}

	// 下载原始文件
	data, err := p.files.GetResumeFile(ctx, msg.OriginalFilePathOSS)
	if err != nil {
		return NewDownloadError(msg.SubmissionUUID, err.Error())
	}

	// 提取纯文本
	text, _, err := p.pdfExtractor.ExtractTextFromBytes(ctx, data, msg.OriginalFilePathOSS, nil)
	if err != nil {
		return NewParseError(msg.SubmissionUUID, err.Error())
	}

	// 内容级去重：相同文本的简历换个文件名再传也会在这里被拦下
	textMD5 := storage.MD5Hex([]byte(text))
	duplicate, err := p.cache.CheckAndAddParsedTextMD5(ctx, textMD5)
	if err != nil {
		return NewDatabaseError(msg.SubmissionUUID, err.Error())
	}
	if duplicate {
		logger.Info().
			Str("submission_uuid", msg.SubmissionUUID).
			Str("raw_text_md5", textMD5).
			Msg("文本内容重复，跳过字段提取")
		updates := map[string]interface{}{
			"raw_text_md5":      textMD5,
			"processing_status": constants.StatusParsed,
		}
		if err := p.meta.UpdateResumeSubmissionFields(ctx, msg.SubmissionUUID, updates); err != nil {
			return NewUpdateError(msg.SubmissionUUID, err.Error())
		}
		return nil
	}

	// 字段提取流水线
	record, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return NewExtractError(msg.SubmissionUUID, err.Error())
	}

	// 解析文本归档到对象存储
	parsedTextPath, err := p.files.UploadParsedText(ctx, msg.SubmissionUUID, text)
	if err != nil {
		return NewStoreError(msg.SubmissionUUID, err.Error())
	}

	// 候选人落库
	candidate, err := p.buildCandidateModel(record)
	if err != nil {
		return NewDatabaseError(msg.SubmissionUUID, err.Error())
	}
	if err := p.meta.SaveCandidate(ctx, candidate); err != nil {
		return NewDatabaseError(msg.SubmissionUUID, err.Error())
	}

	updates := map[string]interface{}{
		"candidate_id":         candidate.CandidateID,
		"parsed_text_path_oss": parsedTextPath,
		"raw_text_md5":         textMD5,
		"processing_status":    constants.StatusParsed,
		"parser_version":       p.parserVersion,
	}
	if err := p.meta.UpdateResumeSubmissionFields(ctx, msg.SubmissionUUID, updates); err != nil {
		return NewUpdateError(msg.SubmissionUUID, err.Error())
	}

	// 记录缓存失败不影响主流程，查询时回源MySQL
	if err := p.cache.CacheCandidateRecord(ctx, msg.SubmissionUUID, record, candidateRecordCacheTTL); err != nil {
		logger.Warn().Err(err).
			Str("submission_uuid", msg.SubmissionUUID).
			Msg("缓存候选人记录失败")
	}

	logger.Info().
		Str("submission_uuid", msg.SubmissionUUID).
		Str("candidate_id", candidate.CandidateID).
		Str("name", record.FullName()).
		Int("skill_count", len(record.Skills)).
		Dur("duration", time.Since(startTime)).
		Msg("简历处理完成")
	return nil
}

// buildCandidateModel 把提取记录转换为数据库模型
func (p *ResumeProcessor) buildCandidateModel(record *types.CandidateRecord) (*models.Candidate, error) {
	candidateID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成候选人ID失败: %w", err)
	}

	educationJSON, err := models.StringSliceToJSON(record.Education)
	if err != nil {
		return nil, fmt.Errorf("序列化教育经历失败: %w", err)
	}
	skillsJSON, err := models.StringSliceToJSON(record.Skills)
	if err != nil {
		return nil, fmt.Errorf("序列化技能列表失败: %w", err)
	}

	return &models.Candidate{
		CandidateID:       candidateID.String(),
		FirstName:         record.FirstName,
		LastName:          record.LastName,
		Email:             record.Email,
		Phone:             record.Phone,
		DegreeMajor:       record.DegreeMajor,
		EducationJSON:     educationJSON,
		SkillsJSON:        skillsJSON,
		LevelOfExperience: string(record.Experience.LevelOfExperience),
		SuggestedPosition: record.Experience.SuggestedPosition,
		CompletenessScore: extractor.CompletenessScore(record),
	}, nil
}

// markFailed 处理失败时的收尾：标记失败状态并回滚上传级去重记录
// 让同一份文件有机会被重新上传处理
func (p *ResumeProcessor) markFailed(ctx context.Context, msg *storage.ResumeUploadMessage) {
	if err := p.meta.UpdateResumeProcessingStatus(ctx, msg.SubmissionUUID, constants.StatusProcessingFailed); err != nil {
		logger.Error().Err(err).
			Str("submission_uuid", msg.SubmissionUUID).
			Msg("标记处理失败状态失败")
	}
	if msg.RawFileMD5 != "" {
		if err := p.cache.RemoveRawFileMD5(ctx, msg.RawFileMD5); err != nil {
			logger.Error().Err(err).
				Str("raw_file_md5", msg.RawFileMD5).
				Msg("回滚原始文件MD5去重记录失败")
		}
	}
}
