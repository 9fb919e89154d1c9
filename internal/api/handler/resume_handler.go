// Package handler 实现API层的业务协调逻辑
package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid/v5"

	"resume-agent-go/internal/config"
	"resume-agent-go/internal/constants"
	"resume-agent-go/internal/extractor"
	"resume-agent-go/internal/logger"
	"resume-agent-go/internal/storage"
	"resume-agent-go/internal/storage/models"
	"resume-agent-go/internal/types"
)

// ErrSubmissionNotFound 提交记录不存在
var ErrSubmissionNotFound = errors.New("简历提交记录不存在")

// ErrRecordNotReady 提交存在但候选人记录尚未生成（还在处理或处理失败）
var ErrRecordNotReady = errors.New("候选人记录尚未就绪")

// ResumeHandler 简历API处理器，协调上传、查询、匹配等操作
type ResumeHandler struct {
	cfg       *config.Config
	storage   *storage.Storage
	extractor *extractor.Extractor
}

// NewResumeHandler 创建简历API处理器
func NewResumeHandler(cfg *config.Config, storage *storage.Storage, extractor *extractor.Extractor) *ResumeHandler {
	return &ResumeHandler{
		cfg:       cfg,
		storage:   storage,
		extractor: extractor,
	}
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// HandleResumeUpload 处理简历上传
// 流程：文件MD5去重 → 上传MinIO → 写提交记录 → 发布处理事件
func (h *ResumeHandler) HandleResumeUpload(ctx context.Context, reader io.Reader, filename string, sourceChannel string) (*ResumeUploadResponse, error) {
	// 读取文件内容并计算MD5，reader只能读一次
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	if len(fileBytes) == 0 {
		return nil, fmt.Errorf("上传文件为空")
	}
	fileMD5Hex := storage.MD5Hex(fileBytes)

	// 原子检查并登记文件MD5，重复文件直接拦下
	exists, err := h.storage.Redis.CheckAndAddRawFileMD5(ctx, fileMD5Hex)
	if err != nil {
		return nil, fmt.Errorf("检查文件MD5重复性失败: %w", err)
	}
	if exists {
		logger.Info().
			Str("md5", fileMD5Hex).
			Str("filename", filename).
			Msg("检测到重复的文件MD5，跳过处理")
		return &ResumeUploadResponse{Status: "DUPLICATE_FILE_SKIPPED"}, nil
	}

	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	submissionUUID := uuidV7.String()

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".pdf"
	}

	originalObjectKey, err := h.storage.MinIO.UploadResumeFile(ctx, submissionUUID, ext, bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		// 上传失败时回滚去重记录，允许重试
		h.rollbackRawFileMD5(ctx, fileMD5Hex)
		return nil, fmt.Errorf("上传简历到MinIO失败: %w", err)
	}

	submission := &models.ResumeSubmission{
		SubmissionUUID:      submissionUUID,
		SubmissionTimestamp: time.Now(),
		SourceChannel:       sourceChannel,
		OriginalFilename:    filename,
		OriginalFilePathOSS: originalObjectKey,
		RawFileMD5:          fileMD5Hex,
		ProcessingStatus:    constants.StatusPendingParsing,
		ParserVersion:       h.cfg.ActiveParserVersion,
	}
	if err := h.storage.MySQL.CreateResumeSubmission(ctx, submission); err != nil {
		h.rollbackRawFileMD5(ctx, fileMD5Hex)
		return nil, fmt.Errorf("写入简历提交记录失败: %w", err)
	}

	message := storage.ResumeUploadMessage{
		SubmissionUUID:      submissionUUID,
		SubmissionTimestamp: submission.SubmissionTimestamp,
		SourceChannel:       sourceChannel,
		OriginalFilename:    filename,
		OriginalFilePathOSS: originalObjectKey,
		RawFileMD5:          fileMD5Hex,
	}
	err = h.storage.RabbitMQ.PublishJSON(
		ctx,
		h.cfg.RabbitMQ.ResumeEventsExchange,
		h.cfg.RabbitMQ.UploadedRoutingKey,
		message,
		true,
	)
	if err != nil {
		return nil, fmt.Errorf("发布上传事件失败: %w", err)
	}

	logger.Info().
		Str("submission_uuid", submissionUUID).
		Str("filename", filename).
		Msg("简历已提交处理")
	return &ResumeUploadResponse{
		SubmissionUUID: submissionUUID,
		Status:         "SUBMITTED_FOR_PROCESSING",
	}, nil
}

func (h *ResumeHandler) rollbackRawFileMD5(ctx context.Context, md5Hex string) {
	if err := h.storage.Redis.RemoveRawFileMD5(ctx, md5Hex); err != nil {
		logger.Warn().Err(err).Str("md5", md5Hex).Msg("回滚文件MD5去重记录失败")
	}
}

// ResumeRecordResponse 候选人记录查询响应
type ResumeRecordResponse struct {
	SubmissionUUID    string                 `json:"submission_uuid"`
	ProcessingStatus  string                 `json:"processing_status"`
	Record            *types.CandidateRecord `json:"record,omitempty"`
	CompletenessScore int                    `json:"completeness_score"`
}

// GetResumeRecord 查询一次提交对应的候选人记录
// 优先走Redis缓存，未命中回源MySQL并回填
func (h *ResumeHandler) GetResumeRecord(ctx context.Context, submissionUUID string) (*ResumeRecordResponse, error) {
	submission, err := h.storage.MySQL.GetResumeSubmissionByUUID(ctx, submissionUUID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询提交记录失败: %w", err)
	}

	resp := &ResumeRecordResponse{
		SubmissionUUID:   submissionUUID,
		ProcessingStatus: submission.ProcessingStatus,
	}
	if submission.ProcessingStatus != constants.StatusParsed || submission.CandidateID == nil {
		return resp, nil
	}

	// 缓存命中直接返回
	if record, cacheErr := h.storage.Redis.GetCachedCandidateRecord(ctx, submissionUUID); cacheErr == nil {
		resp.Record = record
		resp.CompletenessScore = extractor.CompletenessScore(record)
		return resp, nil
	} else if !errors.Is(cacheErr, storage.ErrNotFound) {
		logger.Warn().Err(cacheErr).Str("submission_uuid", submissionUUID).Msg("读取候选人记录缓存失败")
	}

	candidate, err := h.storage.MySQL.GetCandidateByID(ctx, *submission.CandidateID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return nil, ErrRecordNotReady
	}
	if err != nil {
		return nil, fmt.Errorf("查询候选人记录失败: %w", err)
	}

	record, err := candidateToRecord(candidate)
	if err != nil {
		return nil, err
	}
	resp.Record = record
	resp.CompletenessScore = candidate.CompletenessScore

	if err := h.storage.Redis.CacheCandidateRecord(ctx, submissionUUID, record, 24*time.Hour); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("回填候选人记录缓存失败")
	}
	return resp, nil
}

func candidateToRecord(candidate *models.Candidate) (*types.CandidateRecord, error) {
	education, err := models.JSONToStringSlice(candidate.EducationJSON)
	if err != nil {
		return nil, fmt.Errorf("反序列化教育经历失败: %w", err)
	}
	skills, err := models.JSONToStringSlice(candidate.SkillsJSON)
	if err != nil {
		return nil, fmt.Errorf("反序列化技能列表失败: %w", err)
	}
	return &types.CandidateRecord{
		FirstName:   candidate.FirstName,
		LastName:    candidate.LastName,
		Email:       candidate.Email,
		Phone:       candidate.Phone,
		DegreeMajor: candidate.DegreeMajor,
		Education:   education,
		Skills:      skills,
		Experience: types.Experience{
			LevelOfExperience: types.ExperienceLevel(candidate.LevelOfExperience),
			SuggestedPosition: candidate.SuggestedPosition,
		},
	}, nil
}

// ResumeListItem 提交列表条目
type ResumeListItem struct {
	SubmissionUUID   string    `json:"submission_uuid"`
	OriginalFilename string    `json:"original_filename"`
	SourceChannel    string    `json:"source_channel"`
	ProcessingStatus string    `json:"processing_status"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// ResumeListResponse 提交列表响应
type ResumeListResponse struct {
	Total int64            `json:"total"`
	Items []ResumeListItem `json:"items"`
}

// ListResumes 按提交时间倒序分页列出提交记录
func (h *ResumeHandler) ListResumes(ctx context.Context, limit, offset int) (*ResumeListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	submissions, total, err := h.storage.MySQL.ListResumeSubmissions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("查询提交列表失败: %w", err)
	}

	items := make([]ResumeListItem, 0, len(submissions))
	for _, s := range submissions {
		items = append(items, ResumeListItem{
			SubmissionUUID:   s.SubmissionUUID,
			OriginalFilename: s.OriginalFilename,
			SourceChannel:    s.SourceChannel,
			ProcessingStatus: s.ProcessingStatus,
			SubmittedAt:      s.SubmissionTimestamp,
		})
	}
	return &ResumeListResponse{Total: total, Items: items}, nil
}

// DeleteResume 删除一次提交：对象存储、数据库行、缓存和去重记录一并清理
func (h *ResumeHandler) DeleteResume(ctx context.Context, submissionUUID string) error {
	submission, err := h.storage.MySQL.GetResumeSubmissionByUUID(ctx, submissionUUID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return ErrSubmissionNotFound
	}
	if err != nil {
		return fmt.Errorf("查询提交记录失败: %w", err)
	}

	// 对象清理失败不阻塞删除，生命周期规则最终会回收
	if submission.OriginalFilePathOSS != "" {
		if err := h.storage.MinIO.DeleteFile(ctx, submission.OriginalFilePathOSS); err != nil {
			logger.Warn().Err(err).Str("object", submission.OriginalFilePathOSS).Msg("删除原始文件失败")
		}
	}
	if submission.ParsedTextPathOSS != "" {
		if err := h.storage.MinIO.DeleteParsedText(ctx, submission.ParsedTextPathOSS); err != nil {
			logger.Warn().Err(err).Str("object", submission.ParsedTextPathOSS).Msg("删除解析文本失败")
		}
	}

	deleted, err := h.storage.MySQL.DeleteResumeSubmission(ctx, submissionUUID)
	if err != nil {
		return fmt.Errorf("删除提交记录失败: %w", err)
	}
	if !deleted {
		return ErrSubmissionNotFound
	}

	if submission.RawFileMD5 != "" {
		h.rollbackRawFileMD5(ctx, submission.RawFileMD5)
	}
	if err := h.storage.Redis.DeleteCachedCandidateRecord(ctx, submissionUUID); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("删除候选人记录缓存失败")
	}

	logger.Info().Str("submission_uuid", submissionUUID).Msg("简历提交已删除")
	return nil
}

// 预签名下载链接的有效期
const presignedURLExpiry = 15 * time.Minute

// ResumeFileURLResponse 原始简历下载链接响应
type ResumeFileURLResponse struct {
	SubmissionUUID   string `json:"submission_uuid"`
	URL              string `json:"url"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// GetResumeFileURL 为原始简历生成限时的预签名下载链接
func (h *ResumeHandler) GetResumeFileURL(ctx context.Context, submissionUUID string) (*ResumeFileURLResponse, error) {
	submission, err := h.storage.MySQL.GetResumeSubmissionByUUID(ctx, submissionUUID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询提交记录失败: %w", err)
	}
	if submission.OriginalFilePathOSS == "" {
		return nil, ErrRecordNotReady
	}

	url, err := h.storage.MinIO.GetPresignedURL(ctx, submission.OriginalFilePathOSS, presignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("生成原始简历下载链接失败: %w", err)
	}
	return &ResumeFileURLResponse{
		SubmissionUUID:   submissionUUID,
		URL:              url,
		ExpiresInSeconds: int(presignedURLExpiry.Seconds()),
	}, nil
}

// ParsedTextResponse 解析文本查询响应
type ParsedTextResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Text           string `json:"text"`
}

// GetParsedResumeText 查询一次提交的解析纯文本
// 文本在处理流水线落库后才可用，之前返回未就绪
func (h *ResumeHandler) GetParsedResumeText(ctx context.Context, submissionUUID string) (*ParsedTextResponse, error) {
	submission, err := h.storage.MySQL.GetResumeSubmissionByUUID(ctx, submissionUUID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询提交记录失败: %w", err)
	}
	if submission.ParsedTextPathOSS == "" {
		return nil, ErrRecordNotReady
	}

	text, err := h.storage.MinIO.GetParsedText(ctx, submission.ParsedTextPathOSS)
	if err != nil {
		return nil, fmt.Errorf("下载解析文本失败: %w", err)
	}
	return &ParsedTextResponse{SubmissionUUID: submissionUUID, Text: text}, nil
}

// HealthStatus 健康检查结果
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Healthy 整体状态为ok时返回true
func (s *HealthStatus) Healthy() bool { return s.Status == "ok" }

// Health 探测核心依赖的连通性
// 组件未初始化或探测失败时整体降级，但不中断响应
func (h *ResumeHandler) Health(ctx context.Context) *HealthStatus {
	status := &HealthStatus{Status: "ok", Components: make(map[string]string)}

	if h.storage == nil || h.storage.Redis == nil {
		status.Components["redis"] = "unconfigured"
		status.Status = "degraded"
	} else if err := h.storage.Redis.Ping(ctx); err != nil {
		status.Components["redis"] = "down"
		status.Status = "degraded"
	} else {
		status.Components["redis"] = "ok"
	}

	if h.storage == nil || h.storage.MySQL == nil {
		status.Components["mysql"] = "unconfigured"
		status.Status = "degraded"
	} else if sqlDB, err := h.storage.MySQL.DB().DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status.Components["mysql"] = "down"
		status.Status = "degraded"
	} else {
		status.Components["mysql"] = "ok"
	}

	return status
}

// MatchRequest 技能匹配请求
// 候选人技能二选一：直接给skills，或给submission_uuid从已解析记录取；
// 要求技能二选一：直接给required_skills，或给job_title从已保存的岗位要求取
type MatchRequest struct {
	SubmissionUUID string   `json:"submission_uuid"`
	Skills         []string `json:"skills"`
	JobTitle       string   `json:"job_title"`
	RequiredSkills []string `json:"required_skills"`
}

// MatchResponse 技能匹配响应
type MatchResponse struct {
	JobTitle string            `json:"job_title,omitempty"`
	Result   types.MatchResult `json:"result"`
}

// MatchSkills 计算候选人技能与岗位要求的匹配结果
func (h *ResumeHandler) MatchSkills(ctx context.Context, req *MatchRequest) (*MatchResponse, error) {
	candidateSkills := req.Skills
	if len(candidateSkills) == 0 && req.SubmissionUUID != "" {
		recordResp, err := h.GetResumeRecord(ctx, req.SubmissionUUID)
		if err != nil {
			return nil, err
		}
		if recordResp.Record == nil {
			return nil, ErrRecordNotReady
		}
		candidateSkills = recordResp.Record.Skills
	}

	requiredSkills := req.RequiredSkills
	if len(requiredSkills) == 0 && req.JobTitle != "" {
		profile, err := h.storage.MySQL.GetRequirementProfileByJobTitle(ctx, req.JobTitle)
		if errors.Is(err, storage.ErrRecordNotFound) {
			// 未保存过要求时按空要求处理，分数为0
			requiredSkills = nil
		} else if err != nil {
			return nil, fmt.Errorf("查询岗位要求失败: %w", err)
		} else {
			requiredSkills, err = models.JSONToStringSlice(profile.RequiredSkillsJSON)
			if err != nil {
				return nil, fmt.Errorf("反序列化岗位要求失败: %w", err)
			}
		}
	}

	return &MatchResponse{
		JobTitle: req.JobTitle,
		Result:   extractor.MatchSkills(candidateSkills, requiredSkills),
	}, nil
}

// RequirementRequest 保存岗位技能要求的请求
type RequirementRequest struct {
	JobTitle       string   `json:"job_title"`
	RequiredSkills []string `json:"required_skills"`
}

// SaveRequirementProfile 保存招聘方的岗位技能要求，同名岗位覆盖
func (h *ResumeHandler) SaveRequirementProfile(ctx context.Context, req *RequirementRequest) error {
	if req.JobTitle == "" {
		return fmt.Errorf("岗位名不能为空")
	}

	skillsJSON, err := models.StringSliceToJSON(req.RequiredSkills)
	if err != nil {
		return fmt.Errorf("序列化岗位要求失败: %w", err)
	}

	profileID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("生成岗位要求ID失败: %w", err)
	}

	profile := &models.RequirementProfile{
		ProfileID:          profileID.String(),
		JobTitle:           req.JobTitle,
		RequiredSkillsJSON: skillsJSON,
	}
	if err := h.storage.MySQL.SaveRequirementProfile(ctx, profile); err != nil {
		return fmt.Errorf("保存岗位要求失败: %w", err)
	}

	logger.Info().
		Str("job_title", req.JobTitle).
		Int("skill_count", len(req.RequiredSkills)).
		Msg("岗位技能要求已保存")
	return nil
}

// SuggestSkillsResponse 岗位推荐技能响应
type SuggestSkillsResponse struct {
	JobTitle string   `json:"job_title"`
	Skills   []string `json:"skills"`
}

// SuggestSkills 查询指定岗位的推荐技能
func (h *ResumeHandler) SuggestSkills(jobTitle string) *SuggestSkillsResponse {
	return &SuggestSkillsResponse{
		JobTitle: jobTitle,
		Skills:   h.extractor.SuggestSkills(jobTitle),
	}
}
