// Package models 定义GORM数据模型
package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Candidate 候选人主表
// 存放提取流水线产出的结构化字段，技能和教育经历以JSON数组落库
type Candidate struct {
	CandidateID       string         `gorm:"type:char(36);primaryKey"`
	FirstName         string         `gorm:"type:varchar(100)"`
	LastName          string         `gorm:"type:varchar(100)"`
	Email             string         `gorm:"type:varchar(255);index:idx_candidates_email"`
	Phone             string         `gorm:"type:varchar(50)"`
	DegreeMajor       string         `gorm:"type:varchar(255)"`
	EducationJSON     datatypes.JSON `gorm:"type:json"`
	SkillsJSON        datatypes.JSON `gorm:"type:json"`
	LevelOfExperience string         `gorm:"type:varchar(50)"`
	SuggestedPosition string         `gorm:"type:varchar(255)"`
	CompletenessScore int            `gorm:"type:int"`
	CreatedAt         time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt         time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// ResumeSubmission 简历提交/快照表
// 每次上传是一条独立记录，解析产物以对象存储路径引用
type ResumeSubmission struct {
	SubmissionUUID      string    `gorm:"type:char(36);primaryKey"`
	CandidateID         *string   `gorm:"type:char(36);index:idx_rs_candidate_id"`
	SubmissionTimestamp time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_rs_submission_timestamp"`
	SourceChannel       string    `gorm:"type:varchar(100)"`
	OriginalFilename    string    `gorm:"type:varchar(255)"`
	OriginalFilePathOSS string    `gorm:"type:varchar(1024)"`
	ParsedTextPathOSS   string    `gorm:"type:varchar(1024)"`
	RawFileMD5          string    `gorm:"type:char(32);index:idx_rs_raw_file_md5"`
	RawTextMD5          string    `gorm:"type:char(32);index:idx_rs_raw_text_md5"`
	ProcessingStatus    string    `gorm:"type:varchar(50);default:'PENDING_PARSING';index:idx_rs_processing_status"`
	ParserVersion       string    `gorm:"type:varchar(50)"`
	CreatedAt           time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt           time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Candidate *Candidate `gorm:"foreignKey:CandidateID;references:CandidateID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (ResumeSubmission) TableName() string {
	return "resume_submissions"
}

// RequirementProfile 招聘方保存的岗位技能要求
// 同名岗位重复保存时覆盖旧要求
type RequirementProfile struct {
	ProfileID          string         `gorm:"type:char(36);primaryKey"`
	JobTitle           string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_rp_job_title_unique"`
	RequiredSkillsJSON datatypes.JSON `gorm:"type:json"`
	CreatedAt          time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt          time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (RequirementProfile) TableName() string {
	return "requirement_profiles"
}

// StringSliceToJSON 把字符串切片转换为datatypes.JSON，nil视为空数组
func StringSliceToJSON(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

// JSONToStringSlice 反向转换，空JSON返回空切片
func JSONToStringSlice(data datatypes.JSON) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
