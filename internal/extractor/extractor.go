// Package extractor 实现简历字段的启发式提取流水线
// 每个字段有独立的提取函数和文档化的回退顺序，聚合器把它们组合成一条候选人记录
package extractor

import (
	"context"
	"fmt"
	"strings"

	"resume-agent-go/internal/nlp"
	"resume-agent-go/internal/refdata"
	"resume-agent-go/internal/types"
)

// Extractor 字段提取器聚合类
// 依赖在构造时注入：实体识别能力 + 只读参考数据，提取过程本身无隐藏I/O
type Extractor struct {
	recognizer nlp.EntityRecognizer
	refs       *refdata.Store
}

// NewExtractor 创建提取器
func NewExtractor(recognizer nlp.EntityRecognizer, refs *refdata.Store) (*Extractor, error) {
	if recognizer == nil {
		return nil, fmt.Errorf("实体识别器不能为空")
	}
	if refs == nil {
		refs = &refdata.Store{SuggestedSkills: make(map[string][]string)}
	}
	return &Extractor{recognizer: recognizer, refs: refs}, nil
}

// Extract 完整流水线入口：标注原始文本并提取全部字段
// 标注引擎失败对整次提取是致命的，不返回部分记录
func (e *Extractor) Extract(ctx context.Context, text string) (*types.CandidateRecord, error) {
	doc, err := e.recognizer.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("文本标注失败: %w", err)
	}
	return e.ExtractFromDocument(ctx, doc)
}

// ExtractFromDocument 基于已标注文档提取全部字段并聚合成记录
// 除技能NER外所有提取器都是纯函数；技能提取需要再调用一次技能识别模型，
// 该调用失败同样致命
func (e *Extractor) ExtractFromDocument(ctx context.Context, doc *nlp.AnnotatedDocument) (*types.CandidateRecord, error) {
	skills, err := e.extractSkills(ctx, doc)
	if err != nil {
		return nil, err
	}

	firstName, lastName := e.extractName(doc)

	record := &types.CandidateRecord{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       ExtractEmail(doc.Text),
		Phone:       ExtractPhone(doc.Text),
		DegreeMajor: e.extractMajor(doc.Text),
		Education:   ExtractEducation(doc),
		Skills:      skills,
		Experience:  e.extractExperience(doc),
	}

	// 记录的每个字段都必须有确定的默认值，切片不允许为nil
	if record.Education == nil {
		record.Education = []string{}
	}
	if record.Skills == nil {
		record.Skills = []string{}
	}

	return record, nil
}

// SuggestSkills 返回指定岗位的推荐技能列表，岗位名大小写不敏感
// 未知岗位返回空列表
func (e *Extractor) SuggestSkills(jobTitle string) []string {
	skills := e.refs.SuggestedSkills[normalizeJobTitle(jobTitle)]
	if skills == nil {
		return []string{}
	}
	return skills
}

func normalizeJobTitle(jobTitle string) string {
	return strings.ToLower(strings.TrimSpace(jobTitle))
}
