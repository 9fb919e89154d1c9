package extractor

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"resume-agent-go/internal/nlp"
)

// bannedSkills 技能有效性过滤的禁用词表
// 朴素的关键词/实体匹配会把高频简历套话当成技能吐出来（月份、动作动词、
// 章节标题），统一在这里拦掉
var bannedSkills = map[string]struct{}{
	// 月份
	"january": {}, "february": {}, "march": {}, "april": {}, "may": {},
	"june": {}, "july": {}, "august": {}, "september": {}, "october": {},
	"november": {}, "december": {},
	"jan": {}, "feb": {}, "mar": {}, "apr": {}, "aug": {}, "sep": {},
	"oct": {}, "nov": {}, "dec": {},
	// 动作动词/简历噪声
	"led": {}, "supervised": {}, "managed": {}, "directed": {},
	"coordinated": {}, "oversaw": {}, "executed": {}, "developed": {},
	"designed": {}, "implemented": {}, "built": {}, "engineered": {},
	"created": {}, "launched": {}, "mentored": {}, "constructed": {},
	"enhanced": {}, "optimized": {}, "organized": {}, "analyzed": {},
	"tested": {}, "documented": {}, "supported": {}, "collaborated": {},
	"improved": {}, "communicated": {}, "achieved": {}, "presented": {},
	"increased": {}, "deployed": {}, "configured": {},
	// 章节标题或泛称
	"technical skills": {}, "other skills": {}, "education": {},
	"experience": {}, "project": {}, "projects": {}, "summary": {},
	"profile": {}, "school": {}, "college": {}, "university": {},
	"secondary": {}, "higher secondary": {}, "details": {},
}

// skillCharPattern NER产出的技能片段只保留字母、'+'、'#' 和空格
var skillCharPattern = regexp.MustCompile(`[^A-Za-z+# ]`)

const (
	minSkillLen = 2
	maxSkillLen = 40
)

// extractSkills 合并两个独立来源再过滤：
//  1. 参考技能列表的大小写不敏感子串匹配
//  2. 技能识别模型产出的SKILL实体（裁剪到受限字符集，长度2~40）
//
// 结果排序去重，保留提取时的原始大小写；匹配方负责各自的小写化
func (e *Extractor) extractSkills(ctx context.Context, doc *nlp.AnnotatedDocument) ([]string, error) {
	merged := make(map[string]struct{})

	// 来源一：关键词列表匹配
	lowerText := strings.ToLower(doc.Text)
	for _, kw := range e.refs.Skills {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			merged[kw] = struct{}{}
		}
	}

	// 来源二：技能识别模型
	// 引擎失败对整次提取是致命的，直接向上传播
	entities, err := e.recognizer.RecognizeSkills(ctx, doc.Text)
	if err != nil {
		return nil, fmt.Errorf("技能实体识别失败: %w", err)
	}
	for _, ent := range entities {
		skill := skillCharPattern.ReplaceAllString(strings.TrimSpace(ent.Text), "")
		if len(skill) >= minSkillLen && len(skill) <= maxSkillLen {
			merged[skill] = struct{}{}
		}
	}

	var skills []string
	for skill := range merged {
		if isValidSkill(skill) {
			skills = append(skills, skill)
		}
	}
	sort.Strings(skills)
	return skills, nil
}

// isValidSkill 单字符、含数字或命中禁用词表的候选技能无效
func isValidSkill(skill string) bool {
	if len(skill) <= 1 {
		return false
	}
	for _, r := range skill {
		if unicode.IsDigit(r) {
			return false
		}
	}
	_, banned := bannedSkills[strings.ToLower(skill)]
	return !banned
}
