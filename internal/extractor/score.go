package extractor

import (
	"math"
	"sort"
	"strings"

	"resume-agent-go/internal/types"
)

// CompletenessScore 简历完整度评分
// 四项独立检查各占25分：姓名完整（名和姓都有）、有邮箱、有专业、至少一项技能；
// 单项内部没有部分得分，结果必然是 {0,25,50,75,100} 之一
func CompletenessScore(record *types.CandidateRecord) int {
	score := 0
	if record.FirstName != "" && record.LastName != "" {
		score += 25
	}
	if record.Email != "" {
		score += 25
	}
	if record.DegreeMajor != "" {
		score += 25
	}
	if len(record.Skills) > 0 {
		score += 25
	}
	return score
}

// MatchSkills 计算候选人技能集合与要求技能列表的匹配结果
// 两侧统一小写比较；matched为交集，missing为要求减候选；
// 分数 = matched/required × 100，保留两位小数，要求列表为空时定义为0
func MatchSkills(candidateSkills, requiredSkills []string) types.MatchResult {
	candidateSet := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			candidateSet[s] = struct{}{}
		}
	}

	requiredSet := make(map[string]struct{}, len(requiredSkills))
	for _, s := range requiredSkills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			requiredSet[s] = struct{}{}
		}
	}

	matched := []string{}
	missing := []string{}
	for req := range requiredSet {
		if _, ok := candidateSet[req]; ok {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	result := types.MatchResult{Matched: matched, Missing: missing}
	if len(requiredSet) == 0 {
		// 要求列表为空时分数定义为0，避免除零
		return result
	}
	score := float64(len(matched)) / float64(len(requiredSet)) * 100
	result.ScorePercent = math.Round(score*100) / 100
	return result
}
