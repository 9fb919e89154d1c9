package extractor

import (
	"testing"

	"resume-agent-go/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestCompletenessScore(t *testing.T) {
	full := &types.CandidateRecord{
		FirstName:   "John",
		LastName:    "Smith",
		Email:       "john@example.com",
		DegreeMajor: "Computer Science",
		Skills:      []string{"Python"},
	}
	assert.Equal(t, 100, CompletenessScore(full))

	// 只有名没有姓时姓名项不得分
	assert.Equal(t, 0, CompletenessScore(&types.CandidateRecord{FirstName: "John"}))
	assert.Equal(t, 25, CompletenessScore(&types.CandidateRecord{Email: "a@b.co"}))
	assert.Equal(t, 50, CompletenessScore(&types.CandidateRecord{
		Email:  "a@b.co",
		Skills: []string{"Go"},
	}))
	assert.Equal(t, 0, CompletenessScore(&types.CandidateRecord{}))
}

func TestMatchSkills(t *testing.T) {
	result := MatchSkills([]string{"python", "java"}, []string{"python", "sql"})
	assert.Equal(t, []string{"python"}, result.Matched)
	assert.Equal(t, []string{"sql"}, result.Missing)
	assert.InDelta(t, 50.0, result.ScorePercent, 0.0001)
}

// TestMatchSkillsCaseInsensitive 两侧统一小写比较，结果为小写
func TestMatchSkillsCaseInsensitive(t *testing.T) {
	result := MatchSkills([]string{"Python", "  SQL "}, []string{"PYTHON", "sql"})
	assert.Equal(t, []string{"python", "sql"}, result.Matched)
	assert.Empty(t, result.Missing)
	assert.InDelta(t, 100.0, result.ScorePercent, 0.0001)
}

// TestMatchSkillsEmptyRequired 要求列表为空时分数定义为0，不报错
func TestMatchSkillsEmptyRequired(t *testing.T) {
	result := MatchSkills([]string{"python"}, nil)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 0.0, result.ScorePercent)
}

// TestMatchSkillsNoCandidate 候选技能为空时全部缺失
func TestMatchSkillsNoCandidate(t *testing.T) {
	result := MatchSkills(nil, []string{"go", "sql", "aws"})
	assert.Empty(t, result.Matched)
	assert.Equal(t, []string{"aws", "go", "sql"}, result.Missing)
	assert.Equal(t, 0.0, result.ScorePercent)
}

// TestMatchSkillsRounding 1/3 命中时分数保留两位小数
func TestMatchSkillsRounding(t *testing.T) {
	result := MatchSkills([]string{"go"}, []string{"go", "sql", "aws"})
	assert.InDelta(t, 33.33, result.ScorePercent, 0.0001)
}

// TestMatchSkillsDedup 要求列表中的重复项只计一次
func TestMatchSkillsDedup(t *testing.T) {
	result := MatchSkills([]string{"go"}, []string{"go", "Go", "sql"})
	assert.Equal(t, []string{"go"}, result.Matched)
	assert.Equal(t, []string{"sql"}, result.Missing)
	assert.InDelta(t, 50.0, result.ScorePercent, 0.0001)
}
