package extractor

import (
	"path/filepath"
	"testing"

	"resume-agent-go/internal/nlp"
	"resume-agent-go/internal/refdata"
	"resume-agent-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyExperience(t *testing.T) {
	tests := []struct {
		name  string
		verbs []string
		want  types.ExperienceLevel
	}{
		{"高级动词", []string{"manage", "report"}, types.LevelSenior},
		{"中高级动词", []string{"develop", "write"}, types.LevelMidSenior},
		{"中初级动词", []string{"assist", "learn"}, types.LevelMidJunior},
		{"无命中为入门级", []string{"write", "read"}, types.LevelEntry},
		{"空集合为入门级", nil, types.LevelEntry},
		// 高级优先级覆盖初级：lead 和 assist 同时出现判定为高级
		{"高低同现以高级为准", []string{"assist", "lead"}, types.LevelSenior},
		{"中高覆盖中初", []string{"participate", "design"}, types.LevelMidSenior},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyExperience(tt.verbs))
		})
	}
}

// TestSuggestPositionFileOrder 规则按参考文件行顺序评估，首个命中即返回
func TestSuggestPositionFileOrder(t *testing.T) {
	refs := &refdata.Store{
		Positions: []refdata.PositionRule{
			{Position: "Backend Developer", Keywords: []string{"develop", "deploy"}},
			{Position: "Data Analyst", Keywords: []string{"analyze", "develop"}},
		},
	}
	e := newTestExtractor(t, &mockRecognizer{}, refs)

	// "develop" 同时命中两条规则，取文件顺序在前的一条
	assert.Equal(t, "Backend Developer", e.suggestPosition([]string{"develop"}))
	assert.Equal(t, "Data Analyst", e.suggestPosition([]string{"analyze"}))
	assert.Equal(t, types.PositionNotIdentified, e.suggestPosition([]string{"sing"}))
	assert.Equal(t, types.PositionNotIdentified, e.suggestPosition(nil))
}

// TestSuggestPositionWithBundledRules 随仓库发布的岗位规则文件必须能被动词词形命中
// 触发词与VerbLemmas求交集，因此文件里必须写动词原形而不是过去式
func TestSuggestPositionWithBundledRules(t *testing.T) {
	rules, err := refdata.LoadPositionRules(filepath.Join("..", "..", "data", "positions.csv"))
	require.NoError(t, err)
	require.NotEmpty(t, rules)
	for _, rule := range rules {
		assert.NotEmpty(t, rule.Keywords, "岗位 %s 缺少触发动词", rule.Position)
	}

	e := newTestExtractor(t, &mockRecognizer{}, &refdata.Store{Positions: rules})

	// "Developed Python tools" 经词形还原后是 "develop"
	assert.Equal(t, "Software Engineer", e.suggestPosition([]string{"develop", "write"}))
	assert.Equal(t, "Data Scientist", e.suggestPosition([]string{"analyze", "train"}))
	assert.Equal(t, "Project Manager", e.suggestPosition([]string{"manage"}))
	assert.Equal(t, types.PositionNotIdentified, e.suggestPosition([]string{"sing"}))
}

// TestExtractExperienceUsesVerbLemmas 只统计VERB词性的词形还原结果
func TestExtractExperienceUsesVerbLemmas(t *testing.T) {
	e := newTestExtractor(t, &mockRecognizer{}, &refdata.Store{})
	doc := &nlp.AnnotatedDocument{
		Tokens: []nlp.Token{
			{Text: "Managed", Lemma: "manage", POS: nlp.POSVerb},
			// 名词词性的 "design" 不参与分级
			{Text: "design", Lemma: "design", POS: "NOUN"},
		},
	}
	exp := e.extractExperience(doc)
	assert.Equal(t, types.LevelSenior, exp.LevelOfExperience)
	assert.Equal(t, types.PositionNotIdentified, exp.SuggestedPosition)
}
