package extractor

import (
	"testing"

	"resume-agent-go/internal/nlp"
	"resume-agent-go/internal/refdata"

	"github.com/stretchr/testify/assert"
)

func TestExtractEducation(t *testing.T) {
	doc := &nlp.AnnotatedDocument{
		Entities: []nlp.Entity{
			{Label: nlp.LabelOrg, Text: "Stanford University"},
			{Label: nlp.LabelOrg, Text: "Google"},
			{Label: nlp.LabelOrg, Text: "Imperial College London"},
			{Label: nlp.LabelOrg, Text: "Stanford University"},
			{Label: nlp.LabelPerson, Text: "University of Nowhere"},
		},
	}
	// 公司被过滤、重复项去重、非ORG实体不参与，保留出现顺序
	assert.Equal(t,
		[]string{"Stanford University", "Imperial College London"},
		ExtractEducation(doc))
}

func TestExtractEducationEmpty(t *testing.T) {
	assert.Empty(t, ExtractEducation(&nlp.AnnotatedDocument{}))
}

// TestExtractMajorLongestFirst 专业列表按长度降序匹配，长关键词优先命中
func TestExtractMajorLongestFirst(t *testing.T) {
	// Store.Load 加载时已排序，这里直接构造排序后的列表
	refs := &refdata.Store{
		Majors: []string{"Computer Engineering", "Computer Science", "Mathematics"},
	}
	e := newTestExtractor(t, &mockRecognizer{}, refs)

	assert.Equal(t, "Computer Engineering", e.extractMajor("BSc in computer engineering, 2020"))
	assert.Equal(t, "Computer Science", e.extractMajor("major: COMPUTER SCIENCE"))
	assert.Equal(t, "", e.extractMajor("studied fine arts"))
	assert.Equal(t, "", e.extractMajor(""))
}
