package extractor

import (
	"context"
	"testing"

	"resume-agent-go/internal/nlp"
	"resume-agent-go/internal/refdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractNameFromDoc(t *testing.T, doc *nlp.AnnotatedDocument) (string, string) {
	t.Helper()
	e := newTestExtractor(t, &mockRecognizer{}, &refdata.Store{})
	return e.extractName(doc)
}

// TestExtractNameFromPersonEntity 头部窗口内的PERSON实体直接产出姓名
func TestExtractNameFromPersonEntity(t *testing.T) {
	doc := &nlp.AnnotatedDocument{
		Text: "Jane Marie Doe\njane@example.com",
		Entities: []nlp.Entity{
			{Label: nlp.LabelPerson, Start: 0, End: 14, Text: "Jane Marie Doe"},
		},
	}
	first, last := extractNameFromDoc(t, doc)
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Marie Doe", last)
}

// TestExtractNameHeaderWindow 邮箱之后出现的PERSON实体不参与姓名提取
func TestExtractNameHeaderWindow(t *testing.T) {
	text := "x@example.com\nworked with Alice Brown at the research lab"
	doc := &nlp.AnnotatedDocument{
		Text: text,
		Entities: []nlp.Entity{
			{Label: nlp.LabelPerson, Start: 26, End: 37, Text: "Alice Brown"},
		},
	}
	first, last := extractNameFromDoc(t, doc)
	// 唯一的PERSON在窗口外，回退到邮箱local-part
	assert.Equal(t, "X", first)
	assert.Equal(t, "", last)
}

// TestExtractNameEarliestWins 多个候选按出现位置取最早，同位置取词元更多者
func TestExtractNameEarliestWins(t *testing.T) {
	doc := &nlp.AnnotatedDocument{
		Text: "Bob Lee\nCarol King\nbob@example.com",
		Entities: []nlp.Entity{
			{Label: nlp.LabelPerson, Start: 8, End: 18, Text: "Carol King"},
			{Label: nlp.LabelPerson, Start: 0, End: 7, Text: "Bob Lee"},
		},
	}
	first, last := extractNameFromDoc(t, doc)
	assert.Equal(t, "Bob", first)
	assert.Equal(t, "Lee", last)
}

// TestExtractNameBlacklist 命中黑名单的实体被拒绝，回退到行扫描
func TestExtractNameBlacklist(t *testing.T) {
	doc := &nlp.AnnotatedDocument{
		Text: "Software Engineer\nTom Jones\ntom@example.com",
		Entities: []nlp.Entity{
			{Label: nlp.LabelPerson, Start: 0, End: 17, Text: "Software Engineer"},
		},
	}
	first, last := extractNameFromDoc(t, doc)
	assert.Equal(t, "Tom", first)
	assert.Equal(t, "Jones", last)
}

// TestExtractNameLineFallbackLimit 行扫描只看前6个非空行
func TestExtractNameLineFallbackLimit(t *testing.T) {
	text := "resume\n\nresume\nresume\nresume\nresume\nresume\nDan Hill"
	doc := &nlp.AnnotatedDocument{Text: text}
	first, last := extractNameFromDoc(t, doc)
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}

// TestExtractNameEmailFallback 没有实体也没有像名字的行时，从邮箱local-part推导
func TestExtractNameEmailFallback(t *testing.T) {
	doc := &nlp.AnnotatedDocument{Text: "contact: jane_m.doe@example.com"}
	first, last := extractNameFromDoc(t, doc)
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "M Doe", last)
}

// TestExtractNameAllFallbacksFail 全部回退失败返回两个空串，不报错
func TestExtractNameAllFallbacksFail(t *testing.T) {
	doc := &nlp.AnnotatedDocument{Text: "no usable header here at all"}
	first, last := extractNameFromDoc(t, doc)
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}

func TestLooksLikeName(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   bool
	}{
		{"标准两词人名", []string{"John", "Smith"}, true},
		{"四词人名", []string{"Anna", "Maria", "Da", "Silva"}, true},
		{"单词元太短", []string{"John"}, false},
		{"五词元太长", []string{"A", "B", "C", "D", "E"}, false},
		{"含黑名单词", []string{"John", "Engineer"}, false},
		{"全小写大写率不足", []string{"john", "smith"}, false},
		{"全大写词元有效", []string{"JOHN", "SMITH"}, true},
		{"三词元中两个大写达到60%", []string{"John", "van", "Smith"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeName(tt.tokens))
		})
	}
}

func TestNameFromEmail(t *testing.T) {
	first, last := nameFromEmail("john.smith@example.com")
	assert.Equal(t, "John", first)
	assert.Equal(t, "Smith", last)

	first, last = nameFromEmail("admin@example.com")
	assert.Equal(t, "Admin", first)
	assert.Equal(t, "", last)
}

// TestExtractNameIdempotent 同一份文档重复提取结果一致
func TestExtractNameIdempotent(t *testing.T) {
	e := newTestExtractor(t, &mockRecognizer{doc: sampleDoc()}, &refdata.Store{})
	r1, err := e.Extract(context.Background(), sampleResume)
	require.NoError(t, err)
	r2, err := e.Extract(context.Background(), sampleResume)
	require.NoError(t, err)
	assert.Equal(t, r1.FirstName, r2.FirstName)
	assert.Equal(t, r1.LastName, r2.LastName)
}
