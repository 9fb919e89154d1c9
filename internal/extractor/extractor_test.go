package extractor

import (
	"context"
	"errors"
	"testing"

	"resume-agent-go/internal/nlp"
	"resume-agent-go/internal/refdata"
	"resume-agent-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRecognizer 模拟实体识别引擎
type mockRecognizer struct {
	doc         *nlp.AnnotatedDocument
	skills      []nlp.Entity
	annotateErr error
	skillsErr   error
}

func (m *mockRecognizer) Annotate(ctx context.Context, text string) (*nlp.AnnotatedDocument, error) {
	if m.annotateErr != nil {
		return nil, m.annotateErr
	}
	if m.doc != nil {
		return m.doc, nil
	}
	return &nlp.AnnotatedDocument{Text: text}, nil
}

func (m *mockRecognizer) RecognizeSkills(ctx context.Context, text string) ([]nlp.Entity, error) {
	if m.skillsErr != nil {
		return nil, m.skillsErr
	}
	return m.skills, nil
}

func newTestExtractor(t *testing.T, recognizer nlp.EntityRecognizer, refs *refdata.Store) *Extractor {
	t.Helper()
	e, err := NewExtractor(recognizer, refs)
	require.NoError(t, err)
	return e
}

const sampleResume = "John Smith\n" +
	"john.smith@example.com\n" +
	"+1 415-555-0199\n" +
	"Education\n" +
	"University of Example\n" +
	"Developed Python tools"

func sampleDoc() *nlp.AnnotatedDocument {
	return &nlp.AnnotatedDocument{
		Text: sampleResume,
		Entities: []nlp.Entity{
			{Label: nlp.LabelPerson, Start: 0, End: 10, Text: "John Smith"},
			{Label: nlp.LabelOrg, Start: 60, End: 81, Text: "University of Example"},
		},
		Tokens: []nlp.Token{
			{Text: "Developed", Lemma: "develop", POS: nlp.POSVerb},
			{Text: "Python", Lemma: "python", POS: "PROPN"},
			{Text: "tools", Lemma: "tool", POS: "NOUN"},
		},
	}
}

// TestExtractEndToEnd 端到端场景：完整简历文本提取出全部字段
func TestExtractEndToEnd(t *testing.T) {
	recognizer := &mockRecognizer{
		doc: sampleDoc(),
		skills: []nlp.Entity{
			{Label: nlp.LabelSkill, Start: 95, End: 101, Text: "Python"},
		},
	}
	refs := &refdata.Store{
		Skills: []string{"Python", "SQL"},
		Majors: []string{"Computer Science"},
		Positions: []refdata.PositionRule{
			{Position: "Software Engineer", Keywords: []string{"develop", "design"}},
		},
	}
	e := newTestExtractor(t, recognizer, refs)

	record, err := e.Extract(context.Background(), sampleResume)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "John", record.FirstName)
	assert.Equal(t, "Smith", record.LastName)
	assert.Equal(t, "john.smith@example.com", record.Email)
	assert.Equal(t, "14155550199", record.Phone)
	assert.Contains(t, record.Education, "University of Example")
	assert.Equal(t, []string{"Python"}, record.Skills)
	assert.Equal(t, "", record.DegreeMajor)

	// "Developed" 词形还原为 "develop"，属于中高级动词
	assert.NotEqual(t, types.LevelEntry, record.Experience.LevelOfExperience)
	assert.Equal(t, types.LevelMidSenior, record.Experience.LevelOfExperience)
	assert.Equal(t, "Software Engineer", record.Experience.SuggestedPosition)

	assert.Equal(t, 75, CompletenessScore(record))
}

// TestExtractEmptyResume 空白简历：所有字段退化为默认值，不返回错误
func TestExtractEmptyResume(t *testing.T) {
	e := newTestExtractor(t, &mockRecognizer{}, &refdata.Store{})

	record, err := e.Extract(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "", record.FirstName)
	assert.Equal(t, "", record.LastName)
	assert.Equal(t, "", record.Email)
	assert.Equal(t, "", record.Phone)
	assert.Equal(t, "", record.DegreeMajor)
	assert.NotNil(t, record.Education)
	assert.Empty(t, record.Education)
	assert.NotNil(t, record.Skills)
	assert.Empty(t, record.Skills)
	assert.Equal(t, types.LevelEntry, record.Experience.LevelOfExperience)
	assert.Equal(t, types.PositionNotIdentified, record.Experience.SuggestedPosition)
	assert.Equal(t, 0, CompletenessScore(record))
}

// TestExtractEngineFailureIsFatal 标注引擎失败时整次提取失败，不返回部分记录
func TestExtractEngineFailureIsFatal(t *testing.T) {
	e := newTestExtractor(t, &mockRecognizer{annotateErr: errors.New("engine down")}, &refdata.Store{})
	record, err := e.Extract(context.Background(), "any text")
	require.Error(t, err)
	assert.Nil(t, record)

	e = newTestExtractor(t, &mockRecognizer{skillsErr: errors.New("skill model down")}, &refdata.Store{})
	record, err = e.Extract(context.Background(), "any text")
	require.Error(t, err)
	assert.Nil(t, record)
}

// TestSuggestSkills 岗位推荐技能查找大小写不敏感，未知岗位返回空列表
func TestSuggestSkills(t *testing.T) {
	refs := &refdata.Store{
		SuggestedSkills: map[string][]string{
			"data scientist": {"Python", "SQL", "Machine Learning"},
		},
	}
	e := newTestExtractor(t, &mockRecognizer{}, refs)

	assert.Equal(t, []string{"Python", "SQL", "Machine Learning"}, e.SuggestSkills("Data Scientist"))
	assert.Equal(t, []string{"Python", "SQL", "Machine Learning"}, e.SuggestSkills("  DATA SCIENTIST "))
	assert.Equal(t, []string{}, e.SuggestSkills("Unknown Job"))
}
