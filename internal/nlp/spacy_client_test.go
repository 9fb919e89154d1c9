package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSpacyClientAnnotate 验证通用模型标注请求和响应解析
func TestSpacyClientAnnotate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/annotate", r.URL.Path)

		var req annotateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "en_core_web_sm", req.Model)

		resp := annotateResponse{
			Entities: []Entity{
				{Label: LabelPerson, Start: 0, End: 10, Text: "John Smith"},
				{Label: LabelOrg, Start: 30, End: 51, Text: "University of Example"},
			},
			Tokens: []Token{
				{Text: "Developed", Lemma: "develop", POS: POSVerb},
				{Text: "tools", Lemma: "tool", POS: "NOUN"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewSpacyClient(server.URL, "en_core_web_sm", "skills")
	require.NoError(t, err)

	doc, err := client.Annotate(context.Background(), "John Smith ... University of Example")
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Len(t, doc.Entities, 2)
	assert.Equal(t, []string{"develop"}, doc.VerbLemmas())

	persons := doc.EntitiesByLabel(LabelPerson)
	require.Len(t, persons, 1)
	assert.Equal(t, "John Smith", persons[0].Text)
}

// TestSpacyClientRecognizeSkills 验证技能模型调用且只保留SKILL实体
func TestSpacyClientRecognizeSkills(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req annotateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "skills", req.Model)

		resp := annotateResponse{
			Entities: []Entity{
				{Label: LabelSkill, Start: 0, End: 6, Text: "Python"},
				{Label: "DATE", Start: 10, End: 14, Text: "2021"},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewSpacyClient(server.URL, "en_core_web_sm", "skills")
	require.NoError(t, err)

	skills, err := client.RecognizeSkills(context.Background(), "Python since 2021")
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Python", skills[0].Text)
}

// TestSpacyClientServerError 验证服务端错误会向上传播
func TestSpacyClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewSpacyClient(server.URL, "en_core_web_sm", "skills")
	require.NoError(t, err)

	_, err = client.Annotate(context.Background(), "text")
	require.Error(t, err)

	_, err = client.RecognizeSkills(context.Background(), "text")
	require.Error(t, err)
}

// TestNewSpacyClientValidation 验证必填参数校验
func TestNewSpacyClientValidation(t *testing.T) {
	_, err := NewSpacyClient("", "en_core_web_sm", "skills")
	assert.Error(t, err)

	_, err = NewSpacyClient("http://localhost:8090", "", "skills")
	assert.Error(t, err)

	_, err = NewSpacyClient("http://localhost:8090", "en_core_web_sm", "")
	assert.Error(t, err)
}
