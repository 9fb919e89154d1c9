package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"resume-agent-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadKeywordList 验证单列CSV加载、去重和空行跳过
func TestLoadKeywordList(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "skills.csv", "Python\nJava\n\nPython\n  Go  \n")

	keywords, err := LoadKeywordList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Java", "Go"}, keywords)
}

// TestLoadKeywordListMissingFile 验证文件缺失时返回错误
func TestLoadKeywordListMissingFile(t *testing.T) {
	_, err := LoadKeywordList(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

// TestLoadPositionRules 验证岗位规则解析，缺列行被跳过且行顺序保持
func TestLoadPositionRules(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "positions.csv",
		"position,keywords\n"+
			"Software Engineer,\"develop, design, implement\"\n"+
			"OnlyOneColumn\n"+
			"Project Manager,\"lead, manage, oversee\"\n")

	rules, err := LoadPositionRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "Software Engineer", rules[0].Position)
	assert.Equal(t, []string{"develop", "design", "implement"}, rules[0].Keywords)
	assert.Equal(t, "Project Manager", rules[1].Position)
}

// TestLoadJobSkillMapping 验证岗位名小写化和技能列收集
func TestLoadJobSkillMapping(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "suggested.csv",
		"Data Scientist,Python,SQL,Machine Learning\n"+
			"Web Developer,HTML,CSS,JavaScript\n")

	mapping, err := LoadJobSkillMapping(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Python", "SQL", "Machine Learning"}, mapping["data scientist"])
	assert.Equal(t, []string{"HTML", "CSS", "JavaScript"}, mapping["web developer"])
	_, ok := mapping["Data Scientist"]
	assert.False(t, ok, "键应该是小写的")
}

// TestLoadDegradesPerFile 验证单个文件缺失时其余数据集仍正常加载
func TestLoadDegradesPerFile(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "skills.csv", "Python\nSQL\n")
	writeTempFile(t, dir, "majors.csv", "Computer Science\nMath\nComputer Engineering\n")
	// positions.csv 和 suggested_skills.csv 故意缺失

	cfg := &config.RefDataConfig{
		Dir:                 dir,
		SkillsFile:          "skills.csv",
		MajorsFile:          "majors.csv",
		PositionsFile:       "positions.csv",
		SuggestedSkillsFile: "suggested_skills.csv",
	}

	store := Load(cfg)
	require.NotNil(t, store)

	assert.Equal(t, []string{"Python", "SQL"}, store.Skills)
	// 专业按长度降序排列
	assert.Equal(t, []string{"Computer Engineering", "Computer Science", "Math"}, store.Majors)
	assert.Empty(t, store.Positions)
	assert.Empty(t, store.SuggestedSkills)
}
