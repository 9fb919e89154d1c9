// Package refdata 加载技能/专业/岗位等平面参考数据文件
// 所有数据在进程启动时加载一次，之后只读
package refdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"resume-agent-go/internal/config"
	"resume-agent-go/internal/logger"
)

// PositionRule 岗位与触发动词的映射，保持文件行顺序
type PositionRule struct {
	Position string   // 岗位名
	Keywords []string // 触发动词（小写）
}

// Store 进程级参考数据缓存，加载完成后不可变
type Store struct {
	// Skills 技能关键词列表，保持文件顺序
	Skills []string

	// Majors 专业关键词列表，按关键词长度降序排列，
	// 长关键词优先匹配，消除无序遍历带来的不确定性
	Majors []string

	// Positions 岗位规则，保持文件行顺序，首个命中即返回
	Positions []PositionRule

	// SuggestedSkills 岗位名（小写）到推荐技能列表的映射
	SuggestedSkills map[string][]string
}

// LoadKeywordList 从单列CSV加载关键词列表，空行跳过
func LoadKeywordList(path string) ([]string, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var keywords []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kw := strings.TrimSpace(row[0])
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}
	return keywords, nil
}

// LoadPositionRules 加载岗位→触发动词映射
// 文件格式: 首行表头 "position,keywords"，keywords列内部以逗号分隔
// 缺列的行跳过，不导致整个文件加载失败
func LoadPositionRules(path string) ([]PositionRule, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// 解析表头，定位两列的位置
	header := rows[0]
	posIdx, kwIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "position":
			posIdx = i
		case "keywords":
			kwIdx = i
		}
	}
	if posIdx < 0 || kwIdx < 0 {
		return nil, fmt.Errorf("岗位规则文件 %s 缺少 position/keywords 表头", path)
	}

	var rules []PositionRule
	for _, row := range rows[1:] {
		if len(row) <= posIdx || len(row) <= kwIdx {
			// 缺列的行跳过
			logger.Warn().Str("file", path).Strs("row", row).Msg("岗位规则行缺列，跳过")
			continue
		}
		position := strings.TrimSpace(row[posIdx])
		if position == "" {
			continue
		}
		var keywords []string
		for _, kw := range strings.Split(row[kwIdx], ",") {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		rules = append(rules, PositionRule{Position: position, Keywords: keywords})
	}
	return rules, nil
}

// LoadJobSkillMapping 加载岗位名→推荐技能映射
// 文件格式: 每行首列为岗位名，其余列为技能；岗位名统一转小写作为键
func LoadJobSkillMapping(path string) (map[string][]string, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	mapping := make(map[string][]string)
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		jobTitle := strings.ToLower(strings.TrimSpace(row[0]))
		if jobTitle == "" {
			continue
		}
		var skills []string
		for _, s := range row[1:] {
			s = strings.TrimSpace(s)
			if s != "" {
				skills = append(skills, s)
			}
		}
		mapping[jobTitle] = skills
	}
	return mapping, nil
}

// Load 按配置加载全部参考数据
// 单个文件缺失或损坏只影响对应数据集（记警告日志并置空），不阻止进程启动；
// 对应的提取器在空数据集上自然退化为默认结果
func Load(cfg *config.RefDataConfig) *Store {
	store := &Store{SuggestedSkills: make(map[string][]string)}

	skills, err := LoadKeywordList(cfg.SkillsPath())
	if err != nil {
		logger.Warn().Err(err).Str("file", cfg.SkillsPath()).Msg("加载技能关键词失败，技能匹配将只依赖NER")
	} else {
		store.Skills = skills
	}

	majors, err := LoadKeywordList(cfg.MajorsPath())
	if err != nil {
		logger.Warn().Err(err).Str("file", cfg.MajorsPath()).Msg("加载专业关键词失败，专业提取将返回空值")
	} else {
		// 长关键词优先，等长时按字典序，保证确定性
		sort.SliceStable(majors, func(i, j int) bool {
			if len(majors[i]) != len(majors[j]) {
				return len(majors[i]) > len(majors[j])
			}
			return majors[i] < majors[j]
		})
		store.Majors = majors
	}

	positions, err := LoadPositionRules(cfg.PositionsPath())
	if err != nil {
		logger.Warn().Err(err).Str("file", cfg.PositionsPath()).Msg("加载岗位规则失败，岗位建议将返回默认值")
	} else {
		store.Positions = positions
	}

	suggested, err := LoadJobSkillMapping(cfg.SuggestedSkillsPath())
	if err != nil {
		logger.Warn().Err(err).Str("file", cfg.SuggestedSkillsPath()).Msg("加载岗位推荐技能失败，技能建议将返回空列表")
	} else {
		store.SuggestedSkills = suggested
	}

	logger.Info().
		Int("skills", len(store.Skills)).
		Int("majors", len(store.Majors)).
		Int("positions", len(store.Positions)).
		Int("suggested_jobs", len(store.SuggestedSkills)).
		Msg("参考数据加载完成")

	return store
}

// readCSV 读取CSV文件的全部行，列数不做强校验
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开参考数据文件失败: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // 行可以有不同列数
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析参考数据文件 %s 失败: %w", path, err)
	}
	return rows, nil
}
