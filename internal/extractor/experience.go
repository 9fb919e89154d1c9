package extractor

import (
	"resume-agent-go/internal/nlp"
	"resume-agent-go/internal/types"
)

// 经验级别动词表，按优先级严格排序：先查高级动词，再查中级，再查初级
var (
	seniorVerbs = map[string]struct{}{
		"lead": {}, "manage": {}, "direct": {}, "oversee": {}, "supervise": {},
	}
	midSeniorVerbs = map[string]struct{}{
		"develop": {}, "design": {}, "analyze": {}, "implement": {}, "execute": {},
	}
	midJuniorVerbs = map[string]struct{}{
		"assist": {}, "support": {}, "collaborate": {}, "participate": {},
	}
)

// extractExperience 从文档动词词形推断经验级别和建议岗位
func (e *Extractor) extractExperience(doc *nlp.AnnotatedDocument) types.Experience {
	verbs := doc.VerbLemmas()
	return types.Experience{
		LevelOfExperience: classifyExperience(verbs),
		SuggestedPosition: e.suggestPosition(verbs),
	}
}

// classifyExperience 按优先级对动词集合分级
// 同时出现高级和初级动词时以高级为准；一个动词都没命中时为入门级
func classifyExperience(verbs []string) types.ExperienceLevel {
	switch {
	case anyInSet(verbs, seniorVerbs):
		return types.LevelSenior
	case anyInSet(verbs, midSeniorVerbs):
		return types.LevelMidSenior
	case anyInSet(verbs, midJuniorVerbs):
		return types.LevelMidJunior
	default:
		return types.LevelEntry
	}
}

// suggestPosition 返回第一条触发动词与简历动词集合有交集的岗位规则
// 规则保持参考文件的行顺序，因此首个命中是确定性的；没有命中返回默认值
func (e *Extractor) suggestPosition(verbs []string) string {
	verbSet := make(map[string]struct{}, len(verbs))
	for _, v := range verbs {
		verbSet[v] = struct{}{}
	}
	for _, rule := range e.refs.Positions {
		for _, kw := range rule.Keywords {
			if _, ok := verbSet[kw]; ok {
				return rule.Position
			}
		}
	}
	return types.PositionNotIdentified
}

func anyInSet(verbs []string, set map[string]struct{}) bool {
	for _, v := range verbs {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
