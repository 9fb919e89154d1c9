package extractor

import (
	"strings"

	"resume-agent-go/internal/nlp"
)

// educationKeywords ORG实体被认定为教育机构所需包含的关键词
var educationKeywords = []string{"university", "college", "institute", "school"}

// ExtractEducation 收集文档中的教育机构
// 取所有ORG实体中（小写后）包含教育关键词的文本，按出现顺序去重返回；
// 只做成员判定，不做排名
func ExtractEducation(doc *nlp.AnnotatedDocument) []string {
	var institutions []string
	seen := make(map[string]struct{})
	for _, ent := range doc.EntitiesByLabel(nlp.LabelOrg) {
		text := strings.TrimSpace(ent.Text)
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)
		matched := false
		for _, kw := range educationKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		institutions = append(institutions, text)
	}
	return institutions
}
