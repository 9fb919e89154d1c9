package extractor

import "strings"

// extractMajor 返回第一个在简历全文中出现的专业关键词（大小写不敏感子串匹配）
// 参考列表在加载时已按关键词长度降序排列，长关键词优先命中，
// 例如 "Computer Engineering" 不会被 "Computer" 抢先；没有命中返回空串
func (e *Extractor) extractMajor(text string) string {
	lowerText := strings.ToLower(text)
	for _, kw := range e.refs.Majors {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			return kw
		}
	}
	return ""
}
