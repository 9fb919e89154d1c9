package extractor

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"resume-agent-go/internal/nlp"
)

// headerWindowLimit 头部窗口的硬上限
// 在第一个邮箱/电话出现位置和该上限之间取最小值，之后出现的PERSON实体
// 更可能是同事或推荐人的名字，不参与姓名提取
const headerWindowLimit = 500

// nameBlacklist 职位/机构词黑名单
// 包含这些词的片段不可能是候选人姓名（例如 "Software Engineer Intern"）
var nameBlacklist = map[string]struct{}{
	"intern": {}, "internship": {}, "trainee": {}, "vocational": {},
	"project": {}, "based": {}, "engineer": {}, "developer": {},
	"student": {}, "fresher": {}, "manager": {}, "consultant": {},
	"associate": {}, "analyst": {}, "software": {}, "graduate": {},
	"director": {}, "founder": {}, "cofounder": {}, "co-founder": {},
	"company": {}, "inc": {}, "llc": {}, "school": {}, "college": {},
	"university": {}, "institute": {}, "department": {}, "team": {},
	"lead": {}, "senior": {}, "junior": {}, "resume": {}, "curriculum": {},
	"vitae": {}, "profile": {}, "contact": {}, "address": {}, "phone": {},
	"email": {},
}

var nonLetterPattern = regexp.MustCompile(`[^A-Za-z\s]`)

// cleanNameTokens 把片段清洗成纯字母词元序列
func cleanNameTokens(s string) []string {
	return strings.Fields(nonLetterPattern.ReplaceAllString(s, " "))
}

// looksLikeName 判断词元序列是否像一个人名：
// 2~4个词元、不含黑名单词、至少60%的词元以大写开头或全大写
func looksLikeName(tokens []string) bool {
	if len(tokens) < 2 || len(tokens) > 4 {
		return false
	}
	upperCount := 0
	for _, tok := range tokens {
		if _, banned := nameBlacklist[strings.ToLower(tok)]; banned {
			return false
		}
		if startsUpper(tok) || tok == strings.ToUpper(tok) {
			upperCount++
		}
	}
	return float64(upperCount)/float64(len(tokens)) >= 0.6
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// extractName 从文档头部提取 (名, 姓)，按固定回退顺序尝试：
// 1. 头部窗口内的PERSON实体（最早出现优先，并列时词元多者优先）
// 2. 原文前6个非空行
// 3. 邮箱local-part推导
// 全部失败时返回两个空串
func (e *Extractor) extractName(doc *nlp.AnnotatedDocument) (string, string) {
	text := doc.Text

	// 头部窗口：第一个邮箱/电话出现位置与硬上限的最小值
	headerLimit := len(text)
	if loc := emailPattern.FindStringIndex(text); loc != nil && loc[0] < headerLimit {
		headerLimit = loc[0]
	}
	if loc := phonePattern.FindStringIndex(text); loc != nil && loc[0] < headerLimit {
		headerLimit = loc[0]
	}
	if headerLimit > headerWindowLimit {
		headerLimit = headerWindowLimit
	}

	type candidate struct {
		start  int
		tokens []string
	}
	var candidates []candidate
	for _, ent := range doc.EntitiesByLabel(nlp.LabelPerson) {
		if ent.Start >= headerLimit {
			continue
		}
		tokens := cleanNameTokens(ent.Text)
		if looksLikeName(tokens) {
			candidates = append(candidates, candidate{start: ent.Start, tokens: tokens})
		}
	}

	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].start != candidates[j].start {
				return candidates[i].start < candidates[j].start
			}
			return len(candidates[i].tokens) > len(candidates[j].tokens)
		})
		return splitName(candidates[0].tokens)
	}

	// 回退：扫描前6个非空行
	lineCount := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lineCount++
		if lineCount > 6 {
			break
		}
		tokens := cleanNameTokens(line)
		if looksLikeName(tokens) {
			return splitName(tokens)
		}
	}

	// 回退：从邮箱local-part推导
	if email := emailPattern.FindString(text); email != "" {
		return nameFromEmail(email)
	}

	return "", ""
}

// splitName 首个词元作为名，其余拼接作为姓
func splitName(tokens []string) (string, string) {
	if len(tokens) == 0 {
		return "", ""
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}

var emailSeparatorPattern = regexp.MustCompile(`[._\-]`)

// nameFromEmail 把邮箱local-part按 . _ - 切分并逐段首字母大写
// 只有一段时只能得到名
func nameFromEmail(email string) (string, string) {
	local := strings.SplitN(email, "@", 2)[0]
	var parts []string
	for _, p := range emailSeparatorPattern.Split(local, -1) {
		if p != "" {
			parts = append(parts, capitalize(p))
		}
	}
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// capitalize 首字母大写，其余小写
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
