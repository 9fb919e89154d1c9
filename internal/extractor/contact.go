package extractor

import "regexp"

// emailPattern 标准 local@domain.tld 形式，顶级域至少两个字母
// 只做句法匹配，不验证邮箱可达性
var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// phonePattern 宽松的电话号码形式：可选国家码，允许空格/点/连字符/括号分隔
// 不校验号码长度和地区
var phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{4}`)

var nonDigitPattern = regexp.MustCompile(`\D`)

// ExtractEmail 返回文本中的第一个邮箱，没有则返回空串
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractPhone 返回文本中第一个电话号码的纯数字串，没有则返回空串
func ExtractPhone(text string) string {
	match := phonePattern.FindString(text)
	if match == "" {
		return ""
	}
	return nonDigitPattern.ReplaceAllString(match, "")
}
