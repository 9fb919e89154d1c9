package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"标准邮箱", "Contact me at john.smith@example.com anytime", "john.smith@example.com"},
		{"多个邮箱取第一个", "a@first.io or b@second.io", "a@first.io"},
		{"带加号和数字", "dev+jobs2024@mail.example.org", "dev+jobs2024@mail.example.org"},
		{"没有邮箱", "no contact information here", ""},
		{"缺少顶级域不匹配", "broken@localhost", ""},
		{"空文本", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEmail(tt.text))
		})
	}
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"带国家码和分隔符", "Phone: +1 415-555-0199", "14155550199"},
		{"括号区号", "(020) 7946 0958", "02079460958"},
		{"点分隔", "555.123.4567", "5551234567"},
		{"纯数字", "Call 13812345678 now", "13812345678"},
		{"没有号码", "email only: a@b.co", ""},
		{"空文本", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPhone(tt.text))
		})
	}
}
