// Package nlp 封装外部实体识别引擎
// 提取流水线只依赖这里定义的标注能力接口，不关心底层由哪个模型服务实现
package nlp

import (
	"context"
	"strings"
)

// 实体标签常量，与标注服务返回的label字段对应
const (
	LabelPerson = "PERSON"
	LabelOrg    = "ORG"
	LabelSkill  = "SKILL"

	// POSVerb 动词词性标签
	POSVerb = "VERB"
)

// Entity 一个带标签的文本片段（字符偏移以原始文本为准）
type Entity struct {
	Label string `json:"label"` // 实体类型，例如 PERSON / ORG / SKILL
	Start int    `json:"start"` // 起始字符偏移
	End   int    `json:"end"`   // 结束字符偏移
	Text  string `json:"text"`  // 实体原文
}

// Token 一个带词形和词性的词元
type Token struct {
	Text  string `json:"text"`  // 词元原文
	Lemma string `json:"lemma"` // 词形还原后的基本形
	POS   string `json:"pos"`   // 词性标签，例如 VERB / NOUN
}

// AnnotatedDocument 标注后的文档，不可变值对象
// 每份简历仅标注一次，所有字段提取器只读消费
type AnnotatedDocument struct {
	Text     string   `json:"text"`     // 原始文本
	Entities []Entity `json:"entities"` // 实体序列
	Tokens   []Token  `json:"tokens"`   // 词元序列
}

// EntitiesByLabel 返回指定标签的实体子序列，保持原始顺序
func (d *AnnotatedDocument) EntitiesByLabel(label string) []Entity {
	var out []Entity
	for _, ent := range d.Entities {
		if ent.Label == label {
			out = append(out, ent)
		}
	}
	return out
}

// VerbLemmas 返回所有动词的词形（小写），保持出现顺序
func (d *AnnotatedDocument) VerbLemmas() []string {
	var verbs []string
	for _, tok := range d.Tokens {
		if tok.POS == POSVerb && tok.Lemma != "" {
			verbs = append(verbs, strings.ToLower(tok.Lemma))
		}
	}
	return verbs
}

// EntityRecognizer 实体识别能力接口
// Annotate 使用通用模型产出完整标注文档（PERSON/ORG实体 + 词性/词形）；
// RecognizeSkills 使用单独训练的技能模型，仅返回SKILL实体。
// 两个方法都可能因引擎不可用而失败，这类失败对整次提取是致命的
type EntityRecognizer interface {
	Annotate(ctx context.Context, text string) (*AnnotatedDocument, error)
	RecognizeSkills(ctx context.Context, text string) ([]Entity, error)
}
