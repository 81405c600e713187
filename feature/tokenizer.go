// Package feature 实现内容向量化：分词、词表、TF-IDF 拟合与用户画像聚合。
package feature

import (
	"strings"
	"unicode"
)

// DefaultMinTokenLength 是分词保留的最短词长。
const DefaultMinTokenLength = 2

// Tokenizer 把原始标签文本切分为小写字母词。
// 非字母字符视为分隔符；停用词与短于 MinLength 的词被丢弃。
type Tokenizer struct {
	MinLength int
	StopWords map[string]struct{}
}

// NewTokenizer 创建使用英文停用词表的分词器，extraStopWords 追加到停用词表中。
func NewTokenizer(minLength int, extraStopWords ...string) *Tokenizer {
	if minLength <= 0 {
		minLength = DefaultMinTokenLength
	}
	stop := EnglishStopWords
	if len(extraStopWords) > 0 {
		stop = make(map[string]struct{}, len(EnglishStopWords)+len(extraStopWords))
		for w := range EnglishStopWords {
			stop[w] = struct{}{}
		}
		for _, w := range extraStopWords {
			stop[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
		}
	}
	return &Tokenizer{MinLength: minLength, StopWords: stop}
}

// Tokenize 返回 text 中保留下来的词（保持出现顺序，允许重复）。
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < t.MinLength {
			continue
		}
		if _, ok := t.StopWords[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}
