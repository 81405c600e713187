package feature

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/vector"
)

// Vectorizer 在整个目录的标签文本上拟合 TF-IDF 模型。
//
// 权重：tf(t,d) * idf(t)，tf 为原始词频，idf(t) = ln((1+N)/(1+df(t))) + 1。
// 每个文档向量做 L2 归一化，零向量保持为零。
type Vectorizer struct {
	Tokenizer *Tokenizer

	// MaxConcurrent 是分词并发度；<= 0 时使用 GOMAXPROCS
	MaxConcurrent int
}

// NewVectorizer 创建使用默认分词器的 Vectorizer。
func NewVectorizer() *Vectorizer {
	return &Vectorizer{Tokenizer: NewTokenizer(DefaultMinTokenLength)}
}

// Fit 拟合词表与文档向量。docs 为空时返回 core.ErrEmptyCatalog。
func (v *Vectorizer) Fit(docs []string) (*Model, error) {
	if len(docs) == 0 {
		return nil, core.ErrEmptyCatalog
	}
	tok := v.Tokenizer
	if tok == nil {
		tok = NewTokenizer(DefaultMinTokenLength)
	}

	// 分词彼此独立，可并发；词表必须按文档顺序串行构建以保证列下标稳定。
	tokens := make([][]string, len(docs))
	var eg errgroup.Group
	limit := v.MaxConcurrent
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	eg.SetLimit(limit)
	for i := range docs {
		i := i
		eg.Go(func() error {
			tokens[i] = tok.Tokenize(docs[i])
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	vocab := newVocabulary()
	counts := make([]map[int]float64, len(docs))
	var df []int
	for d, terms := range tokens {
		c := make(map[int]float64, len(terms))
		for _, term := range terms {
			i := vocab.add(term)
			if i == len(df) {
				df = append(df, 0)
			}
			if c[i] == 0 {
				df[i]++
			}
			c[i]++
		}
		counts[d] = c
	}

	n := float64(len(docs))
	idf := make([]float64, vocab.Len())
	for i := range idf {
		idf[i] = math.Log((1+n)/(1+float64(df[i]))) + 1
	}

	m := &Model{
		tokenizer: tok,
		vocab:     vocab,
		idf:       idf,
		vectors:   make([]vector.Sparse, len(docs)),
	}
	for d, c := range counts {
		m.vectors[d] = m.weigh(c)
	}
	return m, nil
}

// Model 是拟合结果：词表、IDF 权重与每个文档的向量。只读，可并发访问。
type Model struct {
	tokenizer *Tokenizer
	vocab     *Vocabulary
	idf       []float64
	vectors   []vector.Sparse
}

// Vocabulary 返回拟合得到的词表。
func (m *Model) Vocabulary() *Vocabulary { return m.vocab }

// Dim 返回向量维度。
func (m *Model) Dim() int { return m.vocab.Len() }

// Len 返回文档数。
func (m *Model) Len() int { return len(m.vectors) }

// IDF 返回词的 idf 权重；不在词表中返回 false。
func (m *Model) IDF(term string) (float64, bool) {
	i, ok := m.vocab.Index(term)
	if !ok {
		return 0, false
	}
	return m.idf[i], true
}

// Vector 返回第 i 个文档的向量。
func (m *Model) Vector(i int) (vector.Sparse, bool) {
	if i < 0 || i >= len(m.vectors) {
		return vector.Sparse{}, false
	}
	return m.vectors[i], true
}

// Vectors 返回全部文档向量，位置与文档下标一致。调用方不得修改。
func (m *Model) Vectors() []vector.Sparse { return m.vectors }

// Transform 把任意文本投影到已拟合的词表上，未登录词忽略，归一化方式与 Fit 相同。
func (m *Model) Transform(text string) vector.Sparse {
	c := make(map[int]float64)
	for _, term := range m.tokenizer.Tokenize(text) {
		if i, ok := m.vocab.Index(term); ok {
			c[i]++
		}
	}
	return m.weigh(c)
}

func (m *Model) weigh(counts map[int]float64) vector.Sparse {
	for i, tf := range counts {
		counts[i] = tf * m.idf[i]
	}
	return vector.FromMap(m.vocab.Len(), counts).Normalize()
}
