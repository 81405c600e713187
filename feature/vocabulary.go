package feature

// Vocabulary 是词到稠密列下标的映射，列下标按拟合时首次出现的顺序分配。
// 构建完成后只读。
type Vocabulary struct {
	index map[string]int
	terms []string
}

func newVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]int)}
}

func (v *Vocabulary) add(term string) int {
	if i, ok := v.index[term]; ok {
		return i
	}
	i := len(v.terms)
	v.index[term] = i
	v.terms = append(v.terms, term)
	return i
}

// Len 返回词表大小（即向量维度）。
func (v *Vocabulary) Len() int { return len(v.terms) }

// Index 返回词对应的列下标。
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Term 返回列下标对应的词。
func (v *Vocabulary) Term(i int) string {
	if i < 0 || i >= len(v.terms) {
		return ""
	}
	return v.terms[i]
}

// Terms 按列顺序返回所有词的副本。
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}
