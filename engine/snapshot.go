package engine

import (
	"time"

	"github.com/rushteam/tedflare/catalog"
	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/feature"
	"github.com/rushteam/tedflare/vector"
)

// Snapshot 是一次发布的只读内容索引：目录 + 拟合好的词表与文档向量。
// 发布后不再修改，请求可以在无锁的情况下并发读取。
type Snapshot struct {
	Version uint64
	BuiltAt time.Time

	catalog *catalog.Catalog
	model   *feature.Model
}

// BuildSnapshot 在目录上拟合向量化器；空目录返回 core.ErrEmptyCatalog。
func BuildSnapshot(c *catalog.Catalog, v *feature.Vectorizer) (*Snapshot, error) {
	if c == nil || c.Len() == 0 {
		return nil, core.ErrEmptyCatalog
	}
	if v == nil {
		v = feature.NewVectorizer()
	}
	m, err := v.Fit(c.Tags())
	if err != nil {
		return nil, err
	}
	return &Snapshot{BuiltAt: time.Now(), catalog: c, model: m}, nil
}

func (s *Snapshot) Len() int { return s.catalog.Len() }

func (s *Snapshot) Talk(id int64) (core.Talk, bool) { return s.catalog.Talk(id) }

func (s *Snapshot) DocVector(id int64) (vector.Sparse, bool) {
	if id < 0 || id >= int64(s.model.Len()) {
		return vector.Sparse{}, false
	}
	return s.model.Vector(int(id))
}

func (s *Snapshot) Transform(text string) vector.Sparse { return s.model.Transform(text) }

// VocabularySize 返回词表大小。
func (s *Snapshot) VocabularySize() int { return s.model.Dim() }

// Catalog 返回快照对应的目录。
func (s *Snapshot) Catalog() *catalog.Catalog { return s.catalog }

var _ core.ContentIndex = (*Snapshot)(nil)
