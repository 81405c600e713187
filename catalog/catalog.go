// Package catalog 是演讲目录：启动时一次性加载，加载后不可变。
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rushteam/tedflare/core"
)

// Catalog 持有不可变的演讲集合，ID 即在集合中的下标。
type Catalog struct {
	talks []core.Talk
}

// New 按位置重新分配稠密 ID（从 0 开始）并拷贝输入。
func New(talks []core.Talk) *Catalog {
	out := make([]core.Talk, len(talks))
	for i, t := range talks {
		t.ID = int64(i)
		out[i] = t
	}
	return &Catalog{talks: out}
}

// Len 返回演讲数量。
func (c *Catalog) Len() int { return len(c.talks) }

// Talk 按 ID 查找演讲。
func (c *Catalog) Talk(id int64) (core.Talk, bool) {
	if id < 0 || id >= int64(len(c.talks)) {
		return core.Talk{}, false
	}
	return c.talks[id], true
}

// Talks 返回全部演讲的副本。
func (c *Catalog) Talks() []core.Talk {
	out := make([]core.Talk, len(c.talks))
	copy(out, c.talks)
	return out
}

// Tags 按 ID 顺序返回原始标签文本。
func (c *Catalog) Tags() []string {
	out := make([]string, len(c.talks))
	for i, t := range c.talks {
		out[i] = t.Tags
	}
	return out
}

// Load 从带表头的 CSV 读取目录。
// 必须包含 title 与 url 列；tags 列可选，缺失或为空视为 ""；其余列忽略。
func Load(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}
	titleCol, ok := cols["title"]
	if !ok {
		return nil, fmt.Errorf("catalog: missing column %q", "title")
	}
	urlCol, ok := cols["url"]
	if !ok {
		return nil, fmt.Errorf("catalog: missing column %q", "url")
	}
	tagsCol, hasTags := cols["tags"]

	var talks []core.Talk
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: line %d: %w", line, err)
		}
		talk := core.Talk{
			Title: field(rec, titleCol),
			URL:   field(rec, urlCol),
		}
		if hasTags {
			talk.Tags = field(rec, tagsCol)
		}
		talks = append(talks, talk)
	}
	return New(talks), nil
}

// LoadFile 从文件加载目录。
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
