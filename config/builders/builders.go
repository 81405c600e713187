// Package builders 在 init 中把内置 Node 注册到 config 注册表，供 YAML Pipeline 使用。
package builders

import (
	"fmt"

	"github.com/rushteam/tedflare/config"
	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/filter"
	"github.com/rushteam/tedflare/pipeline"
	"github.com/rushteam/tedflare/pkg/conv"
	"github.com/rushteam/tedflare/rank"
	"github.com/rushteam/tedflare/recall"
	"github.com/rushteam/tedflare/rerank"
)

func init() {
	config.Register("recall.item", BuildItemSimilarityNode)
	config.Register("recall.profile", BuildProfileNode)
	config.Register("recall.query", BuildQueryNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rank.score", BuildScoreNode)
	config.Register("rerank.topn", BuildTopNNode)
}

func BuildItemSimilarityNode(map[string]interface{}) (pipeline.Node, error) {
	return &recall.ItemSimilarity{}, nil
}

func BuildProfileNode(map[string]interface{}) (pipeline.Node, error) {
	return &recall.Profile{}, nil
}

func BuildQueryNode(map[string]interface{}) (pipeline.Node, error) {
	return &recall.Query{}, nil
}

func BuildScoreNode(map[string]interface{}) (pipeline.Node, error) {
	return &rank.ScoreNode{}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", 0)
	if n < 0 {
		return nil, fmt.Errorf("rerank.topn: n must be >= 0, got %d", n)
	}
	return &rerank.TopNNode{N: int(n)}, nil
}

// BuildFilterNode 支持的过滤器：exclude、blacklist（item_ids）、expr（CEL 表达式）。
// 配置驱动时没有 Store，blacklist 写了 key 会直接报错；存储中的黑名单走 recommend.blacklist_key。
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "exclude":
			filters = append(filters, &filter.ExcludeFilter{})
		case "blacklist":
			if key := conv.ConfigGet(filterMap, "key", ""); key != "" {
				return nil, fmt.Errorf("blacklist filter: key %q needs a store; set recommend.blacklist_key instead", key)
			}
			ids := core.ParseInteractionIDs(conv.SliceAnyToString(filterMap["item_ids"]))
			filters = append(filters, filter.NewBlacklistFilter(ids, nil, ""))
		case "expr":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("expr filter requires expr")
			}
			f, err := filter.NewExprFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("expr filter: %w", err)
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}
