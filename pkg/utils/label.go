package utils

// Label 记录演讲在推荐链路中经过的环节，用于解释结果与排查。
// 目前写入的 key：recall_source（item / profile / query）、filtered（过滤器名）、
// rank_position（排序名次），以及请求级的 filtered_count。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / rank / filter.node ...
}

// MergeLabel 合并同名 Label：Value 以 '|' 累积，Source 以 ',' 累积，空值不参与。
// 同一演讲被多个召回源命中时，recall_source 会变成 "item|query" 这样的形式。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
