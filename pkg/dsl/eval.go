package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/tedflare/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量和函数
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Expr 是编译后的布尔表达式，使用 CEL (Common Expression Language) 语法。
// 编译一次，可并发地对多个 Item 求值。
//
// 可用变量：
//   - item.id / item.score / item.meta.title / item.meta.url / item.meta.tags
//   - label.recall_source（Label 的 value）
//   - rctx.user_id / rctx.scene / rctx.item_id / rctx.query / rctx.top_k / rctx.params
//
// 示例：
//   - `item.score < 0.05` → 分数过低
//   - `item.meta.tags.contains("cooking")` → 标签包含 cooking
//   - `rctx.scene == "search" && item.meta.title == ""`
type Expr struct {
	source string
	prg    cel.Program
}

// Compile 编译表达式；表达式为空时返回 nil（视为恒真）。
func Compile(expr string) (*Expr, error) {
	if expr == "" {
		return nil, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Expr{source: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (e *Expr) String() string {
	if e == nil {
		return ""
	}
	return e.source
}

// Evaluate 对单个 Item 求值，表达式必须返回布尔值。
func (e *Expr) Evaluate(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if e == nil {
		return true, nil
	}
	out, _, err := e.prg.Eval(buildInput(item, rctx))
	if err != nil {
		// 访问不存在的 key 会报错，应先用 label.key != null 判断存在性
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Eval 是一次性求值的便捷封装。
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	return &Eval{item: item, rctx: rctx}
}

// Evaluate 编译并执行表达式；空表达式恒为 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	compiled, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return compiled.Evaluate(e.item, e.rctx)
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(it *core.Item, rctx *core.RecommendContext) map[string]interface{} {
	labels := make(map[string]interface{})
	labelAccessor := make(map[string]interface{})
	item := map[string]interface{}{}
	if it != nil {
		for k, v := range it.Labels {
			labels[k] = map[string]interface{}{
				"value":  v.Value,
				"source": v.Source,
			}
			labelAccessor[k] = v.Value
		}
		meta := it.Meta
		if meta == nil {
			meta = map[string]any{}
		}
		item = map[string]interface{}{
			"id":     it.ID,
			"score":  it.Score,
			"meta":   meta,
			"labels": labels,
		}
	}

	r := map[string]interface{}{}
	if rctx != nil {
		params := rctx.Params
		if params == nil {
			params = map[string]any{}
		}
		r = map[string]interface{}{
			"user_id": rctx.UserID,
			"scene":   rctx.Scene,
			"item_id": rctx.ItemID,
			"query":   rctx.Query,
			"top_k":   rctx.TopK,
			"params":  params,
		}
	}

	return map[string]interface{}{
		"item":  item,
		"label": labelAccessor,
		"rctx":  r,
	}
}
