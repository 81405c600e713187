package core

import "fmt"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持 errors.Is：Module 与 Code 相同即视为同一类错误
//
// 使用场景：
//   - Catalog 错误：EMPTY_CATALOG
//   - Engine 错误：UNKNOWN_ITEM, EMPTY_INTERACTION
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "UNKNOWN_ITEM"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "catalog", "engine"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is 让 errors.Is 可以按 Module + Code 匹配（消息可以携带上下文，如 item id）。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok || t == nil {
		return false
	}
	return e.Module == t.Module && e.Code == t.Code
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取 DomainError（支持 %w 包装），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	for err != nil {
		if domainErr, ok := err.(*DomainError); ok {
			return domainErr
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = u.Unwrap()
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound         = "NOT_FOUND"         // 资源不存在
	ErrorCodeNotSupported     = "NOT_SUPPORTED"     // 操作不支持
	ErrorCodeInvalidInput     = "INVALID_INPUT"     // 输入无效
	ErrorCodeEmptyCatalog     = "EMPTY_CATALOG"     // 目录为空，无法拟合
	ErrorCodeUnknownItem      = "UNKNOWN_ITEM"      // 目录中不存在的物品
	ErrorCodeEmptyInteraction = "EMPTY_INTERACTION" // 没有可用的交互记录
)

// 模块名称常量
const (
	ModuleStore   = "store"   // 存储模块
	ModuleCatalog = "catalog" // 目录 / 向量化
	ModuleEngine  = "engine"  // 推荐入口
)

var (
	// ErrEmptyCatalog 在零个物品上拟合向量化器时返回，启动阶段应直接中止。
	ErrEmptyCatalog = NewDomainError(ModuleCatalog, ErrorCodeEmptyCatalog, "catalog: cannot fit on an empty catalog")

	// ErrUnknownItem 表示请求的物品不在目录中。
	ErrUnknownItem = NewDomainError(ModuleEngine, ErrorCodeUnknownItem, "engine: unknown item")

	// ErrEmptyInteraction 表示用户没有可用于画像的交互记录，调用方应提示"数据不足"。
	ErrEmptyInteraction = NewDomainError(ModuleEngine, ErrorCodeEmptyInteraction, "engine: no interacted items to build a profile")

	// ErrInvalidInput 表示请求上下文缺少必要字段。
	ErrInvalidInput = NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: invalid input")
)

// NewUnknownItemError 返回携带物品 ID 的 ErrUnknownItem。
func NewUnknownItemError(id int64) *DomainError {
	return NewDomainError(ModuleEngine, ErrorCodeUnknownItem, fmt.Sprintf("engine: unknown item %d", id))
}

func isCode(err error, module, code string) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == module && domainErr.Code == code
}

// IsEmptyCatalog 检查错误是否为 EMPTY_CATALOG
func IsEmptyCatalog(err error) bool {
	return isCode(err, ModuleCatalog, ErrorCodeEmptyCatalog)
}

// IsUnknownItem 检查错误是否为 UNKNOWN_ITEM
func IsUnknownItem(err error) bool {
	return isCode(err, ModuleEngine, ErrorCodeUnknownItem)
}

// IsEmptyInteraction 检查错误是否为 EMPTY_INTERACTION
func IsEmptyInteraction(err error) bool {
	return isCode(err, ModuleEngine, ErrorCodeEmptyInteraction)
}
