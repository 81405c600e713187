package utils

import "go.uber.org/zap"

// NewLogger 返回 zap logger：debug 为 true 时使用开发配置（可读格式、Debug 级别），
// 否则使用生产配置（JSON、Info 级别）。
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
