package service

import (
	"fmt"
	"math"
)

// 诊断码：每个"无结果"出口一个码，前端据此展示对应引导
const (
	DiagInvalidParams      = "invalid_params"
	DiagNoTransactions     = "no_transactions"
	DiagNoCompleted        = "no_completed_transactions"
	DiagNoCategoryMatch    = "no_category_transactions"
	DiagNoMultiItemBaskets = "no_multi_item_baskets"
	DiagNoRules            = "no_rules"
)

// DiagnosticError 带诊断码的用户可读错误：不是系统故障，而是
// 某个前置条件不满足，消息里写明缺什么、查到了多少、该怎么调。
type DiagnosticError struct {
	Code    string
	Message string
}

func (e *DiagnosticError) Error() string { return e.Message }

func newDiagnostic(code, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// SuggestMinSupport 参数调优建议：保证频繁项集至少需要 2 次共现，
// 即 min_support ≈ 2/购物篮数，下限 0.01
func SuggestMinSupport(validBasketCount int) float64 {
	if validBasketCount <= 0 {
		return 0.01
	}
	return math.Max(0.01, 2.0/float64(validBasketCount))
}

// buildNoRulesMessage 没有规则达到阈值时的引导消息（含建议参数）
func buildNoRulesMessage(validBasketCount int, minConfidence float64) string {
	msg := fmt.Sprintf("分析了 %d 个购物篮，但没有规则达到当前阈值。建议将最小支持度调整为约 %.4f（至少要求 2 次共现）",
		validBasketCount, SuggestMinSupport(validBasketCount))
	if minConfidence > 0.5 {
		msg += fmt.Sprintf("；当前最小置信度 %.2f 偏高，可尝试降到 0.5 以下", minConfidence)
	}
	return msg
}
