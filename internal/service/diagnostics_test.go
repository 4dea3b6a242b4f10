package service

import (
	"math"
	"strings"
	"testing"
)

func TestSuggestMinSupport(t *testing.T) {
	tests := []struct {
		name    string
		baskets int
		want    float64
	}{
		{"大样本按 2/N", 200, 0.01},
		{"100 篮恰为下限", 100, 0.02},
		{"20 篮", 20, 0.1},
		{"4 篮", 4, 0.5},
		{"零篮兜底", 0, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestMinSupport(tt.baskets); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SuggestMinSupport(%d) = %f, want %f", tt.baskets, got, tt.want)
			}
		})
	}
}

func TestBuildNoRulesMessage(t *testing.T) {
	msg := buildNoRulesMessage(10, 0.3)
	if !strings.Contains(msg, "0.2000") {
		t.Errorf("应建议 2/10=0.2000: %q", msg)
	}
	if strings.Contains(msg, "偏高") {
		t.Errorf("置信度 0.3 不应提示下调: %q", msg)
	}

	msg = buildNoRulesMessage(10, 0.8)
	if !strings.Contains(msg, "偏高") {
		t.Errorf("置信度 0.8 应提示下调: %q", msg)
	}
}
