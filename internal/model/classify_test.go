package model

import "testing"

func TestClassifyConfidence(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		expected   string
	}{
		{"0.95 very high", 0.95, "Very High"},
		{"0.8 边界取高档", 0.8, "Very High"},
		{"0.7 high", 0.7, "High"},
		{"0.6 边界", 0.6, "High"},
		{"0.5 medium", 0.5, "Medium"},
		{"0.4 边界", 0.4, "Medium"},
		{"0.3 low", 0.3, "Low"},
		{"0.2 边界", 0.2, "Low"},
		{"0.1 very low", 0.1, "Very Low"},
		{"0 very low", 0, "Very Low"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyConfidence(tt.confidence); got != tt.expected {
				t.Errorf("ClassifyConfidence(%f) = %q, want %q", tt.confidence, got, tt.expected)
			}
		})
	}
}

func TestClassifyStrength(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		lift       float64
		expected   string
	}{
		{"高置信高提升", 0.9, 2.5, "Very Strong"},
		{"双边界 very strong", 0.8, 2.0, "Very Strong"},
		{"高置信但提升不足", 0.9, 1.8, "Strong"},
		{"strong 边界", 0.6, 1.5, "Strong"},
		{"medium", 0.5, 1.3, "Medium"},
		{"medium 边界", 0.4, 1.2, "Medium"},
		{"weak", 0.3, 1.0, "Weak"},
		{"置信度够但提升小于1", 0.3, 0.9, "Very Weak"},
		{"全低", 0.1, 0.5, "Very Weak"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStrength(tt.confidence, tt.lift); got != tt.expected {
				t.Errorf("ClassifyStrength(%f, %f) = %q, want %q", tt.confidence, tt.lift, got, tt.expected)
			}
		})
	}
}
