package model

// ClassifyConfidence 按置信度分档（报表展示用，纯函数）
func ClassifyConfidence(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "Very High"
	case confidence >= 0.6:
		return "High"
	case confidence >= 0.4:
		return "Medium"
	case confidence >= 0.2:
		return "Low"
	default:
		return "Very Low"
	}
}

// ClassifyStrength 综合置信度与提升度给出规则强度分档
func ClassifyStrength(confidence, lift float64) string {
	switch {
	case confidence >= 0.8 && lift >= 2:
		return "Very Strong"
	case confidence >= 0.6 && lift >= 1.5:
		return "Strong"
	case confidence >= 0.4 && lift >= 1.2:
		return "Medium"
	case confidence >= 0.2 && lift >= 1:
		return "Weak"
	default:
		return "Very Weak"
	}
}
