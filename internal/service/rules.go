package service

import (
	"BasketSense/internal/model"
)

// AssociationRule 有向关联规则：前件→后件
type AssociationRule struct {
	Antecedent   model.ProductID
	Consequent   model.ProductID
	Support      float64
	Confidence   float64
	Lift         float64
	Count        int // 前后件共现的购物篮数
	TotalBaskets int
}

// GenerateRules 对每个频繁二项集 {a,b} 派生 a→b 与 b→a 两条规则，
// 各自独立按最小置信度过滤（可能只留一个方向，也可能双向都留或都不留）。
// confidence = 共现数/前件出现数；lift = confidence/(后件出现数/total)。
// onDiscovered 非空时每条达标规则回调一次（审计落库用）。
func GenerateRules(mining *MiningResult, minConfidence float64, onDiscovered func(*AssociationRule)) []*AssociationRule {
	rules := []*AssociationRule{}
	total := mining.TotalBaskets
	if total == 0 {
		return rules
	}

	for _, pair := range mining.PairItemsets() {
		a, b := pair.ProductA, *pair.ProductB
		for _, dir := range [2][2]model.ProductID{{a, b}, {b, a}} {
			antecedent, consequent := dir[0], dir[1]
			antecedentCount := mining.ItemCounts[antecedent]
			consequentCount := mining.ItemCounts[consequent]
			if antecedentCount == 0 || consequentCount == 0 {
				// 计数来源保证非零，防御性跳过
				continue
			}
			confidence := float64(pair.Count) / float64(antecedentCount)
			if confidence < minConfidence {
				continue
			}
			lift := confidence / (float64(consequentCount) / float64(total))
			rule := &AssociationRule{
				Antecedent:   antecedent,
				Consequent:   consequent,
				Support:      pair.Support,
				Confidence:   confidence,
				Lift:         lift,
				Count:        pair.Count,
				TotalBaskets: total,
			}
			rules = append(rules, rule)
			if onDiscovered != nil {
				onDiscovered(rule)
			}
		}
	}
	return rules
}
