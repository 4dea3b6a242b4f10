package service

import (
	"context"
	"fmt"
	"time"

	"BasketSense/internal/model"
	"BasketSense/internal/repository"

	"github.com/sirupsen/logrus"
)

// UpsertStats 一次 upsert 的统计。Created 只计真正新建的行。
type UpsertStats struct {
	Created int
	Updated int
	Skipped int
}

// RecommendationUpserter 把关联规则落成商品推荐：
// 不存在则新建；已存在且新置信度更高则更新分数；否则不动。
// active 字段完全不碰——运营停用的推荐不会被管线复活。
type RecommendationUpserter struct {
	logger *logrus.Logger
}

// NewRecommendationUpserter 创建推荐 upsert 器
func NewRecommendationUpserter(logger *logrus.Logger) *RecommendationUpserter {
	return &RecommendationUpserter{logger: logger}
}

// Apply 按规则逐条 upsert。前后件商品已被删除的规则跳过并告警，不影响整轮。
// 更新走 WHERE score < 新分数 的条件写，天然幂等且并发安全。
func (u *RecommendationUpserter) Apply(ctx context.Context, repos *repository.RepoSet, rules []*AssociationRule) (*UpsertStats, error) {
	stats := &UpsertStats{}
	if len(rules) == 0 {
		return stats, nil
	}

	// 批量解析前后件商品，缺失的视为已删除
	idSet := make(map[model.ProductID]struct{}, len(rules)*2)
	for _, r := range rules {
		idSet[r.Antecedent] = struct{}{}
		idSet[r.Consequent] = struct{}{}
	}
	ids := make([]model.ProductID, 0, len(idSet))
	for pid := range idSet {
		ids = append(ids, pid)
	}
	products, err := repos.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("解析规则商品失败: %w", err)
	}

	for _, rule := range rules {
		// 规则设计上即为单前件单后件，这里防御性校验有向对合法
		if rule.Antecedent == 0 || rule.Consequent == 0 || rule.Antecedent == rule.Consequent {
			u.logger.Warnf("跳过非法规则: %d→%d", rule.Antecedent, rule.Consequent)
			stats.Skipped++
			continue
		}
		main, ok := products[rule.Antecedent]
		if !ok {
			u.logger.Warnf("规则前件商品 %d 已不存在，跳过", rule.Antecedent)
			stats.Skipped++
			continue
		}
		recommended, ok := products[rule.Consequent]
		if !ok {
			u.logger.Warnf("规则后件商品 %d 已不存在，跳过", rule.Consequent)
			stats.Skipped++
			continue
		}

		note := buildRecommendationNote(main.Name, recommended.Name, rule)

		existing, err := repos.Recommendations.GetByPair(ctx, rule.Antecedent, rule.Consequent)
		if err != nil {
			return nil, fmt.Errorf("查询推荐 %d→%d 失败: %w", rule.Antecedent, rule.Consequent, err)
		}
		if existing == nil {
			rec := &model.ProductRecommendation{
				MainProductID:        rule.Antecedent,
				RecommendedProductID: rule.Consequent,
				Score:                rule.Confidence,
				CoOccurrenceCount:    rule.Count,
				LastAnalyzedAt:       time.Now(),
				Active:               true,
				Note:                 note,
			}
			if err := repos.Recommendations.Create(ctx, rec); err != nil {
				return nil, fmt.Errorf("创建推荐 %d→%d 失败: %w", rule.Antecedent, rule.Consequent, err)
			}
			stats.Created++
			continue
		}
		updated, err := repos.Recommendations.UpdateIfScoreHigher(ctx, rule.Antecedent, rule.Consequent, rule.Confidence, rule.Count, note)
		if err != nil {
			return nil, fmt.Errorf("更新推荐 %d→%d 失败: %w", rule.Antecedent, rule.Consequent, err)
		}
		if updated {
			stats.Updated++
		}
	}

	u.logger.Infof("推荐入库完成：新建 %d，更新 %d，跳过 %d", stats.Created, stats.Updated, stats.Skipped)
	return stats, nil
}

// buildRecommendationNote 推荐说明文案：商品名 + 三项指标 + 强度分档
func buildRecommendationNote(mainName, recommendedName string, rule *AssociationRule) string {
	return fmt.Sprintf("购买「%s」的顾客也购买「%s」：支持度 %.4f，置信度 %.4f，提升度 %.4f（%s）",
		mainName, recommendedName, rule.Support, rule.Confidence, rule.Lift,
		model.ClassifyStrength(rule.Confidence, rule.Lift))
}
