package service

import (
	"context"
	"fmt"
	"time"

	"BasketSense/internal/model"
	"BasketSense/internal/repository"

	"github.com/sirupsen/logrus"
)

// BasketExtractor 把时间段内的已完成交易还原为购物篮：
// 行项目按商品去重，丢弃少于 2 种商品的购物篮（无共现信号）。
type BasketExtractor struct {
	repo   repository.TransactionRepository
	logger *logrus.Logger
}

// NewBasketExtractor 创建购物篮提取器
func NewBasketExtractor(repo repository.TransactionRepository, logger *logrus.Logger) *BasketExtractor {
	return &BasketExtractor{repo: repo, logger: logger}
}

// Extract 提取购物篮。categoryID 非空时按"交易含该分类商品"筛选交易，
// 入选交易的完整购物篮参与挖掘（筛选的是交易，不裁剪行项目）。
// 没有符合条件的交易时返回空切片，不报错——由诊断层区分具体缺什么。
func (e *BasketExtractor) Extract(ctx context.Context, start, end time.Time, categoryID *uint64) ([]*model.Basket, error) {
	txns, err := e.repo.ListCompletedInPeriod(ctx, start, end, categoryID)
	if err != nil {
		return nil, fmt.Errorf("拉取已完成交易失败: %w", err)
	}

	baskets := make([]*model.Basket, 0, len(txns))
	dropped := 0
	for _, t := range txns {
		ids := make([]model.ProductID, 0, len(t.Items))
		for _, item := range t.Items {
			ids = append(ids, item.ProductID)
		}
		b := model.NewBasket(t.ID, ids)
		if b.ItemCount() < 2 {
			dropped++
			continue
		}
		baskets = append(baskets, b)
	}

	if dropped > 0 {
		e.logger.Infof("购物篮提取：%d 笔交易，丢弃 %d 个单品购物篮，保留 %d 个", len(txns), dropped, len(baskets))
	}
	return baskets, nil
}
