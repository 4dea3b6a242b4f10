package repository

import (
	"context"
	"time"

	"BasketSense/internal/model"

	"gorm.io/gorm"
)

// TransactionRepository 销售交易只读查询（挖掘提取 + 诊断计数）
type TransactionRepository interface {
	// CountInPeriod 时间段内创建的交易总数（不限状态，诊断用）
	CountInPeriod(ctx context.Context, start, end time.Time) (int64, error)
	// CountCompletedInPeriod 时间段内完成的交易数
	CountCompletedInPeriod(ctx context.Context, start, end time.Time) (int64, error)
	// CountCompletedInCategory 时间段内完成且含指定分类商品的交易数
	CountCompletedInCategory(ctx context.Context, start, end time.Time, categoryID uint64) (int64, error)
	// ListCompletedInPeriod 拉取时间段内完成的交易（含行项目）。
	// categoryID 非空时仅保留至少含一个该分类商品的交易——过滤的是交易整体，行项目不裁剪。
	ListCompletedInPeriod(ctx context.Context, start, end time.Time, categoryID *uint64) ([]*model.SalesTransaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建交易仓储
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) CountInPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.SalesTransaction{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&total).Error
	return total, err
}

func (r *transactionRepository) CountCompletedInPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.completedInPeriod(ctx, start, end).Count(&total).Error
	return total, err
}

func (r *transactionRepository) CountCompletedInCategory(ctx context.Context, start, end time.Time, categoryID uint64) (int64, error) {
	var total int64
	err := r.completedInPeriod(ctx, start, end).
		Where("id IN (?)", r.categoryTransactionIDs(categoryID)).
		Count(&total).Error
	return total, err
}

func (r *transactionRepository) ListCompletedInPeriod(ctx context.Context, start, end time.Time, categoryID *uint64) ([]*model.SalesTransaction, error) {
	db := r.completedInPeriod(ctx, start, end).Preload("Items")
	if categoryID != nil {
		db = db.Where("id IN (?)", r.categoryTransactionIDs(*categoryID))
	}
	var list []*model.SalesTransaction
	if err := db.Order("completed_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *transactionRepository) completedInPeriod(ctx context.Context, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.SalesTransaction{}).
		Where("status = ?", model.TransactionCompleted).
		Where("completed_at BETWEEN ? AND ?", start, end)
}

// categoryTransactionIDs 子查询：含指定分类商品的交易ID集合
func (r *transactionRepository) categoryTransactionIDs(categoryID uint64) *gorm.DB {
	return r.db.Model(&model.TransactionItem{}).
		Select("transaction_items.transaction_id").
		Joins("JOIN products ON products.id = transaction_items.product_id").
		Where("products.category_id = ?", categoryID)
}
