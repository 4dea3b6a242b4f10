package repository

import (
	"context"

	"BasketSense/internal/model"

	"gorm.io/gorm"
)

// ProductRepository 商品目录只读查询
type ProductRepository interface {
	// GetByIDs 批量查询商品，返回 map（缺失的ID不在 map 中，调用方据此识别已删除商品）
	GetByIDs(ctx context.Context, ids []model.ProductID) (map[model.ProductID]*model.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []model.ProductID) (map[model.ProductID]*model.Product, error) {
	result := make(map[model.ProductID]*model.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var list []*model.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for _, p := range list {
		result[p.ID] = p
	}
	return result, nil
}
