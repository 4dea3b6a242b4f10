package repository

import (
	"context"
	"errors"
	"time"

	"BasketSense/internal/model"

	"gorm.io/gorm"
)

// RecommendationFilter 推荐列表查询条件。CategoryID 按主商品所属分类过滤
type RecommendationFilter struct {
	MainProductID *model.ProductID
	CategoryID    *uint64
	Active        *bool
}

// RecommendationRepository 商品推荐 upsert 与查询。
// 写路径约束：管线只写 score/co_occurrence_count/last_analyzed_at/note，
// active 永远不碰（运营停用的推荐不可被管线复活）。
type RecommendationRepository interface {
	// GetByPair 按有向对精确查询，不存在时返回 (nil, nil)
	GetByPair(ctx context.Context, main, recommended model.ProductID) (*model.ProductRecommendation, error)
	Create(ctx context.Context, rec *model.ProductRecommendation) error
	// UpdateIfScoreHigher 条件更新：仅当新分数严格大于现存分数时生效。
	// WHERE score < 新分数 的原子写法，避免并发运行间读-改-写丢失更新。
	UpdateIfScoreHigher(ctx context.Context, main, recommended model.ProductID, score float64, coOccurrence int, note string) (bool, error)
	List(ctx context.Context, filter RecommendationFilter, page, pageSize int) ([]*model.ProductRecommendation, int64, error)
	// SetActive 运营启用/停用（管线之外的唯一 active 写入口）
	SetActive(ctx context.Context, id uint64, active bool) error
}

type recommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository 创建推荐仓储
func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) GetByPair(ctx context.Context, main, recommended model.ProductID) (*model.ProductRecommendation, error) {
	var rec model.ProductRecommendation
	err := r.db.WithContext(ctx).
		Where("main_product_id = ? AND recommended_product_id = ?", main, recommended).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepository) Create(ctx context.Context, rec *model.ProductRecommendation) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recommendationRepository) UpdateIfScoreHigher(ctx context.Context, main, recommended model.ProductID, score float64, coOccurrence int, note string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.ProductRecommendation{}).
		Where("main_product_id = ? AND recommended_product_id = ? AND score < ?", main, recommended, score).
		Updates(map[string]interface{}{
			"score":               score,
			"co_occurrence_count": coOccurrence,
			"last_analyzed_at":    time.Now(),
			"note":                note,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *recommendationRepository) List(ctx context.Context, filter RecommendationFilter, page, pageSize int) ([]*model.ProductRecommendation, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	db := r.db.WithContext(ctx).Model(&model.ProductRecommendation{})
	if filter.MainProductID != nil {
		db = db.Where("main_product_id = ?", *filter.MainProductID)
	}
	if filter.CategoryID != nil {
		db = db.Joins("JOIN products ON products.id = product_recommendations.main_product_id").
			Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.Active != nil {
		db = db.Where("active = ?", *filter.Active)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []*model.ProductRecommendation
	if err := db.Order("score DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *recommendationRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	result := r.db.WithContext(ctx).Model(&model.ProductRecommendation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"active": active, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
