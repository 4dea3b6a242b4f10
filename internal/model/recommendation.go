package model

import (
	"time"
)

// ProductRecommendation 商品推荐表（长期存在，挖掘管线 upsert 维护）。
// (main_product_id, recommended_product_id) 为有向对，唯一约束。
// active 仅由运营手工切换，挖掘管线永不改写（不得复活被停用的推荐）。
type ProductRecommendation struct {
	ID                   uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	MainProductID        ProductID `gorm:"column:main_product_id;type:bigint;not null;uniqueIndex:uk_main_recommended,priority:1;comment:主商品ID"`
	RecommendedProductID ProductID `gorm:"column:recommended_product_id;type:bigint;not null;uniqueIndex:uk_main_recommended,priority:2;comment:被推荐商品ID"`
	Score                float64   `gorm:"column:score;type:numeric(10,6);not null;comment:推荐分=产生该推荐的规则置信度"`
	CoOccurrenceCount    int       `gorm:"column:co_occurrence_count;type:int;default:0;comment:共现购物篮数"`
	LastAnalyzedAt       time.Time `gorm:"column:last_analyzed_at;type:timestamp;default:now();comment:最近一次分析时间"`
	Active               bool      `gorm:"column:active;type:boolean;default:true;comment:是否启用，仅运营可改"`
	Note                 string    `gorm:"column:note;type:text;comment:说明，记录支持度/置信度/提升度"`
	CreatedAt            time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt            time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

func (ProductRecommendation) TableName() string { return "product_recommendations" }
