package model

import (
	"time"
)

// ProductID 商品ID强类型，防止与其他数值ID（分类ID、交易ID）混用
type ProductID uint64

// Category 商品分类
type Category struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name      string    `gorm:"column:name;type:varchar(64);uniqueIndex;not null;comment:分类名称"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// Product 商品表，推荐管线只读：解析商品是否存在、名称（用于审计描述）与所属分类
type Product struct {
	ID         ProductID `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name       string    `gorm:"column:name;type:varchar(255);not null;comment:商品名称"`
	CategoryID uint64    `gorm:"column:category_id;type:bigint;index;not null;comment:所属分类ID"`
	Price      float64   `gorm:"column:price;type:numeric(18,2);default:0;comment:售价"`
	IsActive   bool      `gorm:"column:is_active;type:boolean;default:true;comment:是否上架"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt  time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

func (Category) TableName() string { return "categories" }
func (Product) TableName() string  { return "products" }
