package model

import (
	"time"
)

// 交易状态枚举，挖掘只认 completed
const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionCancelled = "cancelled"
)

// SalesTransaction 销售交易表（挖掘管线只读）
type SalesTransaction struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	TransactionUUID string     `gorm:"column:transaction_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	Status          string     `gorm:"column:status;type:varchar(16);default:'pending';index;comment:状态：pending/completed/cancelled"`
	TotalAmount     float64    `gorm:"column:total_amount;type:numeric(18,2);default:0;comment:交易总额"`
	CompletedAt     *time.Time `gorm:"column:completed_at;type:timestamp;index;comment:完成时间，completed状态必填"`
	CreatedAt       time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID"`
}

// TransactionItem 交易行项目，同一商品可能出现多行（购物篮构建时去重）
type TransactionItem struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	TransactionID uint64    `gorm:"column:transaction_id;type:bigint;index;not null;comment:关联交易ID"`
	ProductID     ProductID `gorm:"column:product_id;type:bigint;index;not null;comment:商品ID"`
	Quantity      int       `gorm:"column:quantity;type:int;default:1;comment:数量"`
	UnitPrice     float64   `gorm:"column:unit_price;type:numeric(18,2);default:0;comment:单价"`
}

func (SalesTransaction) TableName() string { return "sales_transactions" }
func (TransactionItem) TableName() string  { return "transaction_items" }

// Basket 购物篮：一笔交易内去重后的商品ID集合（仅内存，不落库）。
// 保留约束：参与挖掘的购物篮至少含 2 个不同商品。
type Basket struct {
	TransactionID uint64
	Items         map[ProductID]struct{}
}

// NewBasket 从行项目商品ID列表构建去重购物篮
func NewBasket(transactionID uint64, productIDs []ProductID) *Basket {
	b := &Basket{
		TransactionID: transactionID,
		Items:         make(map[ProductID]struct{}, len(productIDs)),
	}
	for _, pid := range productIDs {
		b.Items[pid] = struct{}{}
	}
	return b
}

// Contains 购物篮是否包含指定商品
func (b *Basket) Contains(pid ProductID) bool {
	_, ok := b.Items[pid]
	return ok
}

// ContainsPair 购物篮是否同时包含两个商品
func (b *Basket) ContainsPair(a, c ProductID) bool {
	return b.Contains(a) && b.Contains(c)
}

// ItemCount 去重后的商品个数
func (b *Basket) ItemCount() int { return len(b.Items) }
