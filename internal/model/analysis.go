package model

import (
	"time"

	"gorm.io/datatypes"
)

// 审计记录类型
const (
	KindFrequentItemset = "frequent_itemset"
	KindAssociationRule = "association_rule"
)

// 分析运行状态
const (
	RunStatusCompleted = "completed"
	RunStatusNoResult  = "no_result"
	RunStatusFailed    = "failed"
)

// AnalysisRun 一次挖掘运行的记录：参数、时间段与汇总结果。
// 审计记录通过 run_uuid 归属于某次运行。
type AnalysisRun struct {
	ID            uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	RunUUID       string         `gorm:"column:run_uuid;type:varchar(64);uniqueIndex;not null;comment:运行全局唯一ID"`
	PeriodStart   time.Time      `gorm:"column:period_start;type:timestamp;not null;comment:分析时间段起"`
	PeriodEnd     time.Time      `gorm:"column:period_end;type:timestamp;not null;comment:分析时间段止"`
	MinSupport    float64        `gorm:"column:min_support;type:numeric(6,4);not null;comment:最小支持度"`
	MinConfidence float64        `gorm:"column:min_confidence;type:numeric(6,4);not null;comment:最小置信度"`
	CategoryID    *uint64        `gorm:"column:category_id;type:bigint;comment:分类过滤，可空"`
	BasketCount   int            `gorm:"column:basket_count;type:int;default:0;comment:参与挖掘的购物篮数"`
	ItemsetCount  int            `gorm:"column:itemset_count;type:int;default:0;comment:频繁项集数"`
	RuleCount     int            `gorm:"column:rule_count;type:int;default:0;comment:关联规则数"`
	GeneratedCnt  int            `gorm:"column:generated_count;type:int;default:0;comment:新建推荐数"`
	Status        string         `gorm:"column:status;type:varchar(16);not null;comment:状态：completed/no_result/failed"`
	Message       string         `gorm:"column:message;type:text;comment:面向运营的结果说明"`
	Params        datatypes.JSON `gorm:"column:params;type:jsonb;comment:完整请求参数快照"`
	StartedAt     time.Time      `gorm:"column:started_at;type:timestamp;default:now();comment:开始时间"`
	FinishedAt    *time.Time     `gorm:"column:finished_at;type:timestamp;comment:结束时间"`
}

// AnalysisRecord 审计表：每次运行发现的频繁项集与关联规则全部追加到这里，
// kind 区分两类，永不更新（仅追加，跨运行累积）。
// 频繁项集：ProductA 必填，二项集时 ProductB 非空且约定 ProductA < ProductB。
// 关联规则：ProductA=前件，ProductB=后件（有向）。
type AnalysisRecord struct {
	ID               uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	RunUUID          string     `gorm:"column:run_uuid;type:varchar(64);index;not null;comment:所属运行ID"`
	Kind             string     `gorm:"column:kind;type:varchar(32);index;not null;comment:类型：frequent_itemset/association_rule"`
	ProductA         ProductID  `gorm:"column:product_a;type:bigint;not null;comment:项集首项或规则前件"`
	ProductB         *ProductID `gorm:"column:product_b;type:bigint;comment:项集次项或规则后件，一项集为空"`
	Support          float64    `gorm:"column:support;type:numeric(10,6);not null;comment:支持度"`
	Confidence       *float64   `gorm:"column:confidence;type:numeric(10,6);comment:置信度，仅规则"`
	Lift             *float64   `gorm:"column:lift;type:numeric(10,6);comment:提升度，仅规则"`
	OccurrenceCount  int        `gorm:"column:occurrence_count;type:int;not null;comment:出现的购物篮数"`
	TotalBasketCount int        `gorm:"column:total_basket_count;type:int;not null;comment:购物篮总数"`
	PeriodStart      time.Time  `gorm:"column:period_start;type:timestamp;not null;comment:分析时间段起"`
	PeriodEnd        time.Time  `gorm:"column:period_end;type:timestamp;not null;comment:分析时间段止"`
	DiscoveredAt     time.Time  `gorm:"column:discovered_at;type:timestamp;default:now();comment:发现时间"`
}

func (AnalysisRun) TableName() string    { return "analysis_runs" }
func (AnalysisRecord) TableName() string { return "analysis_records" }
