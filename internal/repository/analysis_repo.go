package repository

import (
	"context"

	"BasketSense/internal/model"

	"gorm.io/gorm"
)

// AnalysisRepository 分析运行与审计记录持久化。
// 审计表仅追加：每次运行发现的项集/规则各落一行，跨运行累积，永不改写。
type AnalysisRepository interface {
	CreateRun(ctx context.Context, run *model.AnalysisRun) error
	AppendRecord(ctx context.Context, record *model.AnalysisRecord) error
	ListRuns(ctx context.Context, page, pageSize int) ([]*model.AnalysisRun, int64, error)
	ListRecordsByRun(ctx context.Context, runUUID, kind string) ([]*model.AnalysisRecord, error)
}

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository 创建分析仓储
func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) CreateRun(ctx context.Context, run *model.AnalysisRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *analysisRepository) AppendRecord(ctx context.Context, record *model.AnalysisRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *analysisRepository) ListRuns(ctx context.Context, page, pageSize int) ([]*model.AnalysisRun, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	db := r.db.WithContext(ctx).Model(&model.AnalysisRun{})
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []*model.AnalysisRun
	if err := db.Order("started_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *analysisRepository) ListRecordsByRun(ctx context.Context, runUUID, kind string) ([]*model.AnalysisRecord, error) {
	db := r.db.WithContext(ctx).Where("run_uuid = ?", runUUID)
	if kind != "" {
		db = db.Where("kind = ?", kind)
	}
	var list []*model.AnalysisRecord
	if err := db.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
