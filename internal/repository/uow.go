package repository

import (
	"context"

	"gorm.io/gorm"
)

// 推荐生成运行的 Postgres 会话级咨询锁键，防止两次运行并发 upsert 同一推荐对
const recommendationRunLockKey = 7342001

// RepoSet 一组绑定到同一 *gorm.DB（或同一事务）的仓储
type RepoSet struct {
	Transactions    TransactionRepository
	Products        ProductRepository
	Recommendations RecommendationRepository
	Analysis        AnalysisRepository
}

// NewRepoSet 基于同一连接/事务创建全套仓储
func NewRepoSet(db *gorm.DB) *RepoSet {
	return &RepoSet{
		Transactions:    NewTransactionRepository(db),
		Products:        NewProductRepository(db),
		Recommendations: NewRecommendationRepository(db),
		Analysis:        NewAnalysisRepository(db),
	}
}

// UnitOfWork 把一次挖掘运行的全部写操作包进单个数据库事务：
// fn 返回错误则审计与推荐写入全部回滚，读者永远看不到半提交的运行。
type UnitOfWork interface {
	WithinRun(ctx context.Context, fn func(ctx context.Context, repos *RepoSet) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork 创建基于 gorm 事务的工作单元
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) WithinRun(ctx context.Context, fn func(ctx context.Context, repos *RepoSet) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 事务级咨询锁：并发运行在此排队，事务结束自动释放
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", recommendationRunLockKey).Error; err != nil {
			return err
		}
		return fn(ctx, NewRepoSet(tx))
	})
}
