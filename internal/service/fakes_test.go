package service

import (
	"context"
	"io"
	"time"

	"BasketSense/internal/model"
	"BasketSense/internal/repository"

	"github.com/sirupsen/logrus"
)

// 静默日志器，测试用
func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeTransactionRepo struct {
	transactions []*model.SalesTransaction
	categoryHits map[uint64][]uint64 // categoryID -> 含该分类商品的交易ID
	rawCount     int64
}

func (f *fakeTransactionRepo) CountInPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	if f.rawCount > 0 {
		return f.rawCount, nil
	}
	return int64(len(f.transactions)), nil
}

func (f *fakeTransactionRepo) CountCompletedInPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	for _, t := range f.transactions {
		if t.Status == model.TransactionCompleted {
			n++
		}
	}
	return n, nil
}

func (f *fakeTransactionRepo) CountCompletedInCategory(ctx context.Context, start, end time.Time, categoryID uint64) (int64, error) {
	return int64(len(f.categoryHits[categoryID])), nil
}

func (f *fakeTransactionRepo) ListCompletedInPeriod(ctx context.Context, start, end time.Time, categoryID *uint64) ([]*model.SalesTransaction, error) {
	var list []*model.SalesTransaction
	for _, t := range f.transactions {
		if t.Status != model.TransactionCompleted {
			continue
		}
		if categoryID != nil && !containsID(f.categoryHits[*categoryID], t.ID) {
			continue
		}
		list = append(list, t)
	}
	return list, nil
}

func containsID(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeProductRepo struct {
	products map[model.ProductID]*model.Product
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []model.ProductID) (map[model.ProductID]*model.Product, error) {
	result := make(map[model.ProductID]*model.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

type pairKey struct {
	main, recommended model.ProductID
}

// fakeRecommendationRepo 内存版推荐仓储：条件更新语义与真实实现一致
// （仅 score 严格变大时更新，active 永不改写）
type fakeRecommendationRepo struct {
	rows map[pairKey]*model.ProductRecommendation
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{rows: make(map[pairKey]*model.ProductRecommendation)}
}

func (f *fakeRecommendationRepo) GetByPair(ctx context.Context, main, recommended model.ProductID) (*model.ProductRecommendation, error) {
	if rec, ok := f.rows[pairKey{main, recommended}]; ok {
		return rec, nil
	}
	return nil, nil
}

func (f *fakeRecommendationRepo) Create(ctx context.Context, rec *model.ProductRecommendation) error {
	f.rows[pairKey{rec.MainProductID, rec.RecommendedProductID}] = rec
	return nil
}

func (f *fakeRecommendationRepo) UpdateIfScoreHigher(ctx context.Context, main, recommended model.ProductID, score float64, coOccurrence int, note string) (bool, error) {
	rec, ok := f.rows[pairKey{main, recommended}]
	if !ok || rec.Score >= score {
		return false, nil
	}
	rec.Score = score
	rec.CoOccurrenceCount = coOccurrence
	rec.Note = note
	rec.LastAnalyzedAt = time.Now()
	return true, nil
}

func (f *fakeRecommendationRepo) List(ctx context.Context, filter repository.RecommendationFilter, page, pageSize int) ([]*model.ProductRecommendation, int64, error) {
	var list []*model.ProductRecommendation
	for _, rec := range f.rows {
		list = append(list, rec)
	}
	return list, int64(len(list)), nil
}

func (f *fakeRecommendationRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	for _, rec := range f.rows {
		if rec.ID == id {
			rec.Active = active
			return nil
		}
	}
	return nil
}

type fakeAnalysisRepo struct {
	runs    []*model.AnalysisRun
	records []*model.AnalysisRecord
}

func (f *fakeAnalysisRepo) CreateRun(ctx context.Context, run *model.AnalysisRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeAnalysisRepo) AppendRecord(ctx context.Context, record *model.AnalysisRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAnalysisRepo) ListRuns(ctx context.Context, page, pageSize int) ([]*model.AnalysisRun, int64, error) {
	return f.runs, int64(len(f.runs)), nil
}

func (f *fakeAnalysisRepo) ListRecordsByRun(ctx context.Context, runUUID, kind string) ([]*model.AnalysisRecord, error) {
	var list []*model.AnalysisRecord
	for _, r := range f.records {
		if r.RunUUID == runUUID && (kind == "" || r.Kind == kind) {
			list = append(list, r)
		}
	}
	return list, nil
}

// fakeUnitOfWork 不带真实事务，直接用同一套仓储执行 fn。
// 诊断中止的"回滚"对断言无影响：测试按 records 中的 run_uuid 归属校验。
type fakeUnitOfWork struct {
	repos *repository.RepoSet
}

func (f *fakeUnitOfWork) WithinRun(ctx context.Context, fn func(ctx context.Context, repos *repository.RepoSet) error) error {
	return fn(ctx, f.repos)
}

// newTestAnalysisService 组装一套全内存的分析服务
func newTestAnalysisService(txns *fakeTransactionRepo, products *fakeProductRepo, recs *fakeRecommendationRepo, analysis *fakeAnalysisRepo) *AnalysisService {
	repos := &repository.RepoSet{
		Transactions:    txns,
		Products:        products,
		Recommendations: recs,
		Analysis:        analysis,
	}
	logger := testLogger()
	return &AnalysisService{
		uow:      &fakeUnitOfWork{repos: repos},
		repos:    repos,
		upserter: NewRecommendationUpserter(logger),
		logger:   logger,
	}
}

// completedTransaction 构造一笔已完成交易
func completedTransaction(id uint64, productIDs ...model.ProductID) *model.SalesTransaction {
	now := time.Now()
	t := &model.SalesTransaction{
		ID:          id,
		Status:      model.TransactionCompleted,
		CompletedAt: &now,
	}
	for _, pid := range productIDs {
		t.Items = append(t.Items, model.TransactionItem{TransactionID: id, ProductID: pid, Quantity: 1})
	}
	return t
}

// testBaskets 直接构造购物篮（跳过提取）
func testBaskets(itemSets ...[]model.ProductID) []*model.Basket {
	baskets := make([]*model.Basket, 0, len(itemSets))
	for i, items := range itemSets {
		baskets = append(baskets, model.NewBasket(uint64(i+1), items))
	}
	return baskets
}
