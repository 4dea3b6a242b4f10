package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"BasketSense/internal/model"
	"BasketSense/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RunParams 一次关联分析的完整参数
type RunParams struct {
	PeriodStart   time.Time `json:"period_start"`
	PeriodEnd     time.Time `json:"period_end"`
	MinSupport    float64   `json:"min_support"`
	MinConfidence float64   `json:"min_confidence"`
	CategoryID    *uint64   `json:"category_id,omitempty"`
}

// RunResult 运行成功后的汇总
type RunResult struct {
	RunUUID              string `json:"run_uuid"`
	BasketCount          int    `json:"basket_count"`
	FrequentItemsetCount int    `json:"frequent_itemset_count"`
	RuleCount            int    `json:"rule_count"`
	GeneratedCount       int    `json:"generated_count"`
	UpdatedCount         int    `json:"updated_count"`
	Message              string `json:"message"`
}

// AnalysisService 关联分析总调度：参数校验 → 预检 → 单事务内
// 提取/挖掘/规则生成/推荐入库 → 运行记录落库。
// 预检失败或无规则产出时返回 *DiagnosticError，消息可直接展示给运营。
type AnalysisService struct {
	uow      repository.UnitOfWork
	repos    *repository.RepoSet
	upserter *RecommendationUpserter
	logger   *logrus.Logger
}

// NewAnalysisService 创建分析服务
func NewAnalysisService(db *gorm.DB, logger *logrus.Logger) *AnalysisService {
	return &AnalysisService{
		uow:      repository.NewUnitOfWork(db),
		repos:    repository.NewRepoSet(db),
		upserter: NewRecommendationUpserter(logger),
		logger:   logger,
	}
}

// Run 执行一次完整的关联分析。
// 事务边界：提取到推荐入库的全部写操作在同一数据库事务内，任何一步
// 出错（含无规则产出的诊断中止）整轮审计与推荐写入一并回滚；
// 只有运行记录（analysis_runs）在事务外尽力落库，保留失败轨迹。
func (s *AnalysisService) Run(ctx context.Context, params RunParams) (*RunResult, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	start, end := normalizePeriod(params.PeriodStart, params.PeriodEnd)
	run := newRunRecord(params, start, end)

	diag, err := s.preflight(ctx, start, end, params.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("分析预检失败: %w", err)
	}
	if diag != nil {
		s.recordRun(ctx, run, model.RunStatusNoResult, diag.Message)
		return nil, diag
	}

	result := &RunResult{RunUUID: run.RunUUID}
	err = s.uow.WithinRun(ctx, func(ctx context.Context, repos *repository.RepoSet) error {
		extractor := NewBasketExtractor(repos.Transactions, s.logger)
		baskets, err := extractor.Extract(ctx, start, end, params.CategoryID)
		if err != nil {
			return err
		}
		if len(baskets) == 0 {
			completed, countErr := repos.Transactions.CountCompletedInPeriod(ctx, start, end)
			if countErr != nil {
				return countErr
			}
			return newDiagnostic(DiagNoMultiItemBaskets,
				"找到 %d 笔已完成交易，但没有一笔包含 2 种以上不同商品；Apriori 关联分析至少需要双品购物篮才能统计共现", completed)
		}
		total := len(baskets)

		mining := MineFrequentItemsets(baskets, params.MinSupport, func(fs *FrequentItemset) {
			s.appendItemsetRecord(ctx, repos, run, fs, total)
		})
		rules := GenerateRules(mining, params.MinConfidence, func(rule *AssociationRule) {
			s.appendRuleRecord(ctx, repos, run, rule)
		})
		if len(rules) == 0 {
			return &DiagnosticError{Code: DiagNoRules, Message: buildNoRulesMessage(total, params.MinConfidence)}
		}

		stats, err := s.upserter.Apply(ctx, repos, rules)
		if err != nil {
			return err
		}

		result.BasketCount = total
		result.FrequentItemsetCount = len(mining.Itemsets)
		result.RuleCount = len(rules)
		result.GeneratedCount = stats.Created
		result.UpdatedCount = stats.Updated
		result.Message = fmt.Sprintf("分析完成：%d 个购物篮，%d 个频繁项集，%d 条关联规则；新建推荐 %d 条，更新 %d 条",
			total, len(mining.Itemsets), len(rules), stats.Created, stats.Updated)

		run.BasketCount = total
		run.ItemsetCount = len(mining.Itemsets)
		run.RuleCount = len(rules)
		run.GeneratedCnt = stats.Created
		run.Status = model.RunStatusCompleted
		run.Message = result.Message
		now := time.Now()
		run.FinishedAt = &now
		return repos.Analysis.CreateRun(ctx, run)
	})
	if err != nil {
		var diagErr *DiagnosticError
		if errors.As(err, &diagErr) {
			s.recordRun(ctx, run, model.RunStatusNoResult, diagErr.Message)
			return nil, diagErr
		}
		s.logger.WithError(err).WithField("run_uuid", run.RunUUID).Error("分析运行失败，本轮写入已全部回滚")
		s.recordRun(ctx, run, model.RunStatusFailed, "分析运行失败，详情见服务日志")
		return nil, fmt.Errorf("分析运行失败: %w", err)
	}

	s.logger.Infof("分析运行 %s：%s", run.RunUUID, result.Message)
	return result, nil
}

// preflight 逐道闸门预检，返回第一个不满足项的诊断（只读，事务外）
func (s *AnalysisService) preflight(ctx context.Context, start, end time.Time, categoryID *uint64) (*DiagnosticError, error) {
	raw, err := s.repos.Transactions.CountInPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if raw == 0 {
		return newDiagnostic(DiagNoTransactions,
			"时间段 %s 至 %s 内没有任何交易记录，请扩大时间范围",
			start.Format("2006-01-02"), end.Format("2006-01-02")), nil
	}
	completed, err := s.repos.Transactions.CountCompletedInPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if completed == 0 {
		return newDiagnostic(DiagNoCompleted,
			"时间段内找到 %d 笔交易，但没有已完成状态的交易；只有已完成交易参与关联分析", raw), nil
	}
	if categoryID != nil {
		inCategory, err := s.repos.Transactions.CountCompletedInCategory(ctx, start, end, *categoryID)
		if err != nil {
			return nil, err
		}
		if inCategory == 0 {
			return newDiagnostic(DiagNoCategoryMatch,
				"时间段内有 %d 笔已完成交易，但没有一笔包含所选分类的商品，请更换分类或去掉分类过滤", completed), nil
		}
	}
	return nil, nil
}

// appendItemsetRecord 频繁项集审计落库。单条失败只告警不中止——
// 挖掘结果比审计完整性更重要。
func (s *AnalysisService) appendItemsetRecord(ctx context.Context, repos *repository.RepoSet, run *model.AnalysisRun, fs *FrequentItemset, totalBaskets int) {
	record := &model.AnalysisRecord{
		RunUUID:          run.RunUUID,
		Kind:             model.KindFrequentItemset,
		ProductA:         fs.ProductA,
		ProductB:         fs.ProductB,
		Support:          fs.Support,
		OccurrenceCount:  fs.Count,
		TotalBasketCount: totalBaskets,
		PeriodStart:      run.PeriodStart,
		PeriodEnd:        run.PeriodEnd,
		DiscoveredAt:     time.Now(),
	}
	if err := repos.Analysis.AppendRecord(ctx, record); err != nil {
		s.logger.WithError(err).Warnf("频繁项集审计落库失败（项集 %d/%v），继续", fs.ProductA, fs.ProductB)
	}
}

// appendRuleRecord 关联规则审计落库（同样尽力而为）
func (s *AnalysisService) appendRuleRecord(ctx context.Context, repos *repository.RepoSet, run *model.AnalysisRun, rule *AssociationRule) {
	consequent := rule.Consequent
	confidence := rule.Confidence
	lift := rule.Lift
	record := &model.AnalysisRecord{
		RunUUID:          run.RunUUID,
		Kind:             model.KindAssociationRule,
		ProductA:         rule.Antecedent,
		ProductB:         &consequent,
		Support:          rule.Support,
		Confidence:       &confidence,
		Lift:             &lift,
		OccurrenceCount:  rule.Count,
		TotalBasketCount: rule.TotalBaskets,
		PeriodStart:      run.PeriodStart,
		PeriodEnd:        run.PeriodEnd,
		DiscoveredAt:     time.Now(),
	}
	if err := repos.Analysis.AppendRecord(ctx, record); err != nil {
		s.logger.WithError(err).Warnf("关联规则审计落库失败（%d→%d），继续", rule.Antecedent, rule.Consequent)
	}
}

// recordRun 事务外尽力落运行记录，保留无结果/失败轨迹
func (s *AnalysisService) recordRun(ctx context.Context, run *model.AnalysisRun, status, message string) {
	run.Status = status
	run.Message = message
	now := time.Now()
	run.FinishedAt = &now
	if err := s.repos.Analysis.CreateRun(ctx, run); err != nil {
		s.logger.WithError(err).Warnf("运行记录落库失败（%s）", run.RunUUID)
	}
}

func validateParams(params RunParams) error {
	if params.PeriodStart.After(params.PeriodEnd) {
		return newDiagnostic(DiagInvalidParams, "时间段起始不能晚于结束")
	}
	if params.MinSupport < 0.01 || params.MinSupport > 1 {
		return newDiagnostic(DiagInvalidParams, "最小支持度需在 0.01 ～ 1 之间，当前为 %.4f", params.MinSupport)
	}
	if params.MinConfidence < 0.01 || params.MinConfidence > 1 {
		return newDiagnostic(DiagInvalidParams, "最小置信度需在 0.01 ～ 1 之间，当前为 %.4f", params.MinConfidence)
	}
	return nil
}

// normalizePeriod 把日期精度的时间段展开为 [起日 00:00:00, 止日 23:59:59]
func normalizePeriod(start, end time.Time) (time.Time, time.Time) {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
	return s, e
}

func newRunRecord(params RunParams, start, end time.Time) *model.AnalysisRun {
	snapshot, _ := json.Marshal(params)
	return &model.AnalysisRun{
		RunUUID:       uuid.NewString(),
		PeriodStart:   start,
		PeriodEnd:     end,
		MinSupport:    params.MinSupport,
		MinConfidence: params.MinConfidence,
		CategoryID:    params.CategoryID,
		Params:        datatypes.JSON(snapshot),
		StartedAt:     time.Now(),
	}
}
