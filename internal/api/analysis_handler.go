package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"BasketSense/internal/config"
	"BasketSense/internal/model"
	"BasketSense/internal/repository"
	"BasketSense/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AnalysisHandler 关联分析接口：触发运行 + 运行/审计查询
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	analysisRepo    repository.AnalysisRepository
	cfg             *config.Config
	logger          *logrus.Logger
}

// NewAnalysisHandler 创建 AnalysisHandler
func NewAnalysisHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: service.NewAnalysisService(db, logger),
		analysisRepo:    repository.NewAnalysisRepository(db),
		cfg:             cfg,
		logger:          logger,
	}
}

// runAnalysisRequest 触发分析的请求体。日期为 2006-01-02 格式；
// 阈值缺省时使用配置的默认值
type runAnalysisRequest struct {
	PeriodStart   string  `json:"period_start" binding:"required"`
	PeriodEnd     string  `json:"period_end" binding:"required"`
	MinSupport    float64 `json:"min_support"`
	MinConfidence float64 `json:"min_confidence"`
	CategoryID    *uint64 `json:"category_id"`
}

// RunAnalysis 触发一次关联分析
// @Summary 对时间段内已完成交易做购物篮关联分析，生成商品推荐
// @Param body body runAnalysisRequest true "分析参数"
// @Success 200 {object} service.RunResult
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string "前置条件不满足，error 为可展示的诊断消息"
// @Router /api/analysis/run [post]
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	var req runAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体不合法: " + err.Error()})
		return
	}
	start, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period_start 需为 YYYY-MM-DD 格式"})
		return
	}
	end, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period_end 需为 YYYY-MM-DD 格式"})
		return
	}
	params := service.RunParams{
		PeriodStart:   start,
		PeriodEnd:     end,
		MinSupport:    req.MinSupport,
		MinConfidence: req.MinConfidence,
		CategoryID:    req.CategoryID,
	}
	if params.MinSupport == 0 {
		params.MinSupport = h.cfg.Mining.DefaultMinSupport
	}
	if params.MinConfidence == 0 {
		params.MinConfidence = h.cfg.Mining.DefaultMinConfidence
	}

	result, err := h.analysisService.Run(c.Request.Context(), params)
	if err != nil {
		var diag *service.DiagnosticError
		if errors.As(err, &diag) {
			status := http.StatusUnprocessableEntity
			if diag.Code == service.DiagInvalidParams {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": diag.Message, "code": diag.Code})
			return
		}
		h.logger.WithError(err).Error("RunAnalysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListRuns 运行历史 GET /api/analysis/runs?page=1&page_size=20
func (h *AnalysisHandler) ListRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	runs, total, err := h.analysisRepo.ListRuns(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListRuns failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "runs": runs})
}

// ListRunRecords 某次运行的审计明细 GET /api/analysis/runs/:run_uuid/records?kind=association_rule
// 每行附带置信度/强度分档标签，供报表直接展示
func (h *AnalysisHandler) ListRunRecords(c *gin.Context) {
	runUUID := c.Param("run_uuid")
	if runUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "run_uuid is required"})
		return
	}
	kind := c.Query("kind")
	if kind != "" && kind != model.KindFrequentItemset && kind != model.KindAssociationRule {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind 仅支持 frequent_itemset / association_rule"})
		return
	}

	records, err := h.analysisRepo.ListRecordsByRun(c.Request.Context(), runUUID, kind)
	if err != nil {
		h.logger.WithError(err).Error("ListRunRecords failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows := make([]gin.H, 0, len(records))
	for _, r := range records {
		row := gin.H{"record": r}
		if r.Kind == model.KindAssociationRule && r.Confidence != nil && r.Lift != nil {
			row["confidence_level"] = model.ClassifyConfidence(*r.Confidence)
			row["strength"] = model.ClassifyStrength(*r.Confidence, *r.Lift)
		}
		rows = append(rows, row)
	}
	c.JSON(http.StatusOK, gin.H{"run_uuid": runUUID, "records": rows})
}
