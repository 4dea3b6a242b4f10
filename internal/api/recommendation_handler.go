package api

import (
	"errors"
	"net/http"
	"strconv"

	"BasketSense/internal/model"
	"BasketSense/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RecommendationHandler 商品推荐查询与运营启停接口
type RecommendationHandler struct {
	recRepo repository.RecommendationRepository
	logger  *logrus.Logger
}

// NewRecommendationHandler 创建 RecommendationHandler
func NewRecommendationHandler(db *gorm.DB, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recRepo: repository.NewRecommendationRepository(db),
		logger:  logger,
	}
}

// ListRecommendations 推荐列表（score 降序）
// GET /api/recommendations?product_id=1&category_id=2&active=true&page=1&page_size=20
func (h *RecommendationHandler) ListRecommendations(c *gin.Context) {
	var filter repository.RecommendationFilter
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id 需为数字"})
			return
		}
		pid := model.ProductID(id)
		filter.MainProductID = &pid
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_id 需为数字"})
			return
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "active 需为 true/false"})
			return
		}
		filter.Active = &active
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	list, total, err := h.recRepo.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListRecommendations failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "recommendations": list})
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive 运营启用/停用某条推荐（管线之外 active 的唯一写入口）
// PUT /api/recommendations/:id/active
func (h *RecommendationHandler) SetActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id 需为数字"})
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体不合法: " + err.Error()})
		return
	}

	if err := h.recRepo.SetActive(c.Request.Context(), id, *req.Active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "推荐不存在"})
			return
		}
		h.logger.WithError(err).Error("SetActive failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "active": *req.Active})
}
