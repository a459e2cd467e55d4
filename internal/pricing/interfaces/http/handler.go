package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/logger"
	"github.com/wyfcoding/optionpricing/pkg/response"
)

// PricingHandler 负责处理与期权定价相关的 HTTP 请求
type PricingHandler struct {
	svc *application.PricingService
}

// NewPricingHandler 创建 HTTP 处理器
func NewPricingHandler(svc *application.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *PricingHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/pricing")
	{
		api.POST("/price", h.Price)
		api.POST("/greeks", h.Greeks)
		api.POST("/greeks/sweep", h.GreekSweep)
		api.POST("/compare", h.Compare)
		api.POST("/payoff", h.PayoffCurve)
		api.POST("/pnl", h.PnLCurve)
	}
}

// fail 按错误类别映射 HTTP 状态码：参数错误返回 400，其余返回 500
func (h *PricingHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidParameter) {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}
	logger.Error(c.Request.Context(), "pricing request failed", "error", err)
	response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error())
}

// Price 按指定模型为欧式期权定价
func (h *PricingHandler) Price(c *gin.Context) {
	var req application.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	dto, err := h.svc.Price(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, dto)
}

// Greeks 计算解析希腊字母
func (h *PricingHandler) Greeks(c *gin.Context) {
	var req application.ParametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	dto, err := h.svc.Greeks(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, dto)
}

// GreekSweep 在标的价格区间上扫描价格与希腊字母
func (h *PricingHandler) GreekSweep(c *gin.Context) {
	var req application.CurveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	dto, err := h.svc.GreekSweep(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, dto)
}

// Compare 对比三种模型的定价结果
func (h *PricingHandler) Compare(c *gin.Context) {
	var req application.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	dto, err := h.svc.Compare(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, dto)
}

// PayoffCurve 计算到期收益曲线
func (h *PricingHandler) PayoffCurve(c *gin.Context) {
	var req application.CurveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	dto, err := h.svc.PayoffCurve(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, dto)
}

// PnLCurve 计算到期损益曲线
func (h *PricingHandler) PnLCurve(c *gin.Context) {
	var req application.CurveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	dto, err := h.svc.PnLCurve(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, dto)
}
