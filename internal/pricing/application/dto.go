package application

import (
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// PricingModelType 定价模型类型
type PricingModelType string

const (
	PricingModelTypeBlackScholes PricingModelType = "BLACK_SCHOLES"
	PricingModelTypeBinomial     PricingModelType = "BINOMIAL"
	PricingModelTypeMonteCarlo   PricingModelType = "MONTE_CARLO"
)

// ParametersRequest 合约参数，所有请求共用。
// Spot/Strike 不加 required 绑定：零是合法的退化输入，校验交给领域层。
type ParametersRequest struct {
	Spot       decimal.Decimal `json:"spot"`
	Strike     decimal.Decimal `json:"strike"`
	Maturity   float64         `json:"maturity"`
	Rate       float64         `json:"rate"`
	Volatility float64         `json:"volatility"`
	OptionType string          `json:"option_type" binding:"required"`
}

// PriceRequest 单模型定价请求
type PriceRequest struct {
	Parameters ParametersRequest `json:"parameters"`
	Model      PricingModelType  `json:"model" binding:"required"`
	// Steps 二叉树步数，BINOMIAL 模型专用；缺省取配置默认值
	Steps int `json:"steps,omitempty"`
	// Paths 模拟路径数，MONTE_CARLO 模型专用；缺省取配置默认值
	Paths int `json:"paths,omitempty"`
	// Seed 蒙特卡洛随机种子，用于可复现模拟；缺省以时间播种
	Seed *int64 `json:"seed,omitempty"`
}

// PriceDTO 单模型定价结果
type PriceDTO struct {
	Model PricingModelType `json:"model"`
	Price decimal.Decimal  `json:"price"`
	// StdError 蒙特卡洛估计的标准误，其余模型为空
	StdError *decimal.Decimal `json:"std_error,omitempty"`
}

// GreeksDTO 希腊字母计算结果
type GreeksDTO struct {
	Price  decimal.Decimal    `json:"price"`
	Greeks map[string]float64 `json:"greeks"`
	D1     float64            `json:"d1"`
	D2     float64            `json:"d2"`
}

// CompareRequest 三模型对比请求
type CompareRequest struct {
	Parameters ParametersRequest `json:"parameters"`
	Steps      int               `json:"steps,omitempty"`
	Paths      int               `json:"paths,omitempty"`
	Seed       *int64            `json:"seed,omitempty"`
}

// ComparisonEntry 单模型在对比中的条目
type ComparisonEntry struct {
	Model PricingModelType `json:"model"`
	Price decimal.Decimal  `json:"price"`
	// DeviationFromAnalytic 与解析价格的绝对偏差
	DeviationFromAnalytic decimal.Decimal `json:"deviation_from_analytic"`
}

// ComparisonDTO 三模型对比结果
type ComparisonDTO struct {
	Entries []ComparisonEntry `json:"entries"`
	Steps   int               `json:"steps"`
	Paths   int               `json:"paths"`
}

// CurveRequest 收益/损益曲线请求
type CurveRequest struct {
	Parameters ParametersRequest `json:"parameters"`
	// Points 采样点数；缺省取配置默认值
	Points int `json:"points,omitempty"`
	// Direction 持仓方向，仅 PnL 曲线使用
	Direction string `json:"direction,omitempty"`
	// Price 建仓成本；缺省时取解析引擎价格
	Price *decimal.Decimal `json:"price,omitempty"`
}

// CurveDTO 曲线计算结果
type CurveDTO struct {
	Spots  []float64 `json:"spots"`
	Values []float64 `json:"values"`
}

// SweepDTO 希腊字母扫描结果
type SweepDTO struct {
	Points []domain.GreekPoint `json:"points"`
}
