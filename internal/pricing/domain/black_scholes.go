package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal 标准正态分布，解析引擎的 Φ 与 φ 都取自这里
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Greeks 希腊字母。
// Vega 与 Rho 按每 1 个百分点变动报告（除以 100），Theta 按每日历日报告（除以 365）。
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// Map 以名称到数值的映射返回希腊字母
func (g Greeks) Map() map[string]float64 {
	return map[string]float64{
		"delta": g.Delta,
		"gamma": g.Gamma,
		"vega":  g.Vega,
		"theta": g.Theta,
		"rho":   g.Rho,
	}
}

// BlackScholesEngine Black-Scholes-Merton 闭式解引擎。
// 纯标量运算，无迭代，结果在浮点精度内精确且确定。
// σ·√T = 0 时 d1/d2 未定义，输出为 NaN/Inf，引擎不做特殊处理。
type BlackScholesEngine struct{}

// NewBlackScholesEngine 创建解析引擎
func NewBlackScholesEngine() *BlackScholesEngine {
	return &BlackScholesEngine{}
}

// d1 = (ln(S/K) + (r + σ²/2)·T) / (σ·√T)
func (e *BlackScholesEngine) d1(p OptionParameters) float64 {
	return (math.Log(p.Spot/p.Strike) + (p.Rate+0.5*p.Volatility*p.Volatility)*p.Maturity) /
		(p.Volatility * math.Sqrt(p.Maturity))
}

// d2 = d1 - σ·√T
func (e *BlackScholesEngine) d2(p OptionParameters) float64 {
	return e.d1(p) - p.Volatility*math.Sqrt(p.Maturity)
}

// Terms 返回中间量 d1/d2，供 DTO 与诊断输出使用
func (e *BlackScholesEngine) Terms(p OptionParameters) (d1, d2 float64) {
	return e.d1(p), e.d2(p)
}

// Price 计算期权理论价格。
// CALL: S·Φ(d1) - K·e^(-rT)·Φ(d2)
// PUT:  K·e^(-rT)·Φ(-d2) - S·Φ(-d1)
func (e *BlackScholesEngine) Price(p OptionParameters) (float64, error) {
	if !p.Type.Valid() {
		return 0, fmt.Errorf("%w: option type %q", ErrInvalidParameter, p.Type)
	}

	d1 := e.d1(p)
	d2 := e.d2(p)
	discount := math.Exp(-p.Rate * p.Maturity)

	if p.Type == OptionTypeCall {
		return p.Spot*stdNormal.CDF(d1) - p.Strike*discount*stdNormal.CDF(d2), nil
	}
	return p.Strike*discount*stdNormal.CDF(-d2) - p.Spot*stdNormal.CDF(-d1), nil
}

// Greeks 计算五个希腊字母
func (e *BlackScholesEngine) Greeks(p OptionParameters) (Greeks, error) {
	if !p.Type.Valid() {
		return Greeks{}, fmt.Errorf("%w: option type %q", ErrInvalidParameter, p.Type)
	}

	d1 := e.d1(p)
	d2 := e.d2(p)
	sqrtT := math.Sqrt(p.Maturity)
	discount := math.Exp(-p.Rate * p.Maturity)
	pdfD1 := stdNormal.Prob(d1)

	var g Greeks
	g.Gamma = pdfD1 / (p.Spot * p.Volatility * sqrtT)
	g.Vega = p.Spot * pdfD1 * sqrtT / 100

	decay := -p.Spot * pdfD1 * p.Volatility / (2 * sqrtT)
	if p.Type == OptionTypeCall {
		g.Delta = stdNormal.CDF(d1)
		g.Theta = (decay - p.Rate*p.Strike*discount*stdNormal.CDF(d2)) / 365
		g.Rho = p.Strike * p.Maturity * discount * stdNormal.CDF(d2) / 100
	} else {
		g.Delta = stdNormal.CDF(d1) - 1
		g.Theta = (decay + p.Rate*p.Strike*discount*stdNormal.CDF(-d2)) / 365
		g.Rho = -p.Strike * p.Maturity * discount * stdNormal.CDF(-d2) / 100
	}

	return g, nil
}
