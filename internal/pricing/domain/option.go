// Package domain 欧式期权定价服务的领域模型。
// 三个定价引擎（Black-Scholes 解析解、CRR 二叉树、蒙特卡洛模拟）共享同一组
// 合约参数，并通过 Priceable 接口互换。
package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter 参数非法。所有构造与调用边界的校验失败都归于此错误。
var ErrInvalidParameter = errors.New("invalid parameter")

// OptionType 期权类型
type OptionType string

const (
	OptionTypeCall OptionType = "CALL" // 看涨期权
	OptionTypePut  OptionType = "PUT"  // 看跌期权
)

// Valid 判断期权类型是否合法
func (t OptionType) Valid() bool {
	return t == OptionTypeCall || t == OptionTypePut
}

// Direction 持仓方向
type Direction string

const (
	DirectionLong  Direction = "LONG"  // 多头
	DirectionShort Direction = "SHORT" // 空头
)

// Valid 判断持仓方向是否合法
func (d Direction) Valid() bool {
	return d == DirectionLong || d == DirectionShort
}

// OptionParameters 欧式期权合约参数，不可变值对象。
// 每次定价请求构造一次，三个引擎按值读取，绝不修改。
//
// 校验边界是"非负"而不是"严格为正"：S/K/T/σ 为零可以通过构造，
// 但属于退化输入，会在 d1/d2 与二叉树步长中产生除零（NaN/Inf），
// 引擎不对此做特殊处理，调用方需保证 T>0 且 σ>0 才有有意义的输出。
type OptionParameters struct {
	Spot       float64    // 标的现价 S
	Strike     float64    // 行权价 K
	Maturity   float64    // 到期时间 T (年)
	Rate       float64    // 连续复利无风险利率 r，符号不限
	Volatility float64    // 年化波动率 sigma
	Type       OptionType // 期权类型 (CALL/PUT)
}

// NewOptionParameters 构造并校验合约参数。
// S/K/T/σ 为负或期权类型非法时返回 ErrInvalidParameter。
func NewOptionParameters(spot, strike, maturity, rate, volatility float64, optionType OptionType) (OptionParameters, error) {
	switch {
	case spot < 0 || math.IsNaN(spot):
		return OptionParameters{}, fmt.Errorf("%w: spot %v must be non-negative", ErrInvalidParameter, spot)
	case strike < 0 || math.IsNaN(strike):
		return OptionParameters{}, fmt.Errorf("%w: strike %v must be non-negative", ErrInvalidParameter, strike)
	case maturity < 0 || math.IsNaN(maturity):
		return OptionParameters{}, fmt.Errorf("%w: maturity %v must be non-negative", ErrInvalidParameter, maturity)
	case volatility < 0 || math.IsNaN(volatility):
		return OptionParameters{}, fmt.Errorf("%w: volatility %v must be non-negative", ErrInvalidParameter, volatility)
	case !optionType.Valid():
		return OptionParameters{}, fmt.Errorf("%w: option type %q", ErrInvalidParameter, optionType)
	}

	return OptionParameters{
		Spot:       spot,
		Strike:     strike,
		Maturity:   maturity,
		Rate:       rate,
		Volatility: volatility,
		Type:       optionType,
	}, nil
}

// IntrinsicAt 返回标的价为 s 时的到期收益：
// CALL 为 max(s-K, 0)，PUT 为 max(K-s, 0)。
func (p OptionParameters) IntrinsicAt(s float64) float64 {
	if p.Type == OptionTypeCall {
		return math.Max(s-p.Strike, 0)
	}
	return math.Max(p.Strike-s, 0)
}

// Priceable 定价能力接口，由三个引擎分别实现。
// 引擎本身无共享状态，方法级控制项（步数、模拟次数）在引擎构造时固定。
type Priceable interface {
	Price(params OptionParameters) (float64, error)
}
