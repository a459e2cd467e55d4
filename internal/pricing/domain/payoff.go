package domain

import (
	"fmt"
)

// SpotRange 生成以行权价为中心的标的价格序列 [0.5K, 1.5K]，
// 共 points 个等距采样点，作为收益曲线与希腊字母扫描的横轴。
func SpotRange(strike float64, points int) ([]float64, error) {
	if points < 2 {
		return nil, fmt.Errorf("%w: points %d must be >= 2", ErrInvalidParameter, points)
	}
	lo := 0.5 * strike
	hi := 1.5 * strike
	step := (hi - lo) / float64(points-1)

	spots := make([]float64, points)
	for i := range spots {
		spots[i] = lo + float64(i)*step
	}
	return spots, nil
}

// PayoffCurve 对标的价格序列逐点计算到期收益。
func PayoffCurve(params OptionParameters, spots []float64) ([]float64, error) {
	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: option type %q", ErrInvalidParameter, params.Type)
	}

	curve := make([]float64, len(spots))
	for i, s := range spots {
		curve[i] = params.IntrinsicAt(s)
	}
	return curve, nil
}

// PnLCurve 对标的价格序列逐点计算损益：
// 多头为 payoff(S) - price，空头取其相反数。
// price 为建仓成本，由调用方给定（通常取解析引擎价格）。
func PnLCurve(params OptionParameters, spots []float64, direction Direction, price float64) ([]float64, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: direction %q", ErrInvalidParameter, direction)
	}

	curve, err := PayoffCurve(params, spots)
	if err != nil {
		return nil, err
	}

	for i := range curve {
		curve[i] -= price
		if direction == DirectionShort {
			curve[i] = -curve[i]
		}
	}
	return curve, nil
}
