package domain

// GreekPoint 希腊字母扫描的一个采样点
type GreekPoint struct {
	Spot   float64 `json:"spot"`
	Price  float64 `json:"price"`
	Greeks Greeks  `json:"greeks"`
}

// SweepGreeks 沿标的价格序列扫描解析引擎的价格与希腊字母。
// 每个采样点重建一份参数（非法参数在首个点即报错），纯函数映射，
// 除输出序列外无共享可变状态，可安全重复调用。
func SweepGreeks(params OptionParameters, spots []float64) ([]GreekPoint, error) {
	engine := NewBlackScholesEngine()

	points := make([]GreekPoint, 0, len(spots))
	for _, s := range spots {
		p, err := NewOptionParameters(s, params.Strike, params.Maturity, params.Rate, params.Volatility, params.Type)
		if err != nil {
			return nil, err
		}

		price, err := engine.Price(p)
		if err != nil {
			return nil, err
		}
		greeks, err := engine.Greeks(p)
		if err != nil {
			return nil, err
		}

		points = append(points, GreekPoint{Spot: s, Price: price, Greeks: greeks})
	}
	return points, nil
}
