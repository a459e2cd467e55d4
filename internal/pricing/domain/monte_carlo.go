package domain

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"
)

// MonteCarloEngine 蒙特卡洛模拟引擎。
// 随机流是引擎实例私有的（绝不使用全局生成器）：种子在构造时设定一次，
// 流在多次 Price 调用间延续。同种子同参数的两个实例做相同的调用序列
// 会得到相同的价格（跨运行可复现）；同一实例重复调用会继续抽取新变量，
// 不具备幂等性。未设种子时以当前时间播种。
//
// 随机流单属主、不支持并发修改：并发定价请求应各自持有独立实例。
type MonteCarloEngine struct {
	paths int
	rng   *rand.Rand
}

// NewMonteCarloEngine 创建以当前时间播种的模拟引擎，paths < 1 返回 ErrInvalidParameter。
func NewMonteCarloEngine(paths int) (*MonteCarloEngine, error) {
	return NewSeededMonteCarloEngine(paths, time.Now().UnixNano())
}

// NewSeededMonteCarloEngine 创建以固定种子播种的模拟引擎，用于可复现的模拟。
func NewSeededMonteCarloEngine(paths int, seed int64) (*MonteCarloEngine, error) {
	if paths < 1 {
		return nil, fmt.Errorf("%w: paths %d must be >= 1", ErrInvalidParameter, paths)
	}
	return &MonteCarloEngine{
		paths: paths,
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

// Paths 返回每次估价的模拟路径数
func (e *MonteCarloEngine) Paths() int {
	return e.paths
}

// Price 以风险中性测度估计期权价格。
// 终值价 ST = S·exp((r - σ²/2)·T + σ·√T·Z)，Z ~ N(0,1)，
// 取各路径收益均值后按 e^(-rT) 折现。统计误差量级为 O(1/√M)。
func (e *MonteCarloEngine) Price(params OptionParameters) (float64, error) {
	price, _, err := e.PriceWithError(params)
	return price, err
}

// PriceWithError 估计期权价格并返回样本标准误。
// 标准误 = 折现后收益样本标准差 / √M，供调用方评估估计精度。
func (e *MonteCarloEngine) PriceWithError(params OptionParameters) (price, stderr float64, err error) {
	if !params.Type.Valid() {
		return 0, 0, fmt.Errorf("%w: option type %q", ErrInvalidParameter, params.Type)
	}

	drift := (params.Rate - 0.5*params.Volatility*params.Volatility) * params.Maturity
	diffusion := params.Volatility * math.Sqrt(params.Maturity)
	discount := math.Exp(-params.Rate * params.Maturity)

	payoffs := make([]float64, e.paths)
	for i := range payoffs {
		z := e.rng.NormFloat64()
		st := params.Spot * math.Exp(drift+diffusion*z)
		payoffs[i] = discount * params.IntrinsicAt(st)
	}

	price = stat.Mean(payoffs, nil)
	if e.paths > 1 {
		stderr = stat.StdDev(payoffs, nil) / math.Sqrt(float64(e.paths))
	}
	return price, stderr, nil
}
