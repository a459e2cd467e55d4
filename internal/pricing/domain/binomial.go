package domain

import (
	"fmt"
	"math"
)

// BinomialEngine Cox-Ross-Rubinstein 二叉树引擎。
// 树是重组的：先涨后跌与先跌后涨到达同一节点，末层只有 N+1 个节点而非 2^N，
// 这是算法可行的前提。回代自后向前逐层折现，时间复杂度 O(N²)，
// 末层数组原地复用，空间复杂度 O(N)。
type BinomialEngine struct {
	steps int
}

// NewBinomialEngine 创建二叉树引擎，steps 为离散时间步数，steps < 1 返回 ErrInvalidParameter。
func NewBinomialEngine(steps int) (*BinomialEngine, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: steps %d must be >= 1", ErrInvalidParameter, steps)
	}
	return &BinomialEngine{steps: steps}, nil
}

// Steps 返回树的步数
func (e *BinomialEngine) Steps() int {
	return e.steps
}

// Price 以风险中性测度做后向归纳计算期权现值。
// dt = T/N, u = e^(σ√dt), d = 1/u, p = (e^(r·dt) - d) / (u - d)
func (e *BinomialEngine) Price(params OptionParameters) (float64, error) {
	if !params.Type.Valid() {
		return 0, fmt.Errorf("%w: option type %q", ErrInvalidParameter, params.Type)
	}

	n := e.steps
	dt := params.Maturity / float64(n)
	u := math.Exp(params.Volatility * math.Sqrt(dt))
	d := 1 / u
	p := (math.Exp(params.Rate*dt) - d) / (u - d)
	discount := math.Exp(-params.Rate * dt)

	// 末层：第 i 个节点的标的价为 S·u^(N-i)·d^i，取到期收益
	values := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		st := params.Spot * math.Pow(u, float64(n-i)) * math.Pow(d, float64(i))
		values[i] = params.IntrinsicAt(st)
	}

	// 后向归纳：value[i,j] = e^(-r·dt)·(p·value[i,j+1] + (1-p)·value[i+1,j+1])
	// 后层必须先于前层完成，层内原地覆盖
	for j := n - 1; j >= 0; j-- {
		for i := 0; i <= j; i++ {
			values[i] = discount * (p*values[i] + (1-p)*values[i+1])
		}
	}

	return values[0], nil
}
