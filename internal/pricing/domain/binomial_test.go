package domain

import (
	"errors"
	"math"
	"testing"
)

func TestNewBinomialEngine_InvalidSteps(t *testing.T) {
	for _, steps := range []int{0, -1, -100} {
		if _, err := NewBinomialEngine(steps); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("steps=%d: expected ErrInvalidParameter, got %v", steps, err)
		}
	}
}

func TestBinomial_SingleStep(t *testing.T) {
	// N=1 的最小树：手工验证一次回代
	// dt=1, u=e^0.2, d=e^-0.2, p=(e^0.05-d)/(u-d)
	engine, err := NewBinomialEngine(1)
	if err != nil {
		t.Fatalf("NewBinomialEngine: %v", err)
	}

	params := mustParams(t, 100, 100, 1, 0.05, 0.2, OptionTypeCall)
	got, err := engine.Price(params)
	if err != nil {
		t.Fatalf("price: %v", err)
	}

	u := math.Exp(0.2)
	d := 1 / u
	p := (math.Exp(0.05) - d) / (u - d)
	want := math.Exp(-0.05) * (p*(100*u-100) + (1-p)*0)
	if !almostEqual(got, want, 1e-12) {
		t.Fatalf("single-step price: got %v, want %v", got, want)
	}
}

func TestBinomial_ReferenceValues(t *testing.T) {
	// CRR 在 N=500 时对经典参数的回归基准
	engine, err := NewBinomialEngine(500)
	if err != nil {
		t.Fatalf("NewBinomialEngine: %v", err)
	}

	call, err := engine.Price(mustParams(t, 100, 100, 1, 0.05, 0.2, OptionTypeCall))
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if !almostEqual(call, 10.44658513644654, 1e-8) {
		t.Fatalf("N=500 call price: got %v", call)
	}
}

func TestBinomial_ConvergesToAnalytic(t *testing.T) {
	// 步数增大时二叉树价格必须收敛到解析价格，
	// 误差在 {10, 100, 500} 上严格递减
	analytic := NewBlackScholesEngine()
	params := mustParams(t, 100, 100, 1, 0.05, 0.2, OptionTypeCall)

	bsPrice, err := analytic.Price(params)
	if err != nil {
		t.Fatalf("analytic price: %v", err)
	}

	stepsList := []int{10, 100, 500}
	errs := make([]float64, len(stepsList))
	for i, steps := range stepsList {
		engine, err := NewBinomialEngine(steps)
		if err != nil {
			t.Fatalf("NewBinomialEngine(%d): %v", steps, err)
		}
		price, err := engine.Price(params)
		if err != nil {
			t.Fatalf("price at %d steps: %v", steps, err)
		}
		errs[i] = math.Abs(price - bsPrice)
	}

	for i := 0; i < len(errs)-1; i++ {
		if errs[i] <= errs[i+1] {
			t.Fatalf("lattice error not decreasing: steps %v, errors %v", stepsList, errs)
		}
	}
	if errs[len(errs)-1] > 0.01 {
		t.Fatalf("N=500 error %v, want < 0.01", errs[len(errs)-1])
	}
}

func TestBinomial_PutCallParity(t *testing.T) {
	// 欧式期权平价关系在树价格上同样近似成立
	engine, err := NewBinomialEngine(1000)
	if err != nil {
		t.Fatalf("NewBinomialEngine: %v", err)
	}

	s, k, maturity, r := 100.0, 100.0, 1.0, 0.05
	call, _ := engine.Price(mustParams(t, s, k, maturity, r, 0.2, OptionTypeCall))
	put, _ := engine.Price(mustParams(t, s, k, maturity, r, 0.2, OptionTypePut))

	if !almostEqual(call-put, s-k*math.Exp(-r*maturity), 1e-7) {
		t.Fatalf("tree parity violated: C-P=%v", call-put)
	}
}
