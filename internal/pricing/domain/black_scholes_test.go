package domain

import (
	"math"
	"testing"
)

func TestBlackScholes_ReferenceCase(t *testing.T) {
	// 经典参数：S=100, K=100, T=1, r=0.05, sigma=0.2
	// 回归基准：Call≈10.4506, Put≈5.5735
	engine := NewBlackScholesEngine()

	call, err := engine.Price(mustParams(t, 100, 100, 1, 0.05, 0.2, OptionTypeCall))
	if err != nil {
		t.Fatalf("call price: %v", err)
	}
	put, err := engine.Price(mustParams(t, 100, 100, 1, 0.05, 0.2, OptionTypePut))
	if err != nil {
		t.Fatalf("put price: %v", err)
	}

	if !almostEqual(call, 10.450583572185565, 1e-9) {
		t.Fatalf("call price mismatch: got %v", call)
	}
	if !almostEqual(put, 5.573526022256971, 1e-9) {
		t.Fatalf("put price mismatch: got %v", put)
	}
}

func TestBlackScholes_PutCallParity(t *testing.T) {
	// C - P = S - K·e^(-rT)
	engine := NewBlackScholesEngine()
	s, k, maturity, r := 100.0, 100.0, 1.0, 0.05

	call, _ := engine.Price(mustParams(t, s, k, maturity, r, 0.2, OptionTypeCall))
	put, _ := engine.Price(mustParams(t, s, k, maturity, r, 0.2, OptionTypePut))

	left := call - put
	right := s - k*math.Exp(-r*maturity)
	if !almostEqual(left, right, 1e-10) {
		t.Fatalf("put-call parity violated: C-P=%v, S-K·e^(-rT)=%v", left, right)
	}
}

func TestBlackScholes_DeepInTheMoneyPut(t *testing.T) {
	// S=50, K=100 的深度实值 PUT 价格应接近内在价值，大于 45
	engine := NewBlackScholesEngine()

	put, err := engine.Price(mustParams(t, 50, 100, 1, 0.05, 0.2, OptionTypePut))
	if err != nil {
		t.Fatalf("put price: %v", err)
	}
	if put <= 45 {
		t.Fatalf("deep ITM put price %v, want > 45", put)
	}
}

func TestBlackScholes_Terms(t *testing.T) {
	engine := NewBlackScholesEngine()
	d1, d2 := engine.Terms(mustParams(t, 100, 100, 1, 0.05, 0.2, OptionTypeCall))

	if !almostEqual(d1, 0.35, 1e-12) {
		t.Fatalf("d1 mismatch: got %v", d1)
	}
	if !almostEqual(d2, 0.15, 1e-12) {
		t.Fatalf("d2 mismatch: got %v", d2)
	}
}

func TestBlackScholes_Greeks(t *testing.T) {
	engine := NewBlackScholesEngine()
	callParams := mustParams(t, 100, 100, 1, 0.05, 0.2, OptionTypeCall)
	putParams := mustParams(t, 100, 100, 1, 0.05, 0.2, OptionTypePut)

	call, err := engine.Greeks(callParams)
	if err != nil {
		t.Fatalf("call greeks: %v", err)
	}
	put, err := engine.Greeks(putParams)
	if err != nil {
		t.Fatalf("put greeks: %v", err)
	}

	t.Run("delta", func(t *testing.T) {
		if !almostEqual(call.Delta, 0.6368306511756191, 1e-9) {
			t.Fatalf("call delta: got %v", call.Delta)
		}
		if !almostEqual(put.Delta, -0.3631693488243809, 1e-9) {
			t.Fatalf("put delta: got %v", put.Delta)
		}
		// delta_call - delta_put = 1
		if !almostEqual(call.Delta-put.Delta, 1, 1e-12) {
			t.Fatalf("delta parity: call %v, put %v", call.Delta, put.Delta)
		}
	})

	t.Run("gamma and vega are kind-independent", func(t *testing.T) {
		if !almostEqual(call.Gamma, 0.018762017345846895, 1e-9) {
			t.Fatalf("gamma: got %v", call.Gamma)
		}
		if !almostEqual(call.Vega, 0.3752403469169379, 1e-9) {
			t.Fatalf("vega: got %v", call.Vega)
		}
		if call.Gamma != put.Gamma || call.Vega != put.Vega {
			t.Fatalf("gamma/vega must match across kinds: call %+v, put %+v", call, put)
		}
	})

	t.Run("theta per calendar day", func(t *testing.T) {
		if !almostEqual(call.Theta, -0.01757267820941972, 1e-9) {
			t.Fatalf("call theta: got %v", call.Theta)
		}
		if !almostEqual(put.Theta, -0.004542138147766099, 1e-9) {
			t.Fatalf("put theta: got %v", put.Theta)
		}
	})

	t.Run("rho per percentage point", func(t *testing.T) {
		if !almostEqual(call.Rho, 0.5323248154537634, 1e-9) {
			t.Fatalf("call rho: got %v", call.Rho)
		}
		if !almostEqual(put.Rho, -0.4189046090469506, 1e-9) {
			t.Fatalf("put rho: got %v", put.Rho)
		}
	})
}

func TestBlackScholes_GreeksMap(t *testing.T) {
	engine := NewBlackScholesEngine()
	g, err := engine.Greeks(mustParams(t, 100, 100, 1, 0.05, 0.2, OptionTypeCall))
	if err != nil {
		t.Fatalf("greeks: %v", err)
	}

	m := g.Map()
	if len(m) != 5 {
		t.Fatalf("greeks map size: got %d, want 5", len(m))
	}
	if m["delta"] != g.Delta || m["gamma"] != g.Gamma || m["vega"] != g.Vega ||
		m["theta"] != g.Theta || m["rho"] != g.Rho {
		t.Fatalf("greeks map values diverge from struct: %v vs %+v", m, g)
	}
}

func TestBlackScholes_DegenerateInputsProduceNaN(t *testing.T) {
	// σ·√T = 0 时 d1/d2 未定义，引擎按文档约定不转为错误
	engine := NewBlackScholesEngine()

	price, err := engine.Price(mustParams(t, 100, 100, 0, 0.05, 0.2, OptionTypeCall))
	if err != nil {
		t.Fatalf("degenerate maturity must not error, got %v", err)
	}
	if !math.IsNaN(price) {
		t.Fatalf("T=0 price: got %v, want NaN", price)
	}
}
