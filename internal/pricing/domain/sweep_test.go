package domain

import (
	"testing"
)

func TestSweepGreeks(t *testing.T) {
	params := mustParams(t, 100, 100, 1, 0.05, 0.2, OptionTypeCall)
	spots, err := SpotRange(params.Strike, 100)
	if err != nil {
		t.Fatalf("SpotRange: %v", err)
	}

	points, err := SweepGreeks(params, spots)
	if err != nil {
		t.Fatalf("SweepGreeks: %v", err)
	}
	if len(points) != len(spots) {
		t.Fatalf("points length: got %d, want %d", len(points), len(spots))
	}

	// CALL 的 delta 沿标的价格单调不减，且限制在 [0,1]
	for i, pt := range points {
		if pt.Greeks.Delta < 0 || pt.Greeks.Delta > 1 {
			t.Fatalf("delta out of [0,1] at spot %v: %v", pt.Spot, pt.Greeks.Delta)
		}
		if i > 0 && pt.Greeks.Delta < points[i-1].Greeks.Delta {
			t.Fatalf("call delta not monotone at spot %v", pt.Spot)
		}
	}

	// 采样点的结果必须与直接定价一致
	engine := NewBlackScholesEngine()
	mid := points[len(points)/2]
	midParams := mustParams(t, mid.Spot, params.Strike, params.Maturity, params.Rate, params.Volatility, params.Type)
	want, _ := engine.Price(midParams)
	if mid.Price != want {
		t.Fatalf("sweep price diverges from direct pricing: %v != %v", mid.Price, want)
	}
}

func TestSweepGreeks_Restartable(t *testing.T) {
	// 纯函数映射：重复调用产生相同序列
	params := mustParams(t, 100, 100, 1, 0.05, 0.2, OptionTypePut)
	spots := []float64{80, 100, 120}

	first, err := SweepGreeks(params, spots)
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	second, err := SweepGreeks(params, spots)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sweep not restartable at %d: %+v != %+v", i, first[i], second[i])
		}
	}
}
