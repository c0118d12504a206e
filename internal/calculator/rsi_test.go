package calculator

import (
	"math"
	"testing"
)

func TestRSISeries_AllGains(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	series, err := RSISeries(closes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if !math.IsNaN(series[i]) {
			t.Errorf("expected NaN before index 3, got %v at %d", series[i], i)
		}
	}
	for i := 3; i < len(series); i++ {
		if series[i] != 100 {
			t.Errorf("expected RSI 100 for monotone gains, got %v at %d", series[i], i)
		}
	}
}

func TestRSISeries_AllLosses(t *testing.T) {
	closes := []float64{8, 7, 6, 5, 4, 3}
	series, err := RSISeries(closes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := series[len(series)-1]
	if last != 0 {
		t.Errorf("expected RSI 0 for monotone losses, got %v", last)
	}
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	if _, err := CalculateRSI([]float64{1, 2, 3}, 14); err == nil {
		t.Error("expected error with fewer than period+1 closes")
	}
}

func TestCalculateRSI_Midrange(t *testing.T) {
	// Alternating equal gains and losses settle near 50.
	closes := make([]float64, 40)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 100
		} else {
			closes[i] = 101
		}
	}
	rsi, err := CalculateRSI(closes, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi < 40 || rsi > 60 {
		t.Errorf("expected RSI near 50, got %v", rsi)
	}
}
