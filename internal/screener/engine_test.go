package screener

import (
	"testing"

	"MarketScreener/internal/model"
)

func TestEvaluate_Qualifies(t *testing.T) {
	snap := &model.Snapshot{Symbol: "ABC", LastClose: 80, Mean200: 100}
	row := Evaluate(snap, DefaultDropThreshold)
	if row == nil {
		t.Fatal("expected row for close 80 vs mean 100 (80 < 85)")
	}
	if row.Symbol != "ABC" || row.Close != 80 || row.MA200 != 100 {
		t.Errorf("unexpected row: %+v", row)
	}
}

func TestEvaluate_DoesNotQualify(t *testing.T) {
	snap := &model.Snapshot{Symbol: "ABC", LastClose: 90, Mean200: 100}
	if row := Evaluate(snap, DefaultDropThreshold); row != nil {
		t.Errorf("expected no row for close 90 vs mean 100 (90 >= 85), got %+v", row)
	}
}

func TestEvaluate_BoundaryIsExclusive(t *testing.T) {
	// Exactly at the threshold: strict inequality must reject.
	snap := &model.Snapshot{Symbol: "ABC", LastClose: 85, Mean200: 100}
	if row := Evaluate(snap, DefaultDropThreshold); row != nil {
		t.Errorf("expected no row at exactly 0.85*mean, got %+v", row)
	}
}

func TestEvaluate_JustBelowBoundary(t *testing.T) {
	snap := &model.Snapshot{Symbol: "ABC", LastClose: 84.999, Mean200: 100}
	if Evaluate(snap, DefaultDropThreshold) == nil {
		t.Error("expected row just below the boundary")
	}
}

func TestEvaluate_NilSnapshot(t *testing.T) {
	if Evaluate(nil, DefaultDropThreshold) != nil {
		t.Error("expected nil for nil snapshot")
	}
}
