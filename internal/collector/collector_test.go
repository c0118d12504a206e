package collector

import (
	"errors"
	"testing"

	"MarketScreener/internal/model"
)

func TestCollect_SnapshotFromTrailingWindow(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.OHLCV{
		"ABC.NS": GenerateBars(100, 70, 250),
	}}
	c := NewCollector(fetcher, ".NS", 365, 200)

	out := c.Collect("ABC")
	if out.Skipped() {
		t.Fatalf("expected snapshot, got skip %q err=%v", out.Skip, out.Err)
	}
	if out.Snapshot.Symbol != "ABC" {
		t.Errorf("snapshot symbol should not carry the suffix, got %q", out.Snapshot.Symbol)
	}
	if out.Snapshot.LastClose != 70 {
		t.Errorf("expected last close 70, got %v", out.Snapshot.LastClose)
	}
	if out.Snapshot.Mean200 <= 0 {
		t.Errorf("expected positive mean, got %v", out.Snapshot.Mean200)
	}
}

func TestCollect_TrimsWhitespace(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.OHLCV{
		"ABC.NS": GenerateBars(100, 90, 220),
	}}
	c := NewCollector(fetcher, ".NS", 365, 200)

	out := c.Collect(" ABC ")
	if out.Skipped() {
		t.Fatalf("expected snapshot for padded symbol, got skip %q", out.Skip)
	}
}

func TestCollect_InsufficientHistory(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.OHLCV{
		"SHORT.NS": GenerateBars(100, 50, 150),
	}}
	c := NewCollector(fetcher, ".NS", 365, 200)

	out := c.Collect("SHORT")
	if !out.Skipped() || out.Skip != model.SkipShortHistory {
		t.Fatalf("expected INSUFFICIENT_HISTORY skip, got %+v", out)
	}
	if len(out.Bars) != 150 {
		t.Errorf("expected partial bars retained for storage, got %d", len(out.Bars))
	}
}

func TestCollect_EmptyResponse(t *testing.T) {
	c := NewCollector(&MockFetcher{Bars: map[string][]model.OHLCV{}}, ".NS", 365, 200)
	out := c.Collect("MISSING")
	if out.Skip != model.SkipNoData {
		t.Fatalf("expected NO_DATA skip, got %q", out.Skip)
	}
}

func TestCollect_FetchError(t *testing.T) {
	c := NewCollector(&MockFetcher{Err: errors.New("connection refused")}, ".NS", 365, 200)
	out := c.Collect("ABC")
	if out.Skip != model.SkipFetchError || out.Err == nil {
		t.Fatalf("expected FETCH_ERROR skip with error, got %+v", out)
	}
}

func TestCollect_NonPositiveMean(t *testing.T) {
	bars := GenerateBars(100, 70, 250)
	for i := range bars {
		bars[i].Close = 0
	}
	c := NewCollector(&MockFetcher{Bars: map[string][]model.OHLCV{"ZERO.NS": bars}}, ".NS", 365, 200)

	out := c.Collect("ZERO")
	if out.Skip != model.SkipNonPositiveMean {
		t.Fatalf("expected NON_POSITIVE_MEAN skip, got %q", out.Skip)
	}
}
