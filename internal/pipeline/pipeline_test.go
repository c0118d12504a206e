package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScreener/internal/collector"
	"MarketScreener/internal/model"
	"MarketScreener/internal/recorder"
	"MarketScreener/internal/screener"
)

// flatBars builds n ascending daily bars closing at 100, with per-index
// close overrides so the trailing-200 mean can be pinned exactly.
func flatBars(n int, overrides map[int]float64) []model.OHLCV {
	base := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := 100.0
		if v, ok := overrides[i]; ok {
			c = v
		}
		bars[i] = model.OHLCV{
			Time:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000000,
		}
	}
	return bars
}

func TestPipeline_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	symbolFile := filepath.Join(dir, "stocks.csv")
	require.NoError(t, os.WriteFile(symbolFile, []byte("Symbol\nA\nB\nC\n"), 0644))

	// A: 250 days, last close 70, trailing-200 mean exactly 100 (one 130
	// inside the window balances the 70). Qualifies.
	// B: 150 days. Skipped for insufficient history.
	// C: 300 days, last close 99, trailing-200 mean exactly 100. Does not
	// qualify.
	fetcher := &collector.MockFetcher{Bars: map[string][]model.OHLCV{
		"A.NS": flatBars(250, map[int]float64{50: 130, 249: 70}),
		"B.NS": flatBars(150, nil),
		"C.NS": flatBars(300, map[int]float64{100: 101, 299: 99}),
	}}

	rec, err := recorder.NewSQLiteRecorder(filepath.Join(dir, "screener.db"))
	require.NoError(t, err)
	defer rec.Close()

	col := collector.NewCollector(fetcher, ".NS", 365, 200)
	p := &Pipeline{
		Runner:         screener.NewRunner(col, rec, screener.DefaultDropThreshold, 20),
		Recorder:       rec,
		Publisher:      nil,
		SymbolFile:     symbolFile,
		ReportFile:     filepath.Join(dir, "shortlist.csv"),
		HighVolumeFile: filepath.Join(dir, "weeks.csv"),
		KnoxvilleFile:  filepath.Join(dir, "divergences.csv"),
		Analyze:        true,
	}

	require.NoError(t, p.Run(context.Background()))

	data, err := os.ReadFile(p.ReportFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "expected header plus exactly one data row")
	assert.Equal(t, "Symbol,Close,200_MA", lines[0])
	assert.Equal(t, "A,70,100", lines[1])

	// B's partial history is still persisted even though it was skipped.
	bBars, err := rec.LoadDailyBars("B")
	require.NoError(t, err)
	assert.Len(t, bBars, 150)

	// Analyzer reports exist even when nothing qualified.
	_, err = os.Stat(p.HighVolumeFile)
	assert.NoError(t, err)
	_, err = os.Stat(p.KnoxvilleFile)
	assert.NoError(t, err)
}

func TestPipeline_MissingSymbolFileAborts(t *testing.T) {
	dir := t.TempDir()
	col := collector.NewCollector(&collector.MockFetcher{}, ".NS", 365, 200)
	p := &Pipeline{
		Runner:     screener.NewRunner(col, recorder.NewNoopRecorder(), screener.DefaultDropThreshold, 20),
		Recorder:   recorder.NewNoopRecorder(),
		SymbolFile: filepath.Join(dir, "missing.csv"),
		ReportFile: filepath.Join(dir, "out.csv"),
	}
	assert.Error(t, p.Run(context.Background()))
}
