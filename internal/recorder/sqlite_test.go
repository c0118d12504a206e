package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScreener/internal/model"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func testBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = model.OHLCV{
			Time:   base.AddDate(0, 0, i),
			Open:   10 + float64(i),
			High:   11 + float64(i),
			Low:    9 + float64(i),
			Close:  10.5 + float64(i),
			Volume: float64(1000 * (i + 1)),
		}
	}
	return bars
}

func TestRecordAndLoadDailyBars(t *testing.T) {
	r := newTestRecorder(t)

	require.NoError(t, r.RecordDailyBars("ABC", testBars(5)))

	bars, err := r.LoadDailyBars("ABC")
	require.NoError(t, err)
	require.Len(t, bars, 5)
	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i].Time.After(bars[i-1].Time), "bars must come back date ascending")
	}
	assert.Equal(t, 10.5, bars[0].Close)
	assert.Equal(t, float64(1000), bars[0].Volume)
}

func TestRecordDailyBars_DuplicateDatesIgnored(t *testing.T) {
	r := newTestRecorder(t)

	bars := testBars(3)
	require.NoError(t, r.RecordDailyBars("ABC", bars))
	require.NoError(t, r.RecordDailyBars("ABC", bars))

	got, err := r.LoadDailyBars("ABC")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestClearDailyBars(t *testing.T) {
	r := newTestRecorder(t)

	require.NoError(t, r.RecordDailyBars("ABC", testBars(3)))
	require.NoError(t, r.ClearDailyBars())

	got, err := r.LoadDailyBars("ABC")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListSymbols(t *testing.T) {
	r := newTestRecorder(t)

	require.NoError(t, r.RecordDailyBars("ZZZ", testBars(2)))
	require.NoError(t, r.RecordDailyBars("AAA", testBars(2)))

	symbols, err := r.ListSymbols()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "ZZZ"}, symbols)
}

func TestRunLifecycle(t *testing.T) {
	r := newTestRecorder(t)

	id, err := r.StartRun(10)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, r.RecordShortlist(id, model.ShortlistTable{
		{Symbol: "A", Close: 70, MA200: 100},
	}))
	require.NoError(t, r.FinishRun(id, 3, 1))
}

func TestReplaceHighVolumeWeeks(t *testing.T) {
	r := newTestRecorder(t)

	first := []model.HighVolumeWeek{{
		Symbol:    "OLD",
		WeekStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		WeekEnd:   time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		Volume:    1e6, VolumeMultiple: 4, RSI: 50,
	}}
	require.NoError(t, r.ReplaceHighVolumeWeeks(first))

	// Replacing clears prior rows.
	require.NoError(t, r.ReplaceHighVolumeWeeks(nil))

	var count int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM high_volume_weeks`).Scan(&count))
	assert.Zero(t, count)
}
