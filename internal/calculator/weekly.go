package calculator

import (
	"time"

	"MarketScreener/internal/model"
)

// ResampleWeekly groups ascending daily bars into calendar weeks ending on
// Sunday. Each weekly bar takes the first open, last close, max high, min low
// and summed volume of its days.
func ResampleWeekly(bars []model.OHLCV) []model.WeeklyBar {
	if len(bars) == 0 {
		return nil
	}

	var weeks []model.WeeklyBar
	var cur model.WeeklyBar
	curEnd := time.Time{}

	for _, b := range bars {
		end := weekEnd(b.Time)
		if !end.Equal(curEnd) {
			if !curEnd.IsZero() {
				weeks = append(weeks, cur)
			}
			curEnd = end
			cur = model.WeeklyBar{
				WeekStart: end.AddDate(0, 0, -6),
				WeekEnd:   end,
				Open:      b.Open,
				High:      b.High,
				Low:       b.Low,
				Close:     b.Close,
				Volume:    b.Volume,
			}
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	weeks = append(weeks, cur)
	return weeks
}

// weekEnd returns the Sunday that closes the week containing t, at midnight UTC.
func weekEnd(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}
