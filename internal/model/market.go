package model

import "time"

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// WeeklyBar is one calendar week (ending Sunday) resampled from daily bars:
// open of the first day, close of the last, high/low extremes, summed volume.
type WeeklyBar struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}
