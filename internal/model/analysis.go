package model

import "time"

// HighVolumeWeek is a weekly bar that passed the breakout volume screen.
type HighVolumeWeek struct {
	Symbol         string
	WeekStart      time.Time
	WeekEnd        time.Time
	Volume         float64
	VolumeMultiple float64
	RSI            float64
}

// Divergence marks a bullish Knoxville divergence: the day the RSI momentum
// crossed from negative to positive.
type Divergence struct {
	Symbol string
	Date   time.Time
	Close  float64
}
