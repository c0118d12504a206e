package recorder

import "MarketScreener/internal/model"

// Recorder persists fetched history and screen results for later analysis.
type Recorder interface {
	// StartRun registers a new screen run and returns its id.
	StartRun(totalSymbols int) (string, error)
	// FinishRun closes out a run with its skip and shortlist counts.
	FinishRun(runID string, skipped, shortlisted int) error

	// ClearDailyBars deletes all stored bars before a fresh run.
	ClearDailyBars() error
	// RecordDailyBars stores one symbol's daily history. Safe for
	// concurrent use by the runner's workers.
	RecordDailyBars(symbol string, bars []model.OHLCV) error
	// RecordShortlist stores the qualifying rows of a run.
	RecordShortlist(runID string, table model.ShortlistTable) error

	// ListSymbols returns every symbol with stored bars.
	ListSymbols() ([]string, error)
	// LoadDailyBars returns a symbol's stored bars, date ascending.
	LoadDailyBars(symbol string) ([]model.OHLCV, error)

	// ReplaceHighVolumeWeeks clears and rewrites the weekly screen results.
	ReplaceHighVolumeWeeks(weeks []model.HighVolumeWeek) error
	// ReplaceDivergences clears and rewrites the divergence screen results.
	ReplaceDivergences(events []model.Divergence) error

	Close() error
}
