package recorder

import "MarketScreener/internal/model"

// NoopRecorder drops everything. Used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) StartRun(int) (string, error)                       { return "", nil }
func (n *NoopRecorder) FinishRun(string, int, int) error                   { return nil }
func (n *NoopRecorder) ClearDailyBars() error                              { return nil }
func (n *NoopRecorder) RecordDailyBars(string, []model.OHLCV) error        { return nil }
func (n *NoopRecorder) RecordShortlist(string, model.ShortlistTable) error { return nil }
func (n *NoopRecorder) ListSymbols() ([]string, error)                     { return nil, nil }
func (n *NoopRecorder) LoadDailyBars(string) ([]model.OHLCV, error)        { return nil, nil }
func (n *NoopRecorder) ReplaceHighVolumeWeeks([]model.HighVolumeWeek) error { return nil }
func (n *NoopRecorder) ReplaceDivergences([]model.Divergence) error        { return nil }
func (n *NoopRecorder) Close() error                                       { return nil }
