package screener

import "MarketScreener/internal/model"

// DefaultDropThreshold shortlists symbols trading more than 15% below their
// 200-day moving average.
const DefaultDropThreshold = 0.15

// Evaluate applies the shortlist rule: the symbol qualifies iff its last
// close is strictly below (1-threshold) times its 200-day mean. Equality
// does not qualify. Returns nil when the symbol does not qualify.
func Evaluate(snap *model.Snapshot, threshold float64) *model.ShortlistRow {
	if snap == nil {
		return nil
	}
	if snap.LastClose < (1-threshold)*snap.Mean200 {
		return &model.ShortlistRow{
			Symbol: snap.Symbol,
			Close:  snap.LastClose,
			MA200:  snap.Mean200,
		}
	}
	return nil
}
