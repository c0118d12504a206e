package model

// Snapshot holds the two values the shortlist rule compares, both derived
// from the same price series.
type Snapshot struct {
	Symbol    string
	LastClose float64
	Mean200   float64
}

// SkipReason explains why a symbol contributed no shortlist row.
type SkipReason string

const (
	SkipNone            SkipReason = ""
	SkipFetchError      SkipReason = "FETCH_ERROR"
	SkipNoData          SkipReason = "NO_DATA"
	SkipShortHistory    SkipReason = "INSUFFICIENT_HISTORY"
	SkipNonPositiveMean SkipReason = "NON_POSITIVE_MEAN"
)

// FetchOutcome is the per-symbol result of the fetch+snapshot step. Fetch
// failures are carried here as a skip reason rather than escalated, so a bad
// symbol never aborts the batch. Bars may be populated even when Snapshot is
// nil (e.g. a symbol with usable but insufficient history).
type FetchOutcome struct {
	Symbol   string
	Bars     []OHLCV
	Snapshot *Snapshot
	Skip     SkipReason
	Err      error
}

// Skipped reports whether the symbol produced no snapshot.
func (o *FetchOutcome) Skipped() bool { return o.Snapshot == nil }

// ShortlistRow is one qualifying symbol: its last close sits more than the
// configured threshold below its 200-day moving average.
type ShortlistRow struct {
	Symbol string  `csv:"Symbol"`
	Close  float64 `csv:"Close"`
	MA200  float64 `csv:"200_MA"`
}

// ShortlistTable collects qualifying rows in completion order of the
// concurrent fetch, which is not guaranteed to match input order.
type ShortlistTable []ShortlistRow

// Rows renders the table as spreadsheet cells, header first.
func (t ShortlistTable) Rows() [][]interface{} {
	rows := make([][]interface{}, 0, len(t)+1)
	rows = append(rows, []interface{}{"Symbol", "Close", "200_MA"})
	for _, r := range t {
		rows = append(rows, []interface{}{r.Symbol, r.Close, r.MA200})
	}
	return rows
}
