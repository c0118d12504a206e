package screener

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"MarketScreener/internal/collector"
	"MarketScreener/internal/model"
	"MarketScreener/internal/recorder"
)

// DefaultWorkers is the fixed pool size for concurrent symbol fetches.
const DefaultWorkers = 20

// Runner fans fetch+filter work out over a fixed worker pool. Each worker
// processes one symbol to completion before taking the next; workers share
// nothing but the recorder, which guards its own writes.
type Runner struct {
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Threshold float64
	Workers   int
}

// NewRunner creates a Runner with the given worker count (DefaultWorkers
// when non-positive).
func NewRunner(col *collector.Collector, rec recorder.Recorder, threshold float64, workers int) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Runner{Collector: col, Recorder: rec, Threshold: threshold, Workers: workers}
}

type symbolResult struct {
	row     *model.ShortlistRow
	skipped bool // fetch failed or history insufficient, as opposed to not qualifying
}

// Run screens every symbol and returns the qualifying rows in completion
// order plus the number of symbols that produced no snapshot at all.
// Per-symbol failures are logged and skipped; the batch itself always
// succeeds, possibly with an empty table.
func (r *Runner) Run(ctx context.Context, symbols []string) (model.ShortlistTable, int) {
	jobs := make(chan string)
	results := make(chan symbolResult)

	var wg sync.WaitGroup
	for i := 0; i < r.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range jobs {
				results <- r.process(sym)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, sym := range symbols {
			select {
			case jobs <- sym:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	table := model.ShortlistTable{}
	skipped := 0
	for res := range results {
		if res.skipped {
			skipped++
			continue
		}
		if res.row != nil {
			table = append(table, *res.row)
		}
	}
	return table, skipped
}

func (r *Runner) process(symbol string) symbolResult {
	log.Infof("fetching data for %s", symbol)

	out := r.Collector.Collect(symbol)
	if len(out.Bars) > 0 {
		if err := r.Recorder.RecordDailyBars(out.Symbol, out.Bars); err != nil {
			log.Errorf("record bars for %s: %v", out.Symbol, err)
		}
	}
	if out.Skipped() {
		if out.Err != nil {
			log.Warnf("skipping %s (%s): %v", out.Symbol, out.Skip, out.Err)
		} else {
			log.Warnf("skipping %s: %s", out.Symbol, out.Skip)
		}
		return symbolResult{skipped: true}
	}

	row := Evaluate(out.Snapshot, r.Threshold)
	if row == nil {
		log.Infof("%s not shortlisted: close=%.2f ma200=%.2f", out.Symbol, out.Snapshot.LastClose, out.Snapshot.Mean200)
		return symbolResult{}
	}
	log.Infof("%s shortlisted: close=%.2f ma200=%.2f", row.Symbol, row.Close, row.MA200)
	return symbolResult{row: row}
}
