package pipeline

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"MarketScreener/internal/analyzer"
	"MarketScreener/internal/publisher"
	"MarketScreener/internal/recorder"
	"MarketScreener/internal/report"
	"MarketScreener/internal/screener"
)

// Pipeline wires the full screen: load symbols, fan out fetch+filter, write
// the CSV report, publish to the spreadsheet, then run the follow-on
// analyses over the stored history.
type Pipeline struct {
	Runner    *screener.Runner
	Recorder  recorder.Recorder
	Publisher *publisher.SheetsPublisher // nil disables publishing

	SymbolFile     string
	ReportFile     string
	HighVolumeFile string
	KnoxvilleFile  string
	Analyze        bool // only meaningful with a real recorder behind it
}

// Run executes one full screen. Per-symbol failures are absorbed by the
// runner; an error returned here is pipeline-level and should abort the run.
func (p *Pipeline) Run(ctx context.Context) error {
	symbols, err := report.LoadSymbols(p.SymbolFile)
	if err != nil {
		return fmt.Errorf("load symbols: %w", err)
	}
	log.Infof("loaded %d symbols from %s", len(symbols), p.SymbolFile)

	runID, err := p.Recorder.StartRun(len(symbols))
	if err != nil {
		log.Errorf("start run: %v", err)
	}
	if err := p.Recorder.ClearDailyBars(); err != nil {
		log.Errorf("clear stored bars: %v", err)
	}

	table, skipped := p.Runner.Run(ctx, symbols)
	log.Infof("screen complete: %d shortlisted, %d skipped of %d symbols",
		len(table), skipped, len(symbols))

	if err := p.Recorder.RecordShortlist(runID, table); err != nil {
		log.Errorf("record shortlist: %v", err)
	}
	if err := p.Recorder.FinishRun(runID, skipped, len(table)); err != nil {
		log.Errorf("finish run: %v", err)
	}

	if err := report.WriteShortlist(p.ReportFile, table); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Infof("report written to %s", p.ReportFile)

	if p.Publisher != nil {
		if err := p.Publisher.Publish(ctx, table); err != nil {
			return fmt.Errorf("publish to sheets: %w", err)
		}
		log.Infof("published %d rows to spreadsheet %q", len(table), p.Publisher.SpreadsheetTitle)
	}

	if p.Analyze {
		p.runAnalyses()
	}
	return nil
}

// runAnalyses executes the follow-on screens over stored history. Their
// failures are logged, never escalated: the shortlist already shipped.
func (p *Pipeline) runAnalyses() {
	hv := &analyzer.HighVolumeAnalyzer{Recorder: p.Recorder}
	weeks, err := hv.Run()
	if err != nil {
		log.Errorf("high-volume analysis: %v", err)
	} else {
		if err := p.Recorder.ReplaceHighVolumeWeeks(weeks); err != nil {
			log.Errorf("store high-volume weeks: %v", err)
		}
		if err := report.WriteHighVolumeWeeks(p.HighVolumeFile, weeks); err != nil {
			log.Errorf("write high-volume report: %v", err)
		} else {
			log.Infof("high-volume analysis found %d weeks, written to %s", len(weeks), p.HighVolumeFile)
		}
	}

	kx := &analyzer.KnoxvilleAnalyzer{Recorder: p.Recorder}
	events, err := kx.Run()
	if err != nil {
		log.Errorf("knoxville analysis: %v", err)
		return
	}
	if err := p.Recorder.ReplaceDivergences(events); err != nil {
		log.Errorf("store divergences: %v", err)
	}
	if err := report.WriteDivergences(p.KnoxvilleFile, events); err != nil {
		log.Errorf("write divergence report: %v", err)
		return
	}
	log.Infof("knoxville analysis found %d divergences, written to %s", len(events), p.KnoxvilleFile)
}
