package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"MarketScreener/internal/collector"
	"MarketScreener/internal/config"
	"MarketScreener/internal/pipeline"
	"MarketScreener/internal/publisher"
	"MarketScreener/internal/recorder"
	"MarketScreener/internal/scheduler"
	"MarketScreener/internal/screener"
)

func main() {
	log.Info("MarketScreener starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	// Init fetcher and collector
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Infof("data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Input.SymbolSuffix, cfg.Fetch.HistoryDays, cfg.Screen.MAPeriod)

	// Init recorder
	var rec recorder.Recorder
	analyze := false
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			analyze = true
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init spreadsheet publisher
	var pub *publisher.SheetsPublisher
	if cfg.Sheets.SpreadsheetTitle != "" {
		pub = publisher.NewSheetsPublisher(cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetTitle)
	} else {
		log.Warn("sheets.spreadsheet_title not set, spreadsheet publishing disabled")
	}

	runner := screener.NewRunner(col, rec, cfg.Screen.DropThreshold, cfg.Fetch.Workers)
	pipe := &pipeline.Pipeline{
		Runner:         runner,
		Recorder:       rec,
		Publisher:      pub,
		SymbolFile:     cfg.Input.SymbolFile,
		ReportFile:     cfg.Output.ReportFile,
		HighVolumeFile: cfg.Analysis.HighVolumeFile,
		KnoxvilleFile:  cfg.Analysis.KnoxvilleFile,
		Analyze:        analyze,
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One-shot unless a cron schedule is configured
	if cfg.Schedule.DailyCron == "" {
		if err := pipe.Run(ctx); err != nil {
			log.Fatalf("screen failed: %v", err)
		}
		log.Info("MarketScreener finished")
		return
	}

	sched := scheduler.NewScheduler(ctx, pipe)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, executing screen now")
		go sched.RunNow()
	}

	log.Info("MarketScreener is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	cancel()
	log.Info("MarketScreener stopped")
}
