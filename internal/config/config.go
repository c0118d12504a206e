package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Input struct {
		SymbolFile   string `yaml:"symbol_file"`
		SymbolSuffix string `yaml:"symbol_suffix"`
	} `yaml:"input"`
	Fetch struct {
		HistoryDays int `yaml:"history_days"`
		Workers     int `yaml:"workers"`
	} `yaml:"fetch"`
	Screen struct {
		MAPeriod      int     `yaml:"ma_period"`
		DropThreshold float64 `yaml:"drop_threshold"`
	} `yaml:"screen"`
	Output struct {
		ReportFile string `yaml:"report_file"`
	} `yaml:"output"`
	Sheets struct {
		SpreadsheetTitle string `yaml:"spreadsheet_title"`
		CredentialsFile  string `yaml:"credentials_file"`
	} `yaml:"sheets"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Analysis struct {
		HighVolumeFile string `yaml:"high_volume_file"`
		KnoxvilleFile  string `yaml:"knoxville_file"`
	} `yaml:"analysis"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SYMBOL_FILE"); v != "" {
		cfg.Input.SymbolFile = v
	}
	if v := os.Getenv("SYMBOL_SUFFIX"); v != "" {
		cfg.Input.SymbolSuffix = v
	}
	if v := os.Getenv("FETCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.Workers = n
		}
	}
	if v := os.Getenv("REPORT_FILE"); v != "" {
		cfg.Output.ReportFile = v
	}
	if v := os.Getenv("SPREADSHEET_TITLE"); v != "" {
		cfg.Sheets.SpreadsheetTitle = v
	}
	if v := os.Getenv("SHEETS_CREDENTIALS_FILE"); v != "" {
		cfg.Sheets.CredentialsFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Input.SymbolFile == "" {
		cfg.Input.SymbolFile = "stocks.csv"
	}
	if cfg.Input.SymbolSuffix == "" {
		cfg.Input.SymbolSuffix = ".NS"
	}
	if cfg.Fetch.HistoryDays == 0 {
		cfg.Fetch.HistoryDays = 365
	}
	if cfg.Fetch.Workers == 0 {
		cfg.Fetch.Workers = 20
	}
	if cfg.Screen.MAPeriod == 0 {
		cfg.Screen.MAPeriod = 200
	}
	if cfg.Screen.DropThreshold == 0 {
		cfg.Screen.DropThreshold = 0.15
	}
	if cfg.Output.ReportFile == "" {
		cfg.Output.ReportFile = "shortlisted_stocks.csv"
	}
	if cfg.Sheets.CredentialsFile == "" {
		cfg.Sheets.CredentialsFile = "service_account.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/screener.db"
	}
	if cfg.Analysis.HighVolumeFile == "" {
		cfg.Analysis.HighVolumeFile = "high_volume_weeks.csv"
	}
	if cfg.Analysis.KnoxvilleFile == "" {
		cfg.Analysis.KnoxvilleFile = "bullish_knoxville_divergence.csv"
	}

	return cfg, nil
}

// Validate checks that all required fields are coherent.
func (c *Config) Validate() error {
	if c.Input.SymbolFile == "" {
		return fmt.Errorf("input.symbol_file is required")
	}
	if c.Fetch.Workers <= 0 {
		return fmt.Errorf("fetch.workers must be positive")
	}
	if c.Screen.MAPeriod <= 0 {
		return fmt.Errorf("screen.ma_period must be positive")
	}
	if c.Screen.DropThreshold <= 0 || c.Screen.DropThreshold >= 1 {
		return fmt.Errorf("screen.drop_threshold must be between 0 and 1")
	}
	return nil
}
