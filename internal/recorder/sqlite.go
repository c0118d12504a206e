package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"MarketScreener/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteRecorder persists bars and screen results to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis reads don't block the runner's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id             TEXT PRIMARY KEY,
			started_at     INTEGER NOT NULL,
			finished_at    INTEGER,
			symbols_total  INTEGER,
			symbols_skipped INTEGER,
			shortlisted    INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS daily_bars (
			symbol TEXT NOT NULL,
			date   TEXT NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_symbol ON daily_bars(symbol)`,

		`CREATE TABLE IF NOT EXISTS shortlist (
			run_id TEXT NOT NULL,
			symbol TEXT NOT NULL,
			close  REAL,
			ma200  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shortlist_run ON shortlist(run_id)`,

		`CREATE TABLE IF NOT EXISTS high_volume_weeks (
			symbol          TEXT NOT NULL,
			week_start      TEXT NOT NULL,
			week_end        TEXT NOT NULL,
			weekly_volume   REAL,
			volume_multiple REAL,
			rsi             REAL,
			PRIMARY KEY (symbol, week_start)
		)`,

		`CREATE TABLE IF NOT EXISTS divergences (
			symbol TEXT NOT NULL,
			date   TEXT NOT NULL,
			close  REAL,
			PRIMARY KEY (symbol, date)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) StartRun(totalSymbols int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New().String()
	_, err := r.db.Exec(`INSERT INTO runs (id, started_at, symbols_total) VALUES (?,?,?)`,
		id, time.Now().Unix(), totalSymbols)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *SQLiteRecorder) FinishRun(runID string, skipped, shortlisted int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`UPDATE runs SET finished_at=?, symbols_skipped=?, shortlisted=? WHERE id=?`,
		time.Now().Unix(), skipped, shortlisted, runID)
	return err
}

func (r *SQLiteRecorder) ClearDailyBars() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`DELETE FROM daily_bars`)
	return err
}

func (r *SQLiteRecorder) RecordDailyBars(symbol string, bars []model.OHLCV) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO daily_bars
		(symbol, date, open, high, low, close, volume) VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.Time.Format(dateLayout),
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordShortlist(runID string, table model.ShortlistTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	for _, row := range table {
		if _, err := tx.Exec(`INSERT INTO shortlist (run_id, symbol, close, ma200) VALUES (?,?,?,?)`,
			runID, row.Symbol, row.Close, row.MA200); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) ListSymbols() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT symbol FROM daily_bars ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

func (r *SQLiteRecorder) LoadDailyBars(symbol string) ([]model.OHLCV, error) {
	rows, err := r.db.Query(`SELECT date, open, high, low, close, volume
		FROM daily_bars WHERE symbol = ? ORDER BY date ASC`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var date string
		var b model.OHLCV
		if err := rows.Scan(&date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		t, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse bar date %q: %w", date, err)
		}
		b.Time = t
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func (r *SQLiteRecorder) ReplaceHighVolumeWeeks(weeks []model.HighVolumeWeek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM high_volume_weeks`); err != nil {
		tx.Rollback()
		return err
	}
	for _, w := range weeks {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO high_volume_weeks
			(symbol, week_start, week_end, weekly_volume, volume_multiple, rsi)
			VALUES (?,?,?,?,?,?)`,
			w.Symbol, w.WeekStart.Format(dateLayout), w.WeekEnd.Format(dateLayout),
			w.Volume, w.VolumeMultiple, w.RSI); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) ReplaceDivergences(events []model.Divergence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM divergences`); err != nil {
		tx.Rollback()
		return err
	}
	for _, e := range events {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO divergences (symbol, date, close) VALUES (?,?,?)`,
			e.Symbol, e.Date.Format(dateLayout), e.Close); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
