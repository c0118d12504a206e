package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"MarketScreener/internal/model"
)

type symbolRow struct {
	Symbol string `csv:"Symbol"`
}

// LoadSymbols reads the ticker list from a CSV file with a "Symbol" column.
// Other columns are ignored, entries are trimmed, blanks dropped. A file
// whose rows carry no Symbol values at all is rejected.
func LoadSymbols(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol file: %w", err)
	}
	defer f.Close()

	var rows []symbolRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse symbol file %s: %w", path, err)
	}

	symbols := make([]string, 0, len(rows))
	for _, r := range rows {
		sym := strings.TrimSpace(r.Symbol)
		if sym != "" {
			symbols = append(symbols, sym)
		}
	}
	if len(rows) > 0 && len(symbols) == 0 {
		return nil, fmt.Errorf("symbol file %s has no \"Symbol\" column values", path)
	}
	return symbols, nil
}

// WriteShortlist writes the shortlist table to a CSV file with header
// {Symbol, Close, 200_MA}, overwriting any existing file.
func WriteShortlist(path string, table model.ShortlistTable) error {
	return writeCSV(path, &table)
}

type highVolumeRow struct {
	Symbol         string  `csv:"Symbol"`
	WeekStart      string  `csv:"Week_Start"`
	WeekEnd        string  `csv:"Week_End"`
	Volume         float64 `csv:"Weekly_Volume"`
	VolumeMultiple float64 `csv:"Volume_Multiple"`
	RSI            float64 `csv:"RSI"`
}

// WriteHighVolumeWeeks exports the weekly breakout screen results.
func WriteHighVolumeWeeks(path string, weeks []model.HighVolumeWeek) error {
	rows := make([]highVolumeRow, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, highVolumeRow{
			Symbol:         w.Symbol,
			WeekStart:      w.WeekStart.Format("2006-01-02"),
			WeekEnd:        w.WeekEnd.Format("2006-01-02"),
			Volume:         w.Volume,
			VolumeMultiple: w.VolumeMultiple,
			RSI:            w.RSI,
		})
	}
	return writeCSV(path, &rows)
}

type divergenceRow struct {
	Symbol string  `csv:"Symbol"`
	Date   string  `csv:"Date"`
	Close  float64 `csv:"Close"`
}

// WriteDivergences exports the Knoxville divergence screen results.
func WriteDivergences(path string, events []model.Divergence) error {
	rows := make([]divergenceRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, divergenceRow{
			Symbol: e.Symbol,
			Date:   e.Date.Format("2006-01-02"),
			Close:  e.Close,
		})
	}
	return writeCSV(path, &rows)
}

func writeCSV(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
