package collector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockAdvisor/internal/model"
)

// CSVSource reads daily bars from a CSV file with the header
// date,open,high,low,close,volume. Dates are YYYY-MM-DD.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a source for the given file.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (c *CSVSource) Name() string { return "csv:" + c.Path }

func (c *CSVSource) LoadBars() ([]model.OHLCV, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("open bars: %w", err)
	}
	defer f.Close()
	return ParseBars(f)
}

var barColumns = []string{"date", "open", "high", "low", "close", "volume"}

// ParseBars decodes CSV bars and returns them in chronological order.
func ParseBars(r io.Reader) ([]model.OHLCV, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("bars file is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range barColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var bars []model.OHLCV
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bar, err := parseBar(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, errors.New("bars file has no rows")
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func parseBar(rec []string, idx map[string]int) (model.OHLCV, error) {
	var bar model.OHLCV
	ts, err := time.Parse("2006-01-02", rec[idx["date"]])
	if err != nil {
		return bar, fmt.Errorf("parse date: %w", err)
	}
	bar.Time = ts

	fields := []struct {
		col string
		dst *float64
	}{
		{"open", &bar.Open},
		{"high", &bar.High},
		{"low", &bar.Low},
		{"close", &bar.Close},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(rec[idx[f.col]], 64)
		if err != nil {
			return bar, fmt.Errorf("parse %s: %w", f.col, err)
		}
		*f.dst = v
	}

	vol, err := strconv.ParseInt(rec[idx["volume"]], 10, 64)
	if err != nil {
		// some exports write volume as 1.5e+06
		fv, ferr := strconv.ParseFloat(rec[idx["volume"]], 64)
		if ferr != nil {
			return bar, fmt.Errorf("parse volume: %w", err)
		}
		vol = int64(fv)
	}
	bar.Volume = vol
	return bar, nil
}
