package marketdata

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"DipSentry/internal/model"
)

// DefaultFearGreed is assumed when no sentiment data covers a price point.
const DefaultFearGreed = 35

// FileSource reads historical snapshots from the backtest data directory:
// <crypto>_prices_<days>d.json for hourly prices and fear_greed_<days>d.json
// for the sentiment series, aligned to each price point by nearest timestamp.
type FileSource struct {
	Dir    string
	Symbol string
	Days   int
}

// NewFileSource creates a source for the trailing N days of one symbol.
func NewFileSource(dir, symbol string, days int) *FileSource {
	return &FileSource{Dir: dir, Symbol: symbol, Days: days}
}

func (f *FileSource) Name() string { return "file" }

// pricePoint matches the fetch-script output: one timestamp with a symbol ->
// price map whose values may be numbers or strings.
type pricePoint struct {
	Timestamp time.Time                  `json:"timestamp"`
	Prices    map[string]json.RawMessage `json:"prices"`
}

// Snapshots loads, aligns, and sorts the full series.
func (f *FileSource) Snapshots() ([]model.MarketSnapshot, error) {
	priceFile := filepath.Join(f.Dir, fmt.Sprintf("%s_prices_%dd.json", strings.ToLower(f.Symbol), f.Days))
	data, err := os.ReadFile(priceFile)
	if err != nil {
		return nil, fmt.Errorf("read price data for %s: %w", f.Symbol, err)
	}

	var points []pricePoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("parse price data %s: %w", priceFile, err)
	}

	sentiment, err := f.loadFearGreed()
	if err != nil {
		return nil, err
	}

	snapshots := make([]model.MarketSnapshot, 0, len(points))
	for _, p := range points {
		price, ok := parsePrice(p.Prices[f.Symbol])
		if !ok {
			log.Printf("[WARN] no usable %s price at %s, skipping point", f.Symbol, p.Timestamp.Format(time.RFC3339))
			continue
		}
		snapshots = append(snapshots, model.MarketSnapshot{
			Timestamp: p.Timestamp,
			Price:     price,
			FearGreed: nearestFearGreed(sentiment, p.Timestamp),
		})
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no historical data points in %s", priceFile)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp.Before(snapshots[j].Timestamp)
	})

	log.Printf("[INFO] loaded %d price points and %d fear & greed points for %s",
		len(snapshots), len(sentiment), f.Symbol)
	return snapshots, nil
}

// loadFearGreed reads the sentiment series; a missing file is not an error,
// the default value is used instead.
func (f *FileSource) loadFearGreed() ([]model.FearGreedIndex, error) {
	path := filepath.Join(f.Dir, fmt.Sprintf("fear_greed_%dd.json", f.Days))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[WARN] no fear & greed data at %s, using default value %d", path, DefaultFearGreed)
			return nil, nil
		}
		return nil, fmt.Errorf("read fear & greed data: %w", err)
	}
	var series []model.FearGreedIndex
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("parse fear & greed data %s: %w", path, err)
	}
	return series, nil
}

// parsePrice accepts a JSON number or a numeric string.
func parsePrice(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, n > 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, n > 0
		}
	}
	return 0, false
}

// nearestFearGreed picks the sentiment reading closest in time to ts.
func nearestFearGreed(series []model.FearGreedIndex, ts time.Time) int {
	if len(series) == 0 {
		return DefaultFearGreed
	}
	best := series[0]
	bestDiff := absDuration(series[0].Timestamp.Sub(ts))
	for _, fg := range series[1:] {
		if d := absDuration(fg.Timestamp.Sub(ts)); d < bestDiff {
			best = fg
			bestDiff = d
		}
	}
	return best.Value
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
