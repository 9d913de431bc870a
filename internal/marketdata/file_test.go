package marketdata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"DipSentry/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFileSource_LoadsAndAligns(t *testing.T) {
	dir := t.TempDir()
	// Out of order on purpose; string and numeric prices mixed.
	writeFile(t, dir, "btc_prices_30d.json", `[
		{"timestamp": "2024-03-01T01:00:00Z", "prices": {"BTC": "94.5"}},
		{"timestamp": "2024-03-01T00:00:00Z", "prices": {"BTC": 100}}
	]`)
	writeFile(t, dir, "fear_greed_30d.json", `[
		{"value": 55, "classification": "Greed", "timestamp": "2024-03-01T00:10:00Z"},
		{"value": 25, "classification": "Fear", "timestamp": "2024-03-01T01:05:00Z"}
	]`)

	src := NewFileSource(dir, "BTC", 30)
	snaps, err := src.Snapshots()
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if !snaps[0].Timestamp.Before(snaps[1].Timestamp) {
		t.Error("snapshots not sorted by timestamp")
	}
	if snaps[0].Price != 100 || snaps[0].FearGreed != 55 {
		t.Errorf("first snapshot = %+v, want price 100 fgi 55", snaps[0])
	}
	if snaps[1].Price != 94.5 || snaps[1].FearGreed != 25 {
		t.Errorf("second snapshot = %+v, want price 94.5 fgi 25", snaps[1])
	}
}

func TestFileSource_MissingFearGreedUsesDefault(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "btc_prices_7d.json", `[
		{"timestamp": "2024-03-01T00:00:00Z", "prices": {"BTC": 100}}
	]`)

	snaps, err := NewFileSource(dir, "BTC", 7).Snapshots()
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if snaps[0].FearGreed != DefaultFearGreed {
		t.Errorf("fgi = %d, want default %d", snaps[0].FearGreed, DefaultFearGreed)
	}
}

func TestFileSource_SkipsUnusablePricePoints(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "btc_prices_7d.json", `[
		{"timestamp": "2024-03-01T00:00:00Z", "prices": {"ETH": 3000}},
		{"timestamp": "2024-03-01T01:00:00Z", "prices": {"BTC": 0}},
		{"timestamp": "2024-03-01T02:00:00Z", "prices": {"BTC": 99.5}}
	]`)

	snaps, err := NewFileSource(dir, "BTC", 7).Snapshots()
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if len(snaps) != 1 || snaps[0].Price != 99.5 {
		t.Fatalf("got %+v, want single snapshot at 99.5", snaps)
	}
}

func TestFileSource_MissingPriceFileFails(t *testing.T) {
	src := NewFileSource(t.TempDir(), "BTC", 30)
	if _, err := src.Snapshots(); err == nil {
		t.Fatal("expected error for missing price file")
	}
}

func TestNearestFearGreed_PicksClosest(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	series := []model.FearGreedIndex{
		{Value: 10, Timestamp: base.Add(-2 * time.Hour)},
		{Value: 20, Timestamp: base.Add(30 * time.Minute)},
		{Value: 30, Timestamp: base.Add(3 * time.Hour)},
	}
	if got := nearestFearGreed(series, base); got != 20 {
		t.Errorf("nearest = %d, want 20", got)
	}
	if got := nearestFearGreed(nil, base); got != DefaultFearGreed {
		t.Errorf("empty series = %d, want default %d", got, DefaultFearGreed)
	}
}
