package strategy

import (
	"math"
	"testing"
)

func TestInvestmentFraction_Endpoints(t *testing.T) {
	cfg := testTradingConfig()

	// Exactly the threshold dip sizes at the minimum.
	if got := InvestmentFraction(0.05, cfg); math.Abs(got-0.08) > 1e-12 {
		t.Errorf("fraction at threshold = %g, want 0.08", got)
	}
	// A total dip sizes at the maximum.
	if got := InvestmentFraction(1.0, cfg); math.Abs(got-0.20) > 1e-12 {
		t.Errorf("fraction at full dip = %g, want 0.20", got)
	}
}

func TestInvestmentFraction_SentimentOnly(t *testing.T) {
	cfg := testTradingConfig()
	// Zero magnitude (sentiment-only signal) sizes at the minimum.
	if got := InvestmentFraction(0, cfg); math.Abs(got-0.08) > 1e-12 {
		t.Errorf("fraction for sentiment-only = %g, want 0.08", got)
	}
}

func TestInvestmentFraction_LinearInterpolation(t *testing.T) {
	cfg := testTradingConfig()
	// Halfway between threshold (0.05) and 1.0.
	mid := 0.05 + (1-0.05)/2
	want := 0.08 + (0.20-0.08)/2
	if got := InvestmentFraction(mid, cfg); math.Abs(got-want) > 1e-12 {
		t.Errorf("fraction at midpoint = %g, want %g", got, want)
	}
}

func TestInvestmentFraction_Monotonic(t *testing.T) {
	cfg := testTradingConfig()
	prev := 0.0
	for d := 0.05; d <= 1.0; d += 0.01 {
		got := InvestmentFraction(d, cfg)
		if got < prev {
			t.Fatalf("fraction decreased at dip %g: %g < %g", d, got, prev)
		}
		if got < 0.08-1e-12 || got > 0.20+1e-12 {
			t.Fatalf("fraction %g out of bounds at dip %g", got, d)
		}
		prev = got
	}
}

func TestInvestmentFraction_ClampsAboveOne(t *testing.T) {
	cfg := testTradingConfig()
	if got := InvestmentFraction(1.5, cfg); math.Abs(got-0.20) > 1e-12 {
		t.Errorf("fraction above full dip = %g, want 0.20", got)
	}
}
