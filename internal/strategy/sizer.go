package strategy

import "DipSentry/internal/config"

// InvestmentFraction converts a dip magnitude into the fraction of available
// fiat to invest, as a value in [min_investment_percent, max_investment_percent]/100.
//
// At the threshold dip it returns exactly the minimum fraction, at a total
// (100%) dip exactly the maximum, linearly interpolated in between. A zero
// magnitude means the signal was sentiment-only; that also sizes at the
// minimum fraction.
//
// Deterministic and stateless: identical inputs always produce the same
// fraction.
func InvestmentFraction(dipMagnitude float64, cfg *config.TradingConfig) float64 {
	min := cfg.MinInvestmentPercent / 100
	max := cfg.MaxInvestmentPercent / 100
	threshold := cfg.BuyTheDipPercent / 100

	if dipMagnitude <= threshold {
		return min
	}
	if dipMagnitude >= 1 {
		return max
	}
	return min + (max-min)*(dipMagnitude-threshold)/(1-threshold)
}
