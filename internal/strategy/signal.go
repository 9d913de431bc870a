package strategy

import (
	"DipSentry/internal/config"
	"DipSentry/internal/model"
)

// EvaluateSignal decides whether a buy condition is active for the current
// snapshot. Two independent triggers feed the combined signal:
//
//   - sentiment: the Fear & Greed index is below the configured threshold;
//   - dip: the price has fallen from the recent high by at least
//     buy_the_dip_percent.
//
// The signal is active when either fires. DipMagnitude carries the fractional
// decline only when the dip trigger fired; a sentiment-only signal keeps it
// at zero so no dip-based scaling applies downstream.
//
// recentHigh is the highest price over the rolling window including the
// current tick. Pure function, no side effects.
func EvaluateSignal(snap model.MarketSnapshot, recentHigh float64, cfg *config.TradingConfig) model.BuySignal {
	sig := model.BuySignal{}

	if snap.FearGreed < cfg.FearGreedThreshold {
		sig.SentimentTriggered = true
	}

	dipThreshold := cfg.BuyTheDipPercent / 100
	if recentHigh > 0 {
		drop := (recentHigh - snap.Price) / recentHigh
		if drop >= dipThreshold {
			sig.DipTriggered = true
			sig.DipMagnitude = clamp(drop, dipThreshold, 1)
		}
	}

	sig.Active = sig.SentimentTriggered || sig.DipTriggered
	return sig
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
