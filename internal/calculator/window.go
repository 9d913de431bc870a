package calculator

// RollingHigh tracks the highest price seen over a bounded window of recent
// ticks. Push once per tick, before signal evaluation; the window then covers
// the current tick and the size-1 ticks before it.
type RollingHigh struct {
	prices []float64
	size   int
}

// NewRollingHigh creates a window holding at most size prices.
func NewRollingHigh(size int) *RollingHigh {
	if size < 1 {
		size = 1
	}
	return &RollingHigh{prices: make([]float64, 0, size), size: size}
}

// Push appends a price, evicting the oldest once the window is full.
func (w *RollingHigh) Push(price float64) {
	w.prices = append(w.prices, price)
	if len(w.prices) > w.size {
		w.prices = w.prices[len(w.prices)-w.size:]
	}
}

// High returns the highest price in the window, or 0 when empty.
func (w *RollingHigh) High() float64 {
	high := 0.0
	for _, p := range w.prices {
		if p > high {
			high = p
		}
	}
	return high
}

// Len returns the number of prices currently in the window.
func (w *RollingHigh) Len() int {
	return len(w.prices)
}

// Reset empties the window.
func (w *RollingHigh) Reset() {
	w.prices = w.prices[:0]
}
