package calculator

import "testing"

func TestRollingHigh_Empty(t *testing.T) {
	w := NewRollingHigh(10)
	if got := w.High(); got != 0 {
		t.Errorf("empty window high = %g, want 0", got)
	}
}

func TestRollingHigh_TracksMax(t *testing.T) {
	w := NewRollingHigh(5)
	for _, p := range []float64{100, 104, 102, 101} {
		w.Push(p)
	}
	if got := w.High(); got != 104 {
		t.Errorf("high = %g, want 104", got)
	}
}

func TestRollingHigh_EvictsOldPrices(t *testing.T) {
	w := NewRollingHigh(3)
	for _, p := range []float64{110, 100, 99, 98} {
		w.Push(p)
	}
	// 110 has fallen out of the window
	if got := w.High(); got != 100 {
		t.Errorf("high = %g, want 100 after eviction", got)
	}
	if w.Len() != 3 {
		t.Errorf("len = %d, want 3", w.Len())
	}
}

func TestRollingHigh_MinimumSize(t *testing.T) {
	w := NewRollingHigh(0)
	w.Push(50)
	w.Push(40)
	if got := w.High(); got != 40 {
		t.Errorf("high = %g, want 40 with window clamped to 1", got)
	}
}
