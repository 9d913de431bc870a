package marketdata

import "DipSentry/internal/model"

// Source supplies the ordered snapshot sequence a run replays. The sequence
// is finite and consumed front to back; re-running means re-acquiring the
// source.
type Source interface {
	Snapshots() ([]model.MarketSnapshot, error)
	Name() string
}

// SliceSource serves a fixed in-memory snapshot slice.
type SliceSource struct {
	Data []model.MarketSnapshot
}

func (s *SliceSource) Name() string { return "slice" }

func (s *SliceSource) Snapshots() ([]model.MarketSnapshot, error) {
	return s.Data, nil
}
