// Package liner decides whether a marketing liner is read out with a
// response and which one.
package liner

import (
	"math/rand"

	"github.com/steelegbr/solidradioalexa/internal/musicstats"
)

// Selector draws liners for stations. The zero value is not usable; use
// NewSelector.
type Selector struct {
	float func() float64
	intN  func(n int) int
}

// NewSelector returns a Selector backed by the shared, goroutine-safe
// random source.
func NewSelector() *Selector {
	return &Selector{float: rand.Float64, intN: rand.Intn}
}

// Select returns the line of a randomly chosen liner, or "" when the station
// does not use liners or the draw misses. A draw r in [0,1) hits when
// r > 1 - station.LinerRatio; the ratio is not range checked.
func (s *Selector) Select(station musicstats.Station, liners []musicstats.Liner) string {
	if !station.UseLiners {
		return ""
	}
	threshold := 1.0 - station.LinerRatio
	if s.float() <= threshold {
		return ""
	}
	if len(liners) == 0 {
		return ""
	}
	return liners[s.intN(len(liners))].Line
}
