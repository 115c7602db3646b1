package fundsim

import (
	"fmt"
	"math"

	"github.com/etnz/fundsim/date"
)

// PricePoint is the close price and the dividend paid by a fund on a given day.
type PricePoint struct {
	Date     date.Date `json:"date"`
	Close    float64   `json:"close"`
	Dividend float64   `json:"dividend,omitempty"` // per share, 0 when none was paid
}

// Series is a chronological sequence of PricePoint, oldest first, with no
// duplicated dates.
//
// A Series is never modified by this package: every method returns a new
// slice or a scalar.
type Series []PricePoint

// Len returns the number of points.
func (s Series) Len() int { return len(s) }

// Closes returns the close prices in chronological order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// Dividends returns the dividends in chronological order.
func (s Series) Dividends() []float64 {
	divs := make([]float64, len(s))
	for i, p := range s {
		divs[i] = p.Dividend
	}
	return divs
}

// First returns the oldest point and true, or false if s is empty.
func (s Series) First() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[0], true
}

// Last returns the most recent point and true, or false if s is empty.
func (s Series) Last() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// Since returns the points dated on or after day.
func (s Series) Since(day date.Date) Series {
	for i, p := range s {
		if !p.Date.Before(day) {
			return s[i:]
		}
	}
	return s[len(s):]
}

// Trailing returns the points of the last 'years' years, counted back from
// the most recent point. A non positive 'years' returns the whole series.
func (s Series) Trailing(years int) Series {
	last, ok := s.Last()
	if !ok || years <= 0 {
		return s
	}
	return s.Since(last.Date.AddYears(-years))
}

// usable reports whether a close is finite and strictly positive.
func usable(c float64) bool { return c > 0 && !math.IsInf(c, 1) }

// Check verifies the closes can be used in a return computation: there are
// at least 2 points, every close is finite and strictly positive and dates
// are strictly increasing.
func (s Series) Check() error {
	if len(s) < 2 {
		return fmt.Errorf("%w: %d price(s), need at least 2", ErrInsufficientData, len(s))
	}
	for i, p := range s {
		if !usable(p.Close) {
			return fmt.Errorf("%w: invalid close %v on %v", ErrInsufficientData, p.Close, p.Date)
		}
		if i > 0 && !p.Date.After(s[i-1].Date) {
			return fmt.Errorf("%w: %v is not after %v", ErrInsufficientData, p.Date, s[i-1].Date)
		}
	}
	return nil
}
