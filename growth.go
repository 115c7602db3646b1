package fundsim

import (
	"context"
	"fmt"
	"math"
)

// Compounding is the convention used to grow an amount at a given rate.
type Compounding int

const (
	// Continuous grows an amount as amount*e^(rate*t), it goes with log returns.
	Continuous Compounding = iota
	// Annual grows an amount as amount*(1+rate)^t, it goes with geometric returns.
	Annual
)

func (c Compounding) String() string {
	switch c {
	case Continuous:
		return "continuous"
	case Annual:
		return "annual"
	default:
		return fmt.Sprintf("compounding(%d)", int(c))
	}
}

// ParseCompounding parses "continuous" or "annual".
func ParseCompounding(s string) (Compounding, error) {
	switch s {
	case "continuous", "log":
		return Continuous, nil
	case "annual", "discrete", "geometric":
		return Annual, nil
	}
	return 0, fmt.Errorf("%w: unknown compounding %q", ErrInvalidArgument, s)
}

// growth returns the growth factor of 1 after t years.
func (c Compounding) growth(rate float64, t int) float64 {
	if c == Continuous {
		return math.Exp(rate * float64(t))
	}
	return math.Pow(1+rate, float64(t))
}

// ProjectionPoint is the projected value of an investment after Year years.
type ProjectionPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Project returns the value of 'initial' grown at 'rate' (a fraction, not a
// percent) for every year from 0 to 'years' included, that is years+1 points.
func Project(initial, rate float64, years int, mode Compounding) ([]ProjectionPoint, error) {
	if err := checkProjection(initial, rate, years); err != nil {
		return nil, err
	}
	points := make([]ProjectionPoint, years+1)
	for t := range points {
		points[t] = ProjectionPoint{Year: t, Value: initial * mode.growth(rate, t)}
	}
	return points, nil
}

// ProjectFinal returns only the value of 'initial' grown at 'rate' after 'years' years.
func ProjectFinal(initial, rate float64, years int, mode Compounding) (float64, error) {
	if err := checkProjection(initial, rate, years); err != nil {
		return 0, err
	}
	return initial * mode.growth(rate, years), nil
}

func checkProjection(initial, rate float64, years int) error {
	switch {
	case !(initial > 0) || math.IsInf(initial, 0):
		return fmt.Errorf("%w: initial amount %v must be positive", ErrInvalidArgument, initial)
	case math.IsNaN(rate) || math.IsInf(rate, 0):
		return fmt.Errorf("%w: rate %v", ErrInvalidArgument, rate)
	case years < 0:
		return fmt.Errorf("%w: %d years must not be negative", ErrInvalidArgument, years)
	}
	return nil
}

// EqualWeightedRate averages rate(s) over all series with equal weights 1/n.
//
// It fails with ErrEmptySelection when there is no series, and with the
// first failure of rate otherwise.
func EqualWeightedRate(series map[string]Series, order []string, rate func(Series) (float64, error)) (float64, error) {
	if len(order) == 0 {
		return 0, ErrEmptySelection
	}
	weight := 1 / float64(len(order))
	var total float64
	for _, id := range order {
		r, err := rate(series[id])
		if err != nil {
			return 0, fundErr(id, err)
		}
		total += weight * r
	}
	return total, nil
}

// WeightedLogReturn is the equal-weighted average of the funds' AnnualizedLogReturnSingle.
func WeightedLogReturn(ctx context.Context, p SeriesProvider, fundIDs []string) (float64, error) {
	return weightedRate(ctx, p, fundIDs, AnnualizedLogReturnSingle)
}

// WeightedGeometricReturn is the equal-weighted average of the funds' AnnualizedGeometricReturn.
func WeightedGeometricReturn(ctx context.Context, p SeriesProvider, fundIDs []string) (float64, error) {
	return weightedRate(ctx, p, fundIDs, AnnualizedGeometricReturn)
}

func weightedRate(ctx context.Context, p SeriesProvider, fundIDs []string, rate func(Series) (float64, error)) (float64, error) {
	if len(fundIDs) == 0 {
		return 0, ErrEmptySelection
	}
	series := make(map[string]Series, len(fundIDs))
	for _, id := range fundIDs {
		s, err := p.Series(ctx, id)
		if err != nil {
			return 0, fundErr(id, err)
		}
		series[id] = s
	}
	return EqualWeightedRate(series, fundIDs, rate)
}

// ProjectionRate is the equal-weighted rate of the funds matching the
// compounding mode: log returns for Continuous, geometric returns for Annual.
func ProjectionRate(ctx context.Context, p SeriesProvider, fundIDs []string, mode Compounding) (float64, error) {
	if mode == Annual {
		return WeightedGeometricReturn(ctx, p, fundIDs)
	}
	return WeightedLogReturn(ctx, p, fundIDs)
}
