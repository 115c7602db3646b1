package fundsim

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// MaxSelected is the number of funds kept by every strategy but Personalized.
const MaxSelected = 5

// Strategy is a named allocation heuristic.
type Strategy int

const (
	// Conservative keeps the 5 least volatile funds, weighted by inverse volatility.
	Conservative Strategy = iota
	// Moderate keeps the 5 best return/volatility ratios, weighted by that ratio.
	Moderate
	// Aggressive keeps the 5 best returns, weighted by return.
	Aggressive
	// VeryAggressive keeps the 5 best (return, volatility) pairs, weighted by return*volatility.
	VeryAggressive
	// Personalized keeps every fund with equal weights.
	Personalized
)

var strategyNames = []string{"conservative", "moderate", "aggressive", "very-aggressive", "personalized"}

// Strategies returns all the strategies.
func Strategies() []Strategy {
	return []Strategy{Conservative, Moderate, Aggressive, VeryAggressive, Personalized}
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy parses a strategy name, case insensitive. Spaces and
// underscores are accepted in place of dashes.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer(" ", "-", "_", "-").Replace(n)
	for i, s := range strategyNames {
		if s == n {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q, want one of %s", ErrUnknownStrategy, name, strings.Join(strategyNames, ", "))
}

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// AllocationResult is the outcome of an allocation.
//
// Selected and Weights correspond one to one, in selection order.
// PortfolioRisk assumes zero correlation between funds.
type AllocationResult struct {
	Strategy        Strategy      `json:"strategy"`
	Selected        []FundMetrics `json:"selected"`
	Weights         []float64     `json:"weights"`
	PortfolioReturn Percent       `json:"portfolio_return"`
	PortfolioRisk   Percent       `json:"portfolio_risk"`
}

// allocationRule is the configuration that makes a strategy out of the
// common select, score, normalize and aggregate algorithm.
type allocationRule struct {
	eligible func(FundMetrics) bool     // nil keeps every fund
	compare  func(a, b FundMetrics) int // nil keeps the input order
	score    func(FundMetrics) float64
	cutoff   int // 0 keeps every fund
	none     error
}

func desc(a, b float64) int { return cmp.Compare(b, a) }

var rules = map[Strategy]allocationRule{
	Conservative: {
		// 1/volatility is undefined for a riskless fund: it is not a candidate.
		eligible: func(f FundMetrics) bool { return f.AnnualizedVolatility > 0 },
		compare: func(a, b FundMetrics) int {
			return cmp.Compare(a.AnnualizedVolatility, b.AnnualizedVolatility)
		},
		score:  func(f FundMetrics) float64 { return 1 / float64(f.AnnualizedVolatility) },
		cutoff: MaxSelected,
		none:   ErrZeroVolatility,
	},
	Moderate: {
		compare: func(a, b FundMetrics) int { return desc(a.SharpeLike(), b.SharpeLike()) },
		score:   FundMetrics.SharpeLike,
		cutoff:  MaxSelected,
	},
	Aggressive: {
		compare: func(a, b FundMetrics) int {
			return desc(float64(a.AnnualizedReturn), float64(b.AnnualizedReturn))
		},
		score:  func(f FundMetrics) float64 { return float64(f.AnnualizedReturn) },
		cutoff: MaxSelected,
	},
	VeryAggressive: {
		compare: func(a, b FundMetrics) int {
			if c := desc(float64(a.AnnualizedReturn), float64(b.AnnualizedReturn)); c != 0 {
				return c
			}
			return desc(float64(a.AnnualizedVolatility), float64(b.AnnualizedVolatility))
		},
		score:  func(f FundMetrics) float64 { return float64(f.AnnualizedReturn * f.AnnualizedVolatility) },
		cutoff: MaxSelected,
	},
	Personalized: {
		score: func(FundMetrics) float64 { return 1 },
	},
}

// Allocate selects funds and weights them according to the strategy.
//
// Funds with non finite metrics are not considered. Ties in the ordering
// keep the input order. Selected funds whose score is negative or zero get
// a zero weight. It fails with ErrNoData when there is nothing to allocate,
// and with ErrDivideByZero when no selected fund has a positive score.
func Allocate(strategy Strategy, funds []FundMetrics) (AllocationResult, error) {
	rule, ok := rules[strategy]
	if !ok {
		return AllocationResult{}, fmt.Errorf("%w %v", ErrUnknownStrategy, strategy)
	}
	if len(funds) == 0 {
		return AllocationResult{}, ErrNoData
	}

	candidates := make([]FundMetrics, 0, len(funds))
	for _, f := range funds {
		if f.valid() {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return AllocationResult{}, fmt.Errorf("%w: none of the %d funds has usable metrics", ErrNoData, len(funds))
	}
	if rule.eligible != nil {
		candidates = slices.DeleteFunc(candidates, func(f FundMetrics) bool { return !rule.eligible(f) })
		if len(candidates) == 0 {
			return AllocationResult{}, fmt.Errorf("%w: no fund qualifies for the %v strategy", rule.none, strategy)
		}
	}

	if rule.compare != nil {
		slices.SortStableFunc(candidates, rule.compare)
	}
	if rule.cutoff > 0 && len(candidates) > rule.cutoff {
		candidates = candidates[:rule.cutoff]
	}

	// A selected fund with a non positive score stays selected with a zero
	// weight.
	scores := make([]float64, len(candidates))
	for i, f := range candidates {
		scores[i] = max(rule.score(f), 0)
	}
	if floats.Max(scores) == 0 {
		return AllocationResult{}, fmt.Errorf("cannot weight the %v portfolio: %w: no fund has a positive score", strategy, ErrDivideByZero)
	}
	weights, err := NormalizeWeights(scores)
	if err != nil {
		return AllocationResult{}, fmt.Errorf("cannot weight the %v portfolio: %w", strategy, err)
	}

	ret, risk := Aggregate(candidates, weights)
	return AllocationResult{
		Strategy:        strategy,
		Selected:        candidates,
		Weights:         weights,
		PortfolioReturn: ret,
		PortfolioRisk:   risk,
	}, nil
}

const weightTolerance = 1e-12

// NormalizeWeights divides each score by the sum of the scores.
//
// It fails with ErrDivideByZero when scores is empty or sums to 0, and with
// ErrNegativeWeight when scores of mixed signs produce a weight outside [0,1].
func NormalizeWeights(scores []float64) ([]float64, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: no score to normalize", ErrDivideByZero)
	}
	sum := floats.Sum(scores)
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, fmt.Errorf("%w: scores sum to %v", ErrDivideByZero, sum)
	}
	weights := make([]float64, len(scores))
	for i, score := range scores {
		w := score / sum
		weights[i] = w
		if w < -weightTolerance || w > 1+weightTolerance {
			return nil, fmt.Errorf("%w: score %v gives weight %v", ErrNegativeWeight, score, w)
		}
	}
	return weights, nil
}

// Aggregate returns the weighted average return and the risk of a
// portfolio.
//
// The return is the linear weighted average of the funds' returns. The
// risk is sqrt(sum(w²σ²)): funds are assumed uncorrelated, there is no
// covariance term.
func Aggregate(funds []FundMetrics, weights []float64) (ret, risk Percent) {
	returns := make([]float64, len(funds))
	variances := make([]float64, len(funds))
	for i, f := range funds {
		returns[i] = float64(f.AnnualizedReturn)
		wv := weights[i] * float64(f.AnnualizedVolatility)
		variances[i] = wv * wv
	}
	return Percent(floats.Dot(weights, returns)), Percent(math.Sqrt(floats.Sum(variances)))
}
