package fundsim

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fund returns metrics for tests.
func fund(id string, ret, vol float64) FundMetrics {
	return FundMetrics{FundID: id, AnnualizedReturn: Percent(ret), AnnualizedVolatility: Percent(vol)}
}

func ids(funds []FundMetrics) []string {
	res := make([]string, len(funds))
	for i, f := range funds {
		res[i] = f.FundID
	}
	return res
}

func TestAllocate_Conservative(t *testing.T) {
	var funds []FundMetrics
	for _, vol := range []float64{5, 8, 2, 9, 1, 6, 3} {
		funds = append(funds, fund(fmt.Sprint(vol), 7, vol))
	}

	got, err := Allocate(Conservative, funds)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3", "5", "6"}, ids(got.Selected))
	inv := []float64{1, 1.0 / 2, 1.0 / 3, 1.0 / 5, 1.0 / 6}
	var sum float64
	for _, x := range inv {
		sum += x
	}
	require.Len(t, got.Weights, 5)
	var risk float64
	for i, w := range got.Weights {
		assert.InDelta(t, inv[i]/sum, w, 1e-12)
		v := w * float64(got.Selected[i].AnnualizedVolatility)
		risk += v * v
	}
	assert.InDelta(t, 7.0, float64(got.PortfolioReturn), 1e-9)
	assert.InDelta(t, math.Sqrt(risk), float64(got.PortfolioRisk), 1e-9)
}

func TestAllocate_ConservativeZeroVolatility(t *testing.T) {
	funds := []FundMetrics{fund("A", 3, 0), fund("B", 5, 2), fund("C", 8, 4)}
	got, err := Allocate(Conservative, funds)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, ids(got.Selected), "riskless funds are not candidates")
	assert.InDeltaSlice(t, []float64{2.0 / 3, 1.0 / 3}, got.Weights, 1e-12)

	_, err = Allocate(Conservative, []FundMetrics{fund("A", 3, 0), fund("B", 1, 0)})
	assert.ErrorIs(t, err, ErrZeroVolatility)
}

func TestAllocate_Personalized(t *testing.T) {
	funds := []FundMetrics{fund("A", 10, 2), fund("B", 5, 1), fund("C", 8, 3)}
	got, err := Allocate(Personalized, funds)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, ids(got.Selected))
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, got.Weights, 1e-12)
	assert.InDelta(t, 7.667, float64(got.PortfolioReturn), 1e-3)
	assert.InDelta(t, math.Sqrt(4+1+9)/3, float64(got.PortfolioRisk), 1e-12)
}

func TestAllocate_Moderate(t *testing.T) {
	funds := []FundMetrics{
		fund("A", 10, 5), // 2
		fund("B", 9, 3),  // 3
		fund("C", 4, 4),  // 1
		fund("D", 6, 0),  // 0
	}
	got, err := Allocate(Moderate, funds)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C", "D"}, ids(got.Selected))
	assert.InDeltaSlice(t, []float64{0.5, 1.0 / 3, 1.0 / 6, 0}, got.Weights, 1e-12)
}

func TestAllocate_Aggressive(t *testing.T) {
	funds := []FundMetrics{
		fund("A", 1, 1), fund("B", 6, 1), fund("C", 2, 1),
		fund("D", 5, 1), fund("E", 3, 1), fund("F", 4, 1),
	}
	got, err := Allocate(Aggressive, funds)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D", "F", "E", "C"}, ids(got.Selected))
	assert.InDeltaSlice(t, []float64{0.3, 0.25, 0.2, 0.15, 0.1}, got.Weights, 1e-12)
	assert.InDelta(t, (36+25+16+9+4)/20.0, float64(got.PortfolioReturn), 1e-12)
}

func TestAllocate_VeryAggressive(t *testing.T) {
	funds := []FundMetrics{
		fund("A", 5, 1), fund("B", 5, 3), fund("C", 2, 2),
	}
	got, err := Allocate(VeryAggressive, funds)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, ids(got.Selected), "ties on return fall back on volatility")
	assert.InDeltaSlice(t, []float64{15.0 / 24, 5.0 / 24, 4.0 / 24}, got.Weights, 1e-12)
}

func TestAllocate_TiesKeepInputOrder(t *testing.T) {
	funds := []FundMetrics{fund("A", 5, 1), fund("B", 5, 1), fund("C", 5, 1)}
	for _, s := range Strategies() {
		got, err := Allocate(s, funds)
		require.NoError(t, err, s)
		assert.Equal(t, []string{"A", "B", "C"}, ids(got.Selected), s)
	}
}

// TestAllocate_Lengths checks the selection size: the top MaxSelected funds,
// every fund for Personalized. Conservative may select fewer since funds
// without volatility are not candidates (TestAllocate_ConservativeZeroVolatility).
func TestAllocate_Lengths(t *testing.T) {
	for n := 1; n <= 9; n++ {
		var funds []FundMetrics
		for i := range n {
			funds = append(funds, fund(fmt.Sprint(i), float64(i+1), float64(2*i+1)))
		}
		for _, s := range Strategies() {
			got, err := Allocate(s, funds)
			require.NoError(t, err, "%v with %d funds", s, n)

			want := min(MaxSelected, n)
			if s == Personalized {
				want = n
			}
			assert.Len(t, got.Selected, want, "%v with %d funds", s, n)
			assert.Len(t, got.Weights, want, "%v with %d funds", s, n)

			var sum float64
			for _, w := range got.Weights {
				assert.GreaterOrEqual(t, w, 0.0)
				sum += w
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
			assert.GreaterOrEqual(t, float64(got.PortfolioRisk), 0.0)
		}
	}
}

func TestAllocate_Errors(t *testing.T) {
	_, err := Allocate(Moderate, nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Allocate(Aggressive, []FundMetrics{fund("A", math.NaN(), 1)})
	assert.ErrorIs(t, err, ErrNoData, "funds without usable metrics are excluded")

	_, err = Allocate(Aggressive, []FundMetrics{fund("A", -5, 1), fund("B", -2, 1)})
	assert.ErrorIs(t, err, ErrDivideByZero, "no positive score")

	_, err = Allocate(Moderate, []FundMetrics{fund("A", 0, 1), fund("B", -2, 1)})
	assert.ErrorIs(t, err, ErrDivideByZero, "no positive score")

	_, err = Allocate(Strategy(42), []FundMetrics{fund("A", 5, 1)})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestAllocate_NegativeReturns(t *testing.T) {
	funds := []FundMetrics{fund("SPY", 12, 18), fund("GLD", 6, 14), fund("EWZ", -3, 30)}
	tests := []struct {
		strategy Strategy
		want     []float64
	}{
		{Moderate, []float64{(12.0 / 18) / (12.0/18 + 6.0/14), (6.0 / 14) / (12.0/18 + 6.0/14), 0}},
		{Aggressive, []float64{2.0 / 3, 1.0 / 3, 0}},
		{VeryAggressive, []float64{216.0 / 300, 84.0 / 300, 0}},
	}
	for _, tt := range tests {
		got, err := Allocate(tt.strategy, funds)
		require.NoError(t, err, tt.strategy)
		assert.Equal(t, []string{"SPY", "GLD", "EWZ"}, ids(got.Selected), tt.strategy)
		assert.InDeltaSlice(t, tt.want, got.Weights, 1e-12, tt.strategy)
		assert.InDelta(t, 12*tt.want[0]+6*tt.want[1], float64(got.PortfolioReturn), 1e-9, tt.strategy)
	}
}

func TestAllocate_ExcludesInvalidMetrics(t *testing.T) {
	funds := []FundMetrics{fund("A", 5, 1), fund("B", math.Inf(1), 1), fund("C", 3, math.NaN())}
	got, err := Allocate(Personalized, funds)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ids(got.Selected))
}

func TestNormalizeWeights(t *testing.T) {
	tests := []struct {
		scores []float64
		want   []float64
		err    error
	}{
		{[]float64{1, 1, 2}, []float64{0.25, 0.25, 0.5}, nil},
		{[]float64{3}, []float64{1}, nil},
		{[]float64{-1, -3}, []float64{0.25, 0.75}, nil},
		{[]float64{0, 2}, []float64{0, 1}, nil},
		{nil, nil, ErrDivideByZero},
		{[]float64{0, 0}, nil, ErrDivideByZero},
		{[]float64{1, -1}, nil, ErrDivideByZero},
		{[]float64{3, -1}, nil, ErrNegativeWeight},
	}
	for _, tt := range tests {
		got, err := NormalizeWeights(tt.scores)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, "NormalizeWeights(%v)", tt.scores)
			continue
		}
		require.NoError(t, err, "NormalizeWeights(%v)", tt.scores)
		assert.InDeltaSlice(t, tt.want, got, 1e-12, "NormalizeWeights(%v)", tt.scores)
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies() {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	got, err := ParseStrategy("Very Aggressive")
	require.NoError(t, err)
	assert.Equal(t, VeryAggressive, got)

	_, err = ParseStrategy("reckless")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
