package fundsim

import (
	"context"
	"math"
	"testing"

	"github.com/etnz/fundsim/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(points []ProjectionPoint) []float64 {
	res := make([]float64, len(points))
	for i, p := range points {
		res[i] = p.Value
	}
	return res
}

func TestProject_Continuous(t *testing.T) {
	got, err := Project(1000, 0.10, 3, Continuous)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.InDeltaSlice(t, []float64{1000, 1105.17, 1221.40, 1349.86}, values(got), 0.01)
	for i, p := range got {
		assert.Equal(t, i, p.Year)
		assert.InDelta(t, 1000*math.Exp(0.1*float64(i)), p.Value, 1e-9)
	}
}

func TestProject_Annual(t *testing.T) {
	got, err := Project(100000, 0.05, 2, Annual)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{100000, 105000, 110250}, values(got), 1e-6)

	final, err := ProjectFinal(100000, 0.05, 2, Annual)
	require.NoError(t, err)
	assert.InDelta(t, 110250, final, 1e-6)
}

func TestProject_ZeroYears(t *testing.T) {
	got, err := Project(500, 0.2, 0, Continuous)
	require.NoError(t, err)
	assert.Equal(t, []ProjectionPoint{{Year: 0, Value: 500}}, got)
}

func TestProject_InvalidArguments(t *testing.T) {
	tests := []struct {
		initial, rate float64
		years         int
	}{
		{0, 0.1, 3},
		{-10, 0.1, 3},
		{math.NaN(), 0.1, 3},
		{100, math.Inf(1), 3},
		{100, 0.1, -1},
	}
	for _, tt := range tests {
		_, err := Project(tt.initial, tt.rate, tt.years, Annual)
		assert.ErrorIs(t, err, ErrInvalidArgument, "Project(%v, %v, %v)", tt.initial, tt.rate, tt.years)
	}
}

func TestParseCompounding(t *testing.T) {
	for _, c := range []Compounding{Continuous, Annual} {
		got, err := ParseCompounding(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompounding("monthly")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWeightedReturns(t *testing.T) {
	p := MapProvider{
		"A": daily("2020-01-01", linear(252, 100, 110)...),
		"B": daily("2020-01-01", linear(504, 50, 72)...),
	}
	ctx := context.Background()

	got, err := WeightedLogReturn(ctx, p, []string{"A", "B"})
	require.NoError(t, err)
	assert.InDelta(t, (math.Log(1.1)+math.Log(1.44)/2)/2, got, 1e-12)

	geo, err := WeightedGeometricReturn(ctx, p, []string{"A", "B"})
	require.NoError(t, err)
	assert.InDelta(t, (0.1+0.2)/2, geo, 1e-12)

	_, err = WeightedLogReturn(ctx, p, nil)
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = WeightedGeometricReturn(ctx, p, []string{"A", "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	p["C"] = daily("2020-01-01", 10)
	_, err = WeightedLogReturn(ctx, p, []string{"A", "C"})
	assert.ErrorIs(t, err, ErrInsufficientData)
	var fe *FundError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "C", fe.Fund)
}

func TestProjectionRate(t *testing.T) {
	p := MapProvider{"A": daily("2020-01-01", linear(252, 100, 110)...)}
	ctx := context.Background()

	geo, err := ProjectionRate(ctx, p, []string{"A"}, Annual)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, geo, 1e-12)

	lg, err := ProjectionRate(ctx, p, []string{"A"}, Continuous)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(1.1), lg, 1e-12)
}

func TestTrailingProvider(t *testing.T) {
	p := MapProvider{"A": Series{
		{Date: date.New(2015, 6, 1), Close: 1},
		{Date: date.New(2020, 6, 1), Close: 2},
		{Date: date.New(2025, 6, 1), Close: 4},
	}}
	ctx := context.Background()

	s, err := TrailingProvider(p, 5).Series(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, s, 2)

	s, err = TrailingProvider(p, 0).Series(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, s, 3)

	_, err = TrailingProvider(p, 5).Series(ctx, "B")
	assert.ErrorIs(t, err, ErrNotFound)
}
