package chart

import (
	"testing"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pngMagic = "\x89PNG\r\n\x1a\n"

func TestProjection(t *testing.T) {
	values, err := fundsim.ProjectMoney(fundsim.M(1000, "USD"), 0.08, 10, fundsim.Annual)
	require.NoError(t, err)

	img, err := Projection("Retirement", values, 30)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, string(img[:len(pngMagic)]))

	_, err = Projection("Nothing", nil, 0)
	assert.ErrorIs(t, err, fundsim.ErrInvalidArgument)
}

func TestAllocation(t *testing.T) {
	res, err := fundsim.Allocate(fundsim.Conservative, []fundsim.FundMetrics{
		{FundID: "GLD", AnnualizedReturn: 8, AnnualizedVolatility: 10},
		{FundID: "SPY", AnnualizedReturn: 12, AnnualizedVolatility: 20},
		{FundID: "TLT", AnnualizedReturn: 3, AnnualizedVolatility: 5},
	})
	require.NoError(t, err)

	img, err := Allocation(res)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, string(img[:len(pngMagic)]))

	_, err = Allocation(fundsim.AllocationResult{})
	assert.ErrorIs(t, err, fundsim.ErrEmptySelection)
}

func TestHistory(t *testing.T) {
	day := date.New(2024, 1, 1)
	series := map[string]fundsim.Series{
		"A": {{Date: day, Close: 10}, {Date: day.Add(1), Close: 11}, {Date: day.Add(2), Close: 12}},
		"B": {{Date: day.Add(1), Close: 50}, {Date: day.Add(2), Close: 40}},
		"C": {{Date: day, Close: 1}},
	}

	img, err := History(series, []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, string(img[:len(pngMagic)]))

	_, err = History(series, []string{"A", "C"})
	var fe *fundsim.FundError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "C", fe.Fund)

	_, err = History(series, nil)
	assert.ErrorIs(t, err, fundsim.ErrEmptySelection)
}
