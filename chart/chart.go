// Package chart draws fundsim results as PNG images.
package chart

import (
	"fmt"
	"strconv"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/date"
	charts "github.com/vicanso/go-charts/v2"
)

const (
	width  = 800
	height = 600
)

// Projection draws the year by year value of an investment. When startAge
// is positive the x axis shows the investor's age instead of the year.
func Projection(title string, values []fundsim.Money, startAge int) ([]byte, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no projected value", fundsim.ErrInvalidArgument)
	}
	labels := make([]string, len(values))
	points := make([]float64, len(values))
	for i, v := range values {
		labels[i] = strconv.Itoa(i)
		if startAge > 0 {
			labels[i] = strconv.Itoa(startAge + i)
		}
		points[i] = v.Float()
	}
	subtitle := fmt.Sprintf("%s to %s", values[0], values[len(values)-1])

	p, err := charts.LineRender(
		[][]float64{points},
		charts.TitleTextOptionFunc(title, subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: splits(len(labels)),
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(width),
		charts.HeightOptionFunc(height),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render projection chart: %w", err)
	}
	return p.Bytes()
}

// Allocation draws the weights of an allocation as a pie.
func Allocation(res fundsim.AllocationResult) ([]byte, error) {
	if len(res.Weights) == 0 {
		return nil, fundsim.ErrEmptySelection
	}
	var labels []string
	for i, f := range res.Selected {
		labels = append(labels, fmt.Sprintf("%s (%.1f%%)", f.FundID, res.Weights[i]*100))
	}

	p, err := charts.PieRender(
		res.Weights,
		charts.TitleTextOptionFunc(fmt.Sprintf("%s allocation", res.Strategy), fmt.Sprintf("return %s, volatility %s", res.PortfolioReturn, res.PortfolioRisk)),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: labels,
			Top:  charts.PositionBottom,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(width),
		charts.HeightOptionFunc(height),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render allocation chart: %w", err)
	}
	return p.Bytes()
}

// History draws the closing prices of funds rebased to 100 at their first
// common day.
func History(series map[string]fundsim.Series, order []string) ([]byte, error) {
	if len(order) == 0 {
		return nil, fundsim.ErrEmptySelection
	}
	// common days only
	var start date.Date
	for _, id := range order {
		first, ok := series[id].First()
		if !ok {
			return nil, &fundsim.FundError{Fund: id, Err: fundsim.ErrInsufficientData}
		}
		if first.Date.After(start) {
			start = first.Date
		}
	}
	var labels []string
	var lines [][]float64
	for i, id := range order {
		s := series[id].Since(start)
		if len(s) < 2 {
			return nil, &fundsim.FundError{Fund: id, Err: fundsim.ErrInsufficientData}
		}
		base := s[0].Close
		if base == 0 {
			return nil, &fundsim.FundError{Fund: id, Err: fundsim.ErrDivideByZero}
		}
		line := make([]float64, len(s))
		for j, p := range s {
			line[j] = 100 * p.Close / base
		}
		lines = append(lines, line)
		if i == 0 {
			for _, p := range s {
				labels = append(labels, p.Date.String())
			}
		}
	}
	// charts expects every line to match the x axis
	n := len(labels)
	for _, l := range lines[1:] {
		n = min(n, len(l))
	}
	for i := range lines {
		lines[i] = lines[i][:n]
	}
	labels = labels[:n]

	p, err := charts.LineRender(
		lines,
		charts.TitleTextOptionFunc("Price history", "rebased to 100 on "+start.String()),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: splits(n),
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.LegendOptionFunc(charts.LegendOption{Data: order}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(width),
		charts.HeightOptionFunc(height),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render history chart: %w", err)
	}
	return p.Bytes()
}

// splits is the number of x axis labels for n points.
func splits(n int) int {
	if n <= 30 {
		return max(n/3, 3)
	}
	return 6
}
