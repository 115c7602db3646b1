package renderer

import (
	"errors"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/date"
)

// MetricsReport is the view of a fundsim.Analysis.
type MetricsReport struct {
	Date     date.Date
	Period   int // trailing years of the return and volatility, 0 for the full history
	Funds    []MetricsRow
	Excluded []Exclusion
}

// MetricsRow is a line of the metrics table.
type MetricsRow struct {
	Fund    fundsim.Fund
	Metrics fundsim.FundMetrics
}

// Exclusion is a fund that could not be analyzed.
type Exclusion struct {
	Fund   fundsim.Fund
	Reason string
}

// NewMetricsReport builds the view of an analysis.
func NewMetricsReport(a fundsim.Analysis, period int, day date.Date) *MetricsReport {
	r := &MetricsReport{Date: day, Period: period}
	for _, m := range a.Metrics {
		r.Funds = append(r.Funds, MetricsRow{Fund: fundsim.Describe(m.FundID), Metrics: m})
	}
	for _, err := range a.Failures {
		ex := Exclusion{Reason: err.Error()}
		var fe *fundsim.FundError
		if errors.As(err, &fe) {
			ex.Fund = fundsim.Describe(fe.Fund)
			ex.Reason = fe.Err.Error()
		}
		r.Excluded = append(r.Excluded, ex)
	}
	return r
}

// AllocationReport is the view of a fundsim.AllocationResult.
type AllocationReport struct {
	Strategy fundsim.Strategy
	Rows     []AllocationRow
	Return   fundsim.Percent
	Risk     fundsim.Percent
}

// AllocationRow is a selected fund and its weight.
type AllocationRow struct {
	Fund       fundsim.Fund
	Weight     fundsim.Percent
	Return     fundsim.Percent
	Volatility fundsim.Percent
}

// NewAllocationReport builds the view of an allocation.
func NewAllocationReport(res fundsim.AllocationResult) *AllocationReport {
	r := &AllocationReport{Strategy: res.Strategy, Return: res.PortfolioReturn, Risk: res.PortfolioRisk}
	for i, f := range res.Selected {
		r.Rows = append(r.Rows, AllocationRow{
			Fund:       fundsim.Describe(f.FundID),
			Weight:     fundsim.Percent(res.Weights[i] * 100),
			Return:     f.AnnualizedReturn,
			Volatility: f.AnnualizedVolatility,
		})
	}
	return r
}

// ProjectionReport is the view of a projection.
type ProjectionReport struct {
	Initial     fundsim.Money
	Rate        fundsim.Percent
	Compounding fundsim.Compounding
	StartAge    int // 0 when ages are not known
	Rows        []ProjectionRow
}

// ProjectionRow is the value of the investment at the end of a year.
type ProjectionRow struct {
	Year  int
	Age   int
	Value fundsim.Money
}

// Final returns the last projected value.
func (r *ProjectionReport) Final() fundsim.Money {
	if len(r.Rows) == 0 {
		return r.Initial
	}
	return r.Rows[len(r.Rows)-1].Value
}

// Gain returns the difference between the final and the initial value.
func (r *ProjectionReport) Gain() fundsim.Money { return r.Final().Sub(r.Initial) }

// Loss returns the difference between the initial and the final value.
func (r *ProjectionReport) Loss() fundsim.Money { return r.Initial.Sub(r.Final()) }

// NewProjectionReport builds the view of a projection of 'initial' at
// 'rate' (a fraction) from 'startAge'.
func NewProjectionReport(initial fundsim.Money, rate float64, mode fundsim.Compounding, values []fundsim.Money, startAge int) *ProjectionReport {
	r := &ProjectionReport{
		Initial:     initial,
		Rate:        fundsim.Percent(rate * 100),
		Compounding: mode,
		StartAge:    startAge,
	}
	for year, v := range values {
		row := ProjectionRow{Year: year, Value: v}
		if startAge > 0 {
			row.Age = startAge + year
		}
		r.Rows = append(r.Rows, row)
	}
	return r
}

// ProfileReport is the view of a questionnaire outcome.
type ProfileReport struct {
	Score   int
	Profile fundsim.RiskProfile
	Answers []AnswerRow
}

// AnswerRow is a question and the answer picked.
type AnswerRow struct {
	Question string
	Answer   string
}

// NewProfileReport builds the view of a questionnaire outcome.
func NewProfileReport(answers [fundsim.QuestionCount]fundsim.Answer, score int, profile fundsim.RiskProfile) *ProfileReport {
	r := &ProfileReport{Score: score, Profile: profile}
	for i, a := range answers {
		row := AnswerRow{Question: fundsim.Questionnaire[i].Text}
		if w, err := a.Weight(); err == nil {
			row.Answer = string(rune(a)) + ") " + fundsim.Questionnaire[i].Choices[w-1]
		}
		r.Answers = append(r.Answers, row)
	}
	return r
}

// CatalogReport lists funds, and whether their history is available locally.
type CatalogReport struct {
	Funds []CatalogRow
}

// CatalogRow is a fund of the catalog.
type CatalogRow struct {
	Fund      fundsim.Fund
	Available bool
}
