package fundsim

import (
	"fmt"
	"math"

	"github.com/etnz/fundsim/date"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TradingDays is the number of trading days in a year used to annualize
// every statistic. It is a convention, the actual span between dates is
// never used.
const TradingDays = 252

// DefaultPeriod is the trailing window, in years, used for the annualized
// return and volatility of FundMetrics.
const DefaultPeriod = 5

// FundMetrics are the scalar metrics derived from the price series of a fund.
type FundMetrics struct {
	FundID               string   `json:"fund"`
	AnnualizedReturn     Percent  `json:"annualized_return"`
	AnnualizedVolatility Percent  `json:"annualized_volatility"`
	YTDReturn            *Percent `json:"ytd_return,omitempty"`     // nil when unavailable
	DividendYield        *Percent `json:"dividend_yield,omitempty"` // nil when unavailable
	DividendsPerShare    float64  `json:"dividends_per_share"`
}

// SharpeLike returns the return to volatility ratio, 0 when the volatility is 0.
//
// No risk-free rate is subtracted, it is an ordering heuristic.
func (m FundMetrics) SharpeLike() float64 {
	if m.AnnualizedVolatility > 0 {
		return float64(m.AnnualizedReturn / m.AnnualizedVolatility)
	}
	return 0
}

// valid reports whether the return and volatility are usable numbers.
func (m FundMetrics) valid() bool {
	r, v := float64(m.AnnualizedReturn), float64(m.AnnualizedVolatility)
	return !math.IsNaN(r) && !math.IsInf(r, 0) && !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

type metricsOptions struct {
	period int
	today  date.Date
}

// MetricsOption customizes ComputeMetrics.
type MetricsOption func(*metricsOptions)

// WithPeriod sets the trailing window, in years, of the annualized return
// and volatility. 0 uses the full series.
func WithPeriod(years int) MetricsOption {
	return func(o *metricsOptions) { o.period = years }
}

// WithToday sets the reference day of the YTD return. It defaults to date.Today().
func WithToday(today date.Date) MetricsOption {
	return func(o *metricsOptions) { o.today = today }
}

// ComputeMetrics derives the FundMetrics of a fund from its series.
//
// It fails with ErrInsufficientData (wrapped in a FundError) when the
// trailing window does not hold at least 2 valid prices. YTD return and
// dividend yield are optional and never cause a failure.
func ComputeMetrics(fundID string, s Series, opts ...MetricsOption) (FundMetrics, error) {
	o := metricsOptions{period: DefaultPeriod}
	for _, opt := range opts {
		opt(&o)
	}
	if o.today.IsZero() {
		o.today = date.Today()
	}

	ret, vol, err := AnnualizedLogReturnAndVolatility(s.Trailing(o.period))
	if err != nil {
		return FundMetrics{}, fundErr(fundID, err)
	}

	m := FundMetrics{
		FundID:               fundID,
		AnnualizedReturn:     ret,
		AnnualizedVolatility: vol,
		DividendsPerShare:    DividendsPerShare(s),
	}
	if ytd, ok := YTDReturn(s, o.today); ok {
		m.YTDReturn = optional(ytd)
	}
	if dy, ok := DividendYield(s); ok {
		m.DividendYield = optional(dy)
	}
	return m, nil
}

// LogReturns returns the daily log returns ln(close[i]/close[i-1]).
func LogReturns(s Series) ([]float64, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	returns := make([]float64, len(s)-1)
	for i := 1; i < len(s); i++ {
		returns[i-1] = math.Log(s[i].Close / s[i-1].Close)
	}
	return returns, nil
}

// AnnualizedLogReturnAndVolatility returns the mean of the daily log
// returns times 252 and their population standard deviation times
// sqrt(252), both in percent.
func AnnualizedLogReturnAndVolatility(s Series) (ret, vol Percent, err error) {
	returns, err := LogReturns(s)
	if err != nil {
		return 0, 0, err
	}
	mean, std := stat.PopMeanStdDev(returns, nil)
	ret = Percent(mean * TradingDays * 100)
	vol = Percent(std * math.Sqrt(TradingDays) * 100)
	return ret, vol, nil
}

// YTDReturn returns the change of the close price between the first and the
// last point dated on or after January 1st of today's year.
//
// It returns false when fewer than 2 points fall in the current year, or
// when the first or last of them is not a finite positive close.
func YTDReturn(s Series, today date.Date) (Percent, bool) {
	ytd := s.Since(today.StartOfYear())
	if len(ytd) < 2 || !usable(ytd[0].Close) || !usable(ytd[len(ytd)-1].Close) {
		return 0, false
	}
	return Percent((ytd[len(ytd)-1].Close/ytd[0].Close - 1) * 100), true
}

// DividendsPerShare returns the sum of all dividends in the series.
func DividendsPerShare(s Series) float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Sum(s.Dividends())
}

// DividendYield returns the sum of all dividends relative to the most recent close.
//
// It returns false when the series is empty, when the most recent close is
// not a finite positive number or when a dividend is not finite.
func DividendYield(s Series) (Percent, bool) {
	last, ok := s.Last()
	if !ok || !usable(last.Close) {
		return 0, false
	}
	total := DividendsPerShare(s)
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, false
	}
	return Percent(total / last.Close * 100), true
}

// years returns the length of s in years, using one point per trading day.
func years(s Series) float64 { return float64(len(s)) / TradingDays }

// AnnualizedLogReturnSingle returns ln(last/first) divided by the number of
// years in the series, as a fraction (not in percent).
func AnnualizedLogReturnSingle(s Series) (float64, error) {
	if err := s.Check(); err != nil {
		return 0, err
	}
	first, last := s[0].Close, s[len(s)-1].Close
	return math.Log(last/first) / years(s), nil
}

// AnnualizedGeometricReturn returns (last/first)^(1/years) - 1, as a
// fraction (not in percent).
func AnnualizedGeometricReturn(s Series) (float64, error) {
	if err := s.Check(); err != nil {
		return 0, err
	}
	first, last := s[0].Close, s[len(s)-1].Close
	return math.Pow(last/first, 1/years(s)) - 1, nil
}

// String summarizes the metrics on a single line.
func (m FundMetrics) String() string {
	return fmt.Sprintf("%s return=%v volatility=%v", m.FundID, m.AnnualizedReturn, m.AnnualizedVolatility)
}
