// Package fundsim computes risk and return metrics for a catalog of
// investment funds, classifies an investor into a risk profile and builds a
// weighted portfolio of funds with simple allocation heuristics.
//
// The core functionalities include:
//   - Metric Calculator: annualized log return and volatility, YTD return,
//     dividend yield and dividends per share, whole-series log and
//     geometric returns, all derived from a Series of daily PricePoint.
//   - Weighted Growth Projector: equal-weighted blended rates and the
//     year-by-year projection of an initial amount, with continuous or
//     annual compounding.
//   - Portfolio Allocator: five named strategies sharing one
//     select-score-normalize algorithm.
//   - Profile Classifier: the 8-question scored questionnaire.
//
// Calculations are pure functions of their inputs. Fetching and persisting
// price series is the job of a SeriesProvider (see the store, eodhd and
// yahoo packages), and presentation is the job of the renderer, chart and
// cmd packages.
//
// Annualization uses a fixed convention of 252 trading days per year, never
// the actual calendar span of the series.
package fundsim
