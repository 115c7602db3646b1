package fundsim

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Analysis is the outcome of computing the metrics of several funds.
type Analysis struct {
	Metrics  []FundMetrics // in the requested order, failed funds excluded
	Failures []error       // one *FundError per excluded fund
}

// Excluded returns the ids of the funds that could not be analyzed.
func (a Analysis) Excluded() []string {
	ids := make([]string, 0, len(a.Failures))
	for _, err := range a.Failures {
		var fe *FundError
		if errors.As(err, &fe) {
			ids = append(ids, fe.Fund)
		}
	}
	return ids
}

// AnalyzeFunds computes the metrics of every fund, using up to 'workers'
// concurrent computations.
//
// A fund whose series cannot be retrieved or holds insufficient data is
// excluded and reported in Failures, it never gets zero metrics. Only a
// cancelled context aborts the whole analysis.
func AnalyzeFunds(ctx context.Context, p SeriesProvider, fundIDs []string, workers int, opts ...MetricsOption) (Analysis, error) {
	if len(fundIDs) == 0 {
		return Analysis{}, ErrEmptySelection
	}
	if workers < 1 {
		workers = 1
	}

	metrics := make([]*FundMetrics, len(fundIDs))
	failures := make([]error, len(fundIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, id := range fundIDs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := p.Series(ctx, id)
			if err == nil {
				var m FundMetrics
				m, err = ComputeMetrics(id, s, opts...)
				if err == nil {
					metrics[i] = &m
					return nil
				}
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			failures[i] = fundErr(id, err)
			log.Warn().Str("fund", id).Err(err).Msg("fund excluded from analysis")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Analysis{}, err
	}

	var a Analysis
	for i := range fundIDs {
		if metrics[i] != nil {
			a.Metrics = append(a.Metrics, *metrics[i])
		}
		if failures[i] != nil {
			a.Failures = append(a.Failures, failures[i])
		}
	}
	return a, nil
}
