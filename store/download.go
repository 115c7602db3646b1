package store

import (
	"context"
	"errors"

	"github.com/etnz/fundsim"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DownloadReport is the outcome of a Download.
type DownloadReport struct {
	Saved       []string       // paths of the written files, in fund order
	Unavailable []fundsim.Fund // funds that could not be downloaded
	Failures    []error        // one *fundsim.FundError per unavailable fund
}

// Download fetches the history of every fund from src, with up to 'workers'
// concurrent requests, and saves it in dst. Funds that fail are listed in
// dst's unavailable report. Only a cancelled context, or a file that
// cannot be written, aborts the download.
func Download(ctx context.Context, src fundsim.SeriesProvider, dst *Files, funds []fundsim.Fund, workers int) (DownloadReport, error) {
	if workers < 1 {
		workers = 1
	}
	saved := make([]string, len(funds))
	failures := make([]error, len(funds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, fund := range funds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := src.Series(ctx, fund.Symbol)
			if err == nil {
				err = s.Check()
			}
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				log.Warn().Str("fund", fund.Symbol).Err(err).Msg("fund not downloaded")
				var fe *fundsim.FundError
				if !errors.As(err, &fe) {
					fe = &fundsim.FundError{Fund: fund.Symbol, Err: err}
				}
				failures[i] = fe
				return nil
			}
			path, err := dst.Save(Document{Fund: fund, Series: s})
			if err != nil {
				return err
			}
			saved[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DownloadReport{}, err
	}

	var r DownloadReport
	for i, fund := range funds {
		if saved[i] != "" {
			r.Saved = append(r.Saved, saved[i])
		}
		if failures[i] != nil {
			r.Unavailable = append(r.Unavailable, fund)
			r.Failures = append(r.Failures, failures[i])
		}
	}
	if err := dst.SaveUnavailable(r.Unavailable); err != nil {
		return r, err
	}
	return r, nil
}
