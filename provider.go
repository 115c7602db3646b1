package fundsim

import "context"

// SeriesProvider retrieves the historical series of a fund.
//
// Implementations report a missing fund with ErrNotFound and a temporary
// failure with ErrUnavailable, both possibly wrapped.
type SeriesProvider interface {
	Series(ctx context.Context, fundID string) (Series, error)
}

// ProviderFunc adapts a function to a SeriesProvider.
type ProviderFunc func(ctx context.Context, fundID string) (Series, error)

func (f ProviderFunc) Series(ctx context.Context, fundID string) (Series, error) {
	return f(ctx, fundID)
}

// MapProvider is an in-memory SeriesProvider.
type MapProvider map[string]Series

func (m MapProvider) Series(_ context.Context, fundID string) (Series, error) {
	s, ok := m[fundID]
	if !ok {
		return nil, &FundError{Fund: fundID, Err: ErrNotFound}
	}
	return s, nil
}

// TrailingProvider restricts the series of p to their last 'years' years.
// A non positive 'years' keeps the whole series.
func TrailingProvider(p SeriesProvider, years int) SeriesProvider {
	return ProviderFunc(func(ctx context.Context, fundID string) (Series, error) {
		s, err := p.Series(ctx, fundID)
		if err != nil {
			return nil, err
		}
		return s.Trailing(years), nil
	})
}
