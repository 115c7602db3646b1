// Package eodhd provides a fundsim.SeriesProvider fetching end of day prices
// and dividends from https://eodhd.com.
package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/date"
	"github.com/rs/zerolog/log"
)

// DefaultURL is the base address of the EODHD API.
const DefaultURL = "https://eodhd.com/api"

// DefaultYears is the length of the history fetched for a fund.
const DefaultYears = 10

// Client fetches fund histories from EODHD.
type Client struct {
	APIKey  string
	BaseURL string       // defaults to DefaultURL
	HTTP    *http.Client // defaults to a daily disk cached client
	Years   int          // defaults to DefaultYears
	Today   func() date.Date
}

// New returns a client caching responses on disk in cacheDir ("" uses the
// system temp dir) for the current period: a daily cache expires every day.
func New(apiKey, cacheDir string, period date.Period) *Client {
	return &Client{APIKey: apiKey, HTTP: newCachingClient(cacheDir, period)}
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return DefaultURL
}

func (c *Client) http() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) query() url.Values {
	q := url.Values{}
	q.Set("api_token", c.APIKey)
	q.Set("fmt", "json")
	return q
}

func (c *Client) today() date.Date {
	if c.Today != nil {
		return c.Today()
	}
	return date.Today()
}

// exchanges maps Yahoo style ticker suffixes, used in the fund catalog, to
// EODHD exchange codes.
var exchanges = map[string]string{
	"L":  "LSE",
	"AS": "AS",
	"MX": "MX",
	"F":  "F",
	"PA": "PA",
	"DE": "XETRA",
}

// Ticker converts a fund id to an EODHD ticker: "SPY" is "SPY.US",
// "RU2K.L" is "RU2K.LSE" and the index "^DJUSFN" is "DJUSFN.INDX".
func Ticker(fundID string) string {
	if code, ok := strings.CutPrefix(fundID, "^"); ok {
		return code + ".INDX"
	}
	if i := strings.LastIndex(fundID, "."); i > 0 {
		code, suffix := fundID[:i], fundID[i+1:]
		if ex, ok := exchanges[suffix]; ok {
			return code + "." + ex
		}
		return fundID
	}
	return fundID + ".US"
}

// Series implements fundsim.SeriesProvider.
//
// It fetches the last Years years of history, and the full history when
// that window is empty.
func (c *Client) Series(ctx context.Context, fundID string) (fundsim.Series, error) {
	s, err := c.series(ctx, fundID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &fundsim.FundError{Fund: fundID, Err: err}
	}
	return s, nil
}

func (c *Client) series(ctx context.Context, fundID string) (fundsim.Series, error) {
	ticker := Ticker(fundID)
	years := c.Years
	if years <= 0 {
		years = DefaultYears
	}
	to := c.today()
	from := to.AddYears(-years)

	prices, err := c.fetchPrices(ctx, ticker, from, to)
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		log.Warn().Str("fund", fundID).Int("years", years).Msg("no prices in the window, trying the full history")
		from = date.Date{}
		if prices, err = c.fetchPrices(ctx, ticker, from, to); err != nil {
			return nil, err
		}
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: no prices for %s", fundsim.ErrNotFound, ticker)
	}

	dividends, err := c.fetchDividends(ctx, ticker, from, to)
	if err != nil {
		// Funds without distributions are answered with a 404 by some plans.
		if !errors.Is(err, fundsim.ErrNotFound) {
			return nil, err
		}
		dividends = nil
	}
	perDay := make(map[date.Date]float64, len(dividends))
	for _, d := range dividends {
		perDay[d.Date] += d.Value.InexactFloat64()
	}

	s := make(fundsim.Series, 0, len(prices))
	for _, p := range prices {
		if len(s) > 0 && !p.Date.After(s[len(s)-1].Date) {
			continue
		}
		s = append(s, fundsim.PricePoint{Date: p.Date, Close: p.Close.InexactFloat64(), Dividend: perDay[p.Date]})
	}
	log.Debug().Str("fund", fundID).Str("ticker", ticker).Int("points", len(s)).Int("dividends", len(dividends)).Msg("eodhd series")
	return s, nil
}
