// Package yahoo provides a fundsim.SeriesProvider reading the Yahoo Finance
// chart endpoint, daily closes and dividend events.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/date"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// DefaultURL is the base address of the chart endpoint.
const DefaultURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Client fetches fund histories from Yahoo Finance.
type Client struct {
	BaseURL string       // defaults to DefaultURL
	HTTP    *http.Client // defaults to http.DefaultClient
	Range   string       // defaults to "10y"
}

// Series implements fundsim.SeriesProvider.
//
// It fetches the Range history, and the full history when that range is
// empty.
func (c *Client) Series(ctx context.Context, fundID string) (fundsim.Series, error) {
	rng := c.Range
	if rng == "" {
		rng = "10y"
	}
	s, err := c.chart(ctx, fundID, rng)
	if err == nil && len(s) == 0 && rng != "max" {
		log.Warn().Str("fund", fundID).Str("range", rng).Msg("no prices in the range, trying the full history")
		s, err = c.chart(ctx, fundID, "max")
	}
	if err == nil && len(s) == 0 {
		err = fmt.Errorf("%w: no prices", fundsim.ErrNotFound)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &fundsim.FundError{Fund: fundID, Err: err}
	}
	return s, nil
}

func (c *Client) chart(ctx context.Context, symbol, rng string) (fundsim.Series, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultURL
	}
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", "1d")
	q.Set("events", "div")
	addr := fmt.Sprintf("%s/%s?%s", strings.TrimSuffix(base, "/"), url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "curl/8")
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", fundsim.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", fundsim.ErrUnavailable, err)
	}
	log.Info().Str("host", req.URL.Host).Str("url", req.URL.Path).Str("range", rng).Int("status", resp.StatusCode).Msg("http request")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", fundsim.ErrNotFound, gjson.GetBytes(body, "chart.error.description").String())
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", fundsim.ErrUnavailable, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("cannot http GET %s: %s", req.URL.Path, resp.Status)
	}
	return parseChart(body)
}

// parseChart decodes a chart response.
//
// Days are in the exchange's time zone. Null closes are skipped. A dividend
// paid on a day without a close is carried to the next close.
func parseChart(body []byte) (fundsim.Series, error) {
	if e := gjson.GetBytes(body, "chart.error.description"); e.Exists() {
		return nil, fmt.Errorf("%w: %s", fundsim.ErrNotFound, e.String())
	}
	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, errors.New("no chart.result")
	}
	offset := result.Get("meta.gmtoffset").Int()
	day := func(ts int64) date.Date { return date.FromTime(time.Unix(ts+offset, 0).UTC()) }

	dividends := make(map[date.Date]float64)
	result.Get("events.dividends").ForEach(func(_, v gjson.Result) bool {
		dividends[day(v.Get("date").Int())] += v.Get("amount").Float()
		return true
	})
	var divDays []date.Date
	for d := range dividends {
		divDays = append(divDays, d)
	}
	slices.SortFunc(divDays, date.Date.Compare)

	timestamps := result.Get("timestamp").Array()
	closes := result.Get("indicators.quote.0.close").Array()
	s := make(fundsim.Series, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(closes) || closes[i].Type != gjson.Number {
			continue
		}
		d := day(ts.Int())
		if len(s) > 0 && !d.After(s[len(s)-1].Date) {
			continue
		}
		p := fundsim.PricePoint{Date: d, Close: closes[i].Float()}
		for len(divDays) > 0 && !divDays[0].After(d) {
			p.Dividend += dividends[divDays[0]]
			divDays = divDays[1:]
		}
		s = append(s, p)
	}
	return s, nil
}
