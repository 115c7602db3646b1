package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/fundsim/date"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

// eodPrice is an entry of the end of day prices.
type eodPrice struct {
	Date  date.Date       `json:"date"`
	Close decimal.Decimal `json:"close"`
	// AdjustedClose decimal.Decimal        `json:"adjusted_close"`
}

// fetchPrices returns the daily close prices for a given EODHD ticker.
// The EODHD ticker format is typically "SYMBOL.EXCHANGECODE".
//
// A zero 'from' fetches the full history.
func (c *Client) fetchPrices(ctx context.Context, ticker string, from, to date.Date) ([]eodPrice, error) {
	// https://eodhd.com/api/eod/NVD.F?api_token=demo&fmt=json
	// [
	//
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	// bounds are included in the response.
	q := c.query()
	if !from.IsZero() {
		q.Set("from", from.String())
	}
	q.Set("to", to.String())
	addr := fmt.Sprintf("%s/eod/%s?%s", c.base(), url.PathEscape(ticker), q.Encode())

	content := make([]eodPrice, 0)
	if err := jwget(ctx, c.http(), addr, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// apiDividend is an entry of the dividend history.
type apiDividend struct {
	Date     date.Date       `json:"date"` // ex-dividend date, see https://eodhd.com/financial-apis/api-splits-dividends
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

// fetchDividends returns the dividend history for a given EODHD ticker.
func (c *Client) fetchDividends(ctx context.Context, ticker string, from, to date.Date) ([]apiDividend, error) {
	q := c.query()
	if !from.IsZero() {
		q.Set("from", from.String())
	}
	q.Set("to", to.String())
	addr := fmt.Sprintf("%s/div/%s?%s", c.base(), url.PathEscape(ticker), q.Encode())

	content := make([]apiDividend, 0)
	if err := jwget(ctx, c.http(), addr, &content); err != nil {
		return nil, err
	}
	return content, nil
}
