package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/fundsim/date"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string    `json:"Code"`
	Exchange          string    `json:"Exchange"`
	Name              string    `json:"Name"`
	Type              string    `json:"Type"`
	Country           string    `json:"Country"`
	Currency          string    `json:"Currency"`
	ISIN              string    `json:"ISIN"`
	PreviousClose     float64   `json:"previousClose"`
	PreviousCloseDate date.Date `json:"previousCloseDate"`
}

// Ticker returns the EODHD ticker of the result, e.g. "SPY.US".
func (r SearchResult) Ticker() string { return r.Code + "." + r.Exchange }

// Search searches for funds and securities via EOD Historical Data API.
func (c *Client) Search(ctx context.Context, searchTerm string) ([]SearchResult, error) {
	apiURL := fmt.Sprintf("%s/search/%s?%s", c.base(), url.PathEscape(searchTerm), c.query().Encode())

	var results []SearchResult
	if err := jwget(ctx, c.http(), apiURL, &results); err != nil {
		return nil, err
	}
	return results, nil
}
