package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicker(t *testing.T) {
	tests := []struct{ in, want string }{
		{"SPY", "SPY.US"},
		{"RU2K.L", "RU2K.LSE"},
		{"IBGS.AS", "IBGS.AS"},
		{"CETETRC.MX", "CETETRC.MX"},
		{"^DJUSFN", "DJUSFN.INDX"},
		{"ABC.XX", "ABC.XX"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Ticker(tt.in), "Ticker(%q)", tt.in)
	}
}

// fakeAPI serves the eod and div endpoints. Prices are only known before
// 2020 for "OLD.US", so that the 10 years window is empty.
func fakeAPI(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/eod/SPY.US", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("api_token"))
		assert.Equal(t, "2015-03-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2025-03-01", r.URL.Query().Get("to"))
		w.Write([]byte(`[
			{"date":"2025-02-26","open":1,"close":590.5,"adjusted_close":590.5,"volume":10},
			{"date":"2025-02-27","open":1,"close":585.25,"adjusted_close":585.25,"volume":10},
			{"date":"2025-02-28","open":1,"close":594,"adjusted_close":594,"volume":10}
		]`))
	})
	mux.HandleFunc("/div/SPY.US", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"date":"2025-02-27","value":1.75,"currency":"USD"}]`))
	})
	mux.HandleFunc("/eod/OLD.US", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("from") != "" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"date":"2010-01-04","close":10},{"date":"2010-01-05","close":11}]`))
	})
	mux.HandleFunc("/div/OLD.US", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("from"))
		http.NotFound(w, r)
	})
	mux.HandleFunc("/eod/DOWN.US", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/search/gold", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"Code":"GLD","Exchange":"US","Name":"SPDR Gold Shares","Type":"ETF","Currency":"USD","previousClose":245.1,"previousCloseDate":"2025-02-28"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		APIKey:  "secret",
		BaseURL: srv.URL,
		HTTP:    srv.Client(),
		Today:   func() date.Date { return date.New(2025, 3, 1) },
	}
}

func TestClient_Series(t *testing.T) {
	c := newTestClient(fakeAPI(t))

	s, err := c.Series(context.Background(), "SPY")
	require.NoError(t, err)
	assert.Equal(t, fundsim.Series{
		{Date: date.New(2025, 2, 26), Close: 590.5},
		{Date: date.New(2025, 2, 27), Close: 585.25, Dividend: 1.75},
		{Date: date.New(2025, 2, 28), Close: 594},
	}, s)
}

func TestClient_SeriesFallsBackToFullHistory(t *testing.T) {
	c := newTestClient(fakeAPI(t))

	s, err := c.Series(context.Background(), "OLD")
	require.NoError(t, err)
	assert.Len(t, s, 2)
	assert.Zero(t, s[0].Dividend)
}

func TestClient_SeriesErrors(t *testing.T) {
	c := newTestClient(fakeAPI(t))
	ctx := context.Background()

	_, err := c.Series(ctx, "NOPE")
	assert.ErrorIs(t, err, fundsim.ErrNotFound)
	var fe *fundsim.FundError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "NOPE", fe.Fund)

	_, err = c.Series(ctx, "DOWN")
	assert.ErrorIs(t, err, fundsim.ErrUnavailable)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = c.Series(cancelled, "SPY")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Search(t *testing.T) {
	c := newTestClient(fakeAPI(t))
	results, err := c.Search(context.Background(), "gold")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "GLD.US", results[0].Ticker())
	assert.Equal(t, date.New(2025, 2, 28), results[0].PreviousCloseDate)
}

func TestDiskCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"date":"2025-02-26","close":1}]`))
	}))
	defer srv.Close()

	client := newCachingClient(t.TempDir(), date.Daily)
	for range 3 {
		var content []eodPrice
		require.NoError(t, jwget(context.Background(), client, srv.URL+"/eod/X", &content))
		require.Len(t, content, 1)
	}
	assert.Equal(t, 1, calls)
}
