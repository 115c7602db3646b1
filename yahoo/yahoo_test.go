package yahoo

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

// 2024-01-02, 2024-01-03, 2024-01-04 and 2024-01-05 at 14:30 UTC, New York
// is 5 hours behind.
const chartSPY = `{"chart":{"result":[{
	"meta":{"currency":"USD","symbol":"SPY","gmtoffset":-18000},
	"timestamp":[1704205800,1704292200,1704378600,1704465000],
	"events":{"dividends":{
		"1704292200":{"amount":1.5,"date":1704292200},
		"1704551400":{"amount":9,"date":1704551400}
	}},
	"indicators":{"quote":[{"close":[472.65,468.79,null,467.92]}]}
}],"error":null}}`

const chartEmpty = `{"chart":{"result":[{"meta":{"gmtoffset":0},"indicators":{"quote":[{}]}}],"error":null}}`

const chartNotFound = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

func TestParseChart(t *testing.T) {
	s, err := parseChart([]byte(chartSPY))
	require.NoError(t, err)
	assert.Equal(t, fundsim.Series{
		{Date: date.New(2024, 1, 2), Close: 472.65},
		{Date: date.New(2024, 1, 3), Close: 468.79, Dividend: 1.5},
		{Date: date.New(2024, 1, 5), Close: 467.92},
	}, s, "a dividend after the last close is dropped")

	s, err = parseChart([]byte(chartEmpty))
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = parseChart([]byte(chartNotFound))
	assert.ErrorIs(t, err, fundsim.ErrNotFound)
}

func TestClient_Series(t *testing.T) {
	var ranges []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng := r.URL.Query().Get("range")
		ranges = append(ranges, r.URL.Path+" "+rng)
		switch r.URL.Path {
		case "/SPY":
			w.Write([]byte(chartSPY))
		case "/OLD":
			if rng == "max" {
				w.Write([]byte(chartSPY))
				return
			}
			w.Write([]byte(chartEmpty))
		case "/DOWN":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(chartNotFound))
		}
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}
	ctx := context.Background()

	s, err := c.Series(ctx, "SPY")
	require.NoError(t, err)
	assert.Len(t, s, 3)

	s, err = c.Series(ctx, "OLD")
	require.NoError(t, err)
	assert.Len(t, s, 3)
	assert.Equal(t, []string{"/SPY 10y", "/OLD 10y", "/OLD max"}, ranges)

	_, err = c.Series(ctx, "NOPE")
	assert.ErrorIs(t, err, fundsim.ErrNotFound)
	var fe *fundsim.FundError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "NOPE", fe.Fund)

	_, err = c.Series(ctx, "DOWN")
	assert.ErrorIs(t, err, fundsim.ErrUnavailable)
}
