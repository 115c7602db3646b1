package fundsim

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount of a given currency, used to present the projected
// value of an investment.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns the money value in the given currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	var d decimal.Decimal
	switch v := any(value).(type) {
	case decimal.Decimal:
		d = v
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	}
	return Money{value: d, cur: currency}
}

// ParseMoney parses a decimal amount like "100000" or "1500.50".
func ParseMoney(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: amount %q: %v", ErrInvalidArgument, amount, err)
	}
	return Money{value: d, cur: currency}, nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with the currency's own symbol and fraction, e.g. "$100,000.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string      { return m.cur }
func (m Money) IsPositive() bool      { return m.value.IsPositive() }
func (m Money) LessThan(n Money) bool { return m.value.LessThan(n.value) }
func (m Money) Equal(n Money) bool    { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) Sub(n Money) Money     { return Money{value: m.value.Sub(n.value), cur: m.cur} }
func (m Money) Float() float64        { return m.value.InexactFloat64() }
func (m Money) Round() Money          { return Money{value: m.value.Round(int32(m.currency().Fraction)), cur: m.cur} }
func (m Money) Times(f float64) Money { return Money{value: m.value.Mul(decimal.NewFromFloat(f)), cur: m.cur} }

// Grow returns the amount after 'years' years at 'rate', rounded to the
// currency's fraction.
func (m Money) Grow(rate float64, years int, mode Compounding) Money {
	return m.Times(mode.growth(rate, years)).Round()
}

// ProjectMoney is Project for a Money amount. Every point is rounded to the
// currency's fraction.
func ProjectMoney(initial Money, rate float64, years int, mode Compounding) ([]Money, error) {
	points, err := Project(initial.Float(), rate, years, mode)
	if err != nil {
		return nil, err
	}
	values := make([]Money, len(points))
	for i, p := range points {
		values[i] = initial.Grow(rate, p.Year, mode)
	}
	return values, nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Currency string          `json:"currency,omitempty"`
		Amount   decimal.Decimal `json:"amount"`
	}{m.cur, m.value.Round(int32(m.currency().Fraction))})
}
