package date

import (
	"fmt"
	"strings"
)

// Period is a calendar granularity.
type Period int

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

const (
	Daily Period = iota
	Monthly
	Yearly
)

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(p)
	switch p {
	case "daily", "day":
		return Daily, nil
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %s", p)
	}
}

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Monthly:
		return New(d.y, d.m, 1)
	case Yearly:
		return d.StartOfYear()
	default:
		return d
	}
}

// Key identifies the period containing d, e.g. "2025-07" for Monthly.
// Two dates share a key if and only if they fall in the same period.
func (p Period) Key(d Date) string {
	switch p {
	case Monthly:
		return fmt.Sprintf("%04d-%02d", d.y, d.m)
	case Yearly:
		return fmt.Sprintf("%04d", d.y)
	default:
		return d.String()
	}
}
