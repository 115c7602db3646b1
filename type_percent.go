package fundsim

import "fmt"

// Percent is a value expressed in percent: 12.5 means 12.5%.
type Percent float64

// Rate returns the percent as a plain fraction: 12.5% is 0.125.
func (p Percent) Rate() float64 { return float64(p) / 100 }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString formats p with its sign, for changes: "+3.00%".
func (p Percent) SignedString() string { return fmt.Sprintf("%+.2f%%", float64(p)) }

// optional returns a pointer to p, used for metrics that may be unavailable.
func optional(p Percent) *Percent { return &p }
