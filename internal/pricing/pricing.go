// Package pricing implements the approval-time cost rule.
package pricing

import (
	"math"
	"strings"
)

const (
	// FilamentRatePerGram is charged for all filament variants.
	FilamentRatePerGram = 0.10
	// ResinRatePerGram is charged for all resin variants.
	ResinRatePerGram = 0.20
	// MinimumChargeUSD is the hard floor applied to every job.
	MinimumChargeUSD = 3.00
)

// RateFor returns the per-gram rate for a material. Any material naming
// resin (case-insensitive) prices at the resin rate; everything else is
// treated as filament.
func RateFor(material string) float64 {
	if strings.Contains(strings.ToLower(material), "resin") {
		return ResinRatePerGram
	}
	return FilamentRatePerGram
}

// CostUSD computes the charge for a job. The minimum-charge floor is
// applied before rounding to cents.
func CostUSD(weightG float64, material string) float64 {
	raw := weightG * RateFor(material)
	if raw < MinimumChargeUSD {
		raw = MinimumChargeUSD
	}
	return math.Round(raw*100) / 100
}
