package pricing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateFor(t *testing.T) {
	assert.Equal(t, FilamentRatePerGram, RateFor("Filament"))
	assert.Equal(t, FilamentRatePerGram, RateFor("PLA Filament"))
	assert.Equal(t, ResinRatePerGram, RateFor("Resin"))
	assert.Equal(t, ResinRatePerGram, RateFor("Tough Resin"))
	assert.Equal(t, ResinRatePerGram, RateFor("RESIN"))
	assert.Equal(t, FilamentRatePerGram, RateFor(""))
}

func TestCostUSD(t *testing.T) {
	cases := []struct {
		weightG  float64
		material string
		want     float64
	}{
		{50, "Filament", 5.00},
		{45, "Resin", 9.00},
		{10, "Filament", 3.00},
		{5, "Resin", 3.00},
		{30, "Filament", 3.00},
		{15, "Resin", 3.00},
		{30.1, "Filament", 3.01},
		{15.1, "Resin", 3.02},
		{100, "Resin", 20.00},
		{0.5, "Filament", 3.00},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%gg_%s", tc.weightG, tc.material), func(t *testing.T) {
			assert.InDelta(t, tc.want, CostUSD(tc.weightG, tc.material), 1e-9)
		})
	}
}

func TestMinimumDominatesBelowBreakEven(t *testing.T) {
	for w := 1.0; w <= 30.0; w += 1.0 {
		assert.Equal(t, 3.00, CostUSD(w, "Filament"), "filament %gg", w)
	}
	for w := 1.0; w <= 15.0; w += 1.0 {
		assert.Equal(t, 3.00, CostUSD(w, "Resin"), "resin %gg", w)
	}
}
