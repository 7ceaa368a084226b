package roi

import (
	"fmt"
	"math"
	"sort"
)

// CountryRate holds the traditional-labor baselines for one country.
type CountryRate struct {
	// BPOPerMinute converts total handling minutes into a BPO-equivalent cost (USD).
	BPOPerMinute float64 `json:"bpo_per_minute"`
	// BaseCostPerAgent is the flat monthly cost of one outsourced agent (USD).
	BaseCostPerAgent float64 `json:"base_cost_per_agent"`
}

// RateTable is the read-only reference data the engine prices against.
// The zero value is an empty table; build one with NewRateTable or DefaultRates.
type RateTable struct {
	countries      map[string]CountryRate
	aiCostPerAgent float64
}

const defaultAICostPerAgent = 150

var defaultCountryRates = map[string]CountryRate{
	"Bangladesh":    {BPOPerMinute: 0.40, BaseCostPerAgent: 500},
	"Philippines":   {BPOPerMinute: 0.90, BaseCostPerAgent: 900},
	"India":         {BPOPerMinute: 0.55, BaseCostPerAgent: 650},
	"Pakistan":      {BPOPerMinute: 0.45, BaseCostPerAgent: 550},
	"Vietnam":       {BPOPerMinute: 0.60, BaseCostPerAgent: 700},
	"Kenya":         {BPOPerMinute: 0.50, BaseCostPerAgent: 600},
	"Egypt":         {BPOPerMinute: 0.50, BaseCostPerAgent: 600},
	"South Africa":  {BPOPerMinute: 1.10, BaseCostPerAgent: 1200},
	"Mexico":        {BPOPerMinute: 1.20, BaseCostPerAgent: 1400},
	"Colombia":      {BPOPerMinute: 1.05, BaseCostPerAgent: 1300},
	"Poland":        {BPOPerMinute: 1.60, BaseCostPerAgent: 2200},
	"United States": {BPOPerMinute: 2.80, BaseCostPerAgent: 4200},
}

// DefaultRates returns the compiled-in rate table.
func DefaultRates() RateTable {
	return NewRateTable(defaultCountryRates, defaultAICostPerAgent)
}

// NewRateTable copies rows so later changes to the caller's map are not observed.
func NewRateTable(rows map[string]CountryRate, aiCostPerAgent float64) RateTable {
	countries := make(map[string]CountryRate, len(rows))
	for name, rate := range rows {
		countries[name] = rate
	}
	return RateTable{countries: countries, aiCostPerAgent: aiCostPerAgent}
}

// Lookup returns the rate row for country.
func (t RateTable) Lookup(country string) (CountryRate, bool) {
	rate, ok := t.countries[country]
	return rate, ok
}

// AICostPerAgent is the flat monthly AI-platform cost that replaces one agent.
func (t RateTable) AICostPerAgent() float64 {
	return t.aiCostPerAgent
}

// Countries returns the country names in the table, sorted.
func (t RateTable) Countries() []string {
	names := make([]string, 0, len(t.countries))
	for name := range t.countries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of countries in the table.
func (t RateTable) Len() int {
	return len(t.countries)
}

func (t RateTable) with(country string, rate CountryRate) RateTable {
	next := NewRateTable(t.countries, t.aiCostPerAgent)
	next.countries[country] = rate
	return next
}

func (t RateTable) validate() error {
	if !validAmount(t.aiCostPerAgent) {
		return fmt.Errorf("%w: ai cost per agent %v", ErrInvalidRates, t.aiCostPerAgent)
	}
	for name, rate := range t.countries {
		if name == "" {
			return fmt.Errorf("%w: empty country name", ErrInvalidRates)
		}
		if !validAmount(rate.BPOPerMinute) || !validAmount(rate.BaseCostPerAgent) {
			return fmt.Errorf("%w: country %q has rate %+v", ErrInvalidRates, name, rate)
		}
	}
	return nil
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
