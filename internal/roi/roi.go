// Package roi compares traditional outsourced support staffing against the AI platform
// and projects the savings over a period.
//
// The engine is pure: Calculate performs no I/O, holds no mutable state and is safe
// for concurrent use. Rate tables are injected at construction and never mutated.
package roi

import (
	"fmt"
	"math"
)

// MonthsPerYear annualizes the per-bundle comparison for the ROI percentage.
const MonthsPerYear = 12

// Input is a validated calculation request.
type Input struct {
	Calls          float64
	Interactions   float64
	CallAHT        float64
	InteractionAHT float64
	AutomationPct  float64
	Country        string

	// Staffing selects the headcount model. Nil means DerivedVolume.
	Staffing Staffing

	// PricePerBundle is the AI-platform price for one 1,000-unit bundle (USD).
	PricePerBundle  float64
	BundlesPerMonth float64
	ImplCost        float64
	PeriodMonths    int

	ShowInternalBreakdown bool
}

// ProjectionPoint is the running savings total at the end of a month.
type ProjectionPoint struct {
	Month             int     `json:"month"`
	CumulativeSavings float64 `json:"cumulative_savings"`
}

// Result is the full financial report for one Input.
type Result struct {
	Country       string        `json:"country"`
	Mode          Mode          `json:"mode"`
	VolumeSubMode VolumeSubMode `json:"volume_sub_mode,omitempty"`

	// AgentCount is nil in derived submode; FTENeeded is always set.
	AgentCount *float64 `json:"agent_count"`

	TotalMinutes       float64 `json:"total_minutes"`
	HumanMinutesNeeded float64 `json:"human_minutes_needed"`
	HumanHoursNeeded   float64 `json:"human_hours_needed"`
	FTENeeded          float64 `json:"fte_needed"`
	LaborCost          float64 `json:"labor_cost"`

	TraditionalBPOCostPerBundle float64 `json:"traditional_bpo_cost_per_bundle"`
	SentraPricePerBundle        float64 `json:"sentra_price_per_bundle"`
	SavingsPerBundle            float64 `json:"savings_per_bundle"`
	MonthlySavings              float64 `json:"monthly_savings"`

	IsProfitable   bool `json:"is_profitable"`
	IsCostIncrease bool `json:"is_cost_increase"`

	PaybackMonths *float64 `json:"payback_months"`
	PaybackExists bool     `json:"payback_exists"`

	ROIPercent float64 `json:"roi_percent"`

	AnnualProjection []ProjectionPoint `json:"annualProjection"`

	InternalSentraCost *float64   `json:"internal_sentra_cost,omitempty"`
	Breakdown          *Breakdown `json:"breakdown,omitempty"`
}

// Engine computes reports against a fixed rate table.
type Engine struct {
	rates    RateTable
	internal InternalCostModel
}

// Option configures an Engine.
type Option func(*Engine)

// WithInternalCost replaces the default internal cost model.
func WithInternalCost(model InternalCostModel) Option {
	return func(e *Engine) {
		e.internal = model
	}
}

// New validates rates and returns an engine that prices against them.
func New(rates RateTable, opts ...Option) (*Engine, error) {
	e := &Engine{
		rates:    NewRateTable(rates.countries, rates.aiCostPerAgent),
		internal: DefaultInternalCost(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.rates.validate(); err != nil {
		return nil, err
	}
	if err := e.internal.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Rates returns the engine's rate table.
func (e *Engine) Rates() RateTable {
	return e.rates
}

// WithCountryRate returns a new engine whose table has country set to rate.
// The receiver is left untouched.
func (e *Engine) WithCountryRate(country string, rate CountryRate) (*Engine, error) {
	next := &Engine{rates: e.rates.with(country, rate), internal: e.internal}
	if err := next.rates.validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// Calculate produces the report for in. It fails only on structurally invalid input:
// an unknown country, a bad headcount or a non-finite number.
func (e *Engine) Calculate(in Input) (Result, error) {
	rate, ok := e.rates.Lookup(in.Country)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidCountry, in.Country)
	}
	staffing, err := resolveStaffing(in.Staffing)
	if err != nil {
		return Result{}, err
	}
	if err := in.validate(staffing); err != nil {
		return Result{}, err
	}

	volume := resolveVolume(in)
	staff := staffing.staffing(volume.humanHours)

	traditional := volume.totalMinutes * rate.BPOPerMinute
	price := in.PricePerBundle
	savingsPerBundle := traditional - price
	monthlySavings := savingsPerBundle * in.BundlesPerMonth

	paybackMonths, paybackExists := payback(in.ImplCost, monthlySavings)

	result := Result{
		Country:       in.Country,
		Mode:          staff.mode,
		VolumeSubMode: staff.subMode,
		AgentCount:    staff.agentCount,

		TotalMinutes:       volume.totalMinutes,
		HumanMinutesNeeded: volume.humanMinutes,
		HumanHoursNeeded:   volume.humanHours,
		FTENeeded:          staff.fteNeeded,
		LaborCost:          staff.laborCost,

		TraditionalBPOCostPerBundle: traditional,
		SentraPricePerBundle:        price,
		SavingsPerBundle:            savingsPerBundle,
		MonthlySavings:              monthlySavings,

		IsProfitable:   savingsPerBundle > 0,
		IsCostIncrease: savingsPerBundle < 0,

		PaybackMonths: paybackMonths,
		PaybackExists: paybackExists,

		ROIPercent:       roiPercent(traditional, price, in.ImplCost),
		AnnualProjection: project(monthlySavings, in.ImplCost, in.PeriodMonths),
	}

	if in.ShowInternalBreakdown {
		total, breakdown := e.internal.split(volume.totalMinutes, in.AutomationPct, price)
		result.InternalSentraCost = &total
		result.Breakdown = &breakdown
	}

	if err := result.checkFinite(); err != nil {
		return Result{}, err
	}
	return result, nil
}

// checkFinite rejects results whose arithmetic overflowed, which finite but huge
// inputs can cause.
func (r Result) checkFinite() error {
	fields := []numberField{
		{"total_minutes", r.TotalMinutes},
		{"human_minutes_needed", r.HumanMinutesNeeded},
		{"human_hours_needed", r.HumanHoursNeeded},
		{"fte_needed", r.FTENeeded},
		{"labor_cost", r.LaborCost},
		{"traditional_bpo_cost_per_bundle", r.TraditionalBPOCostPerBundle},
		{"savings_per_bundle", r.SavingsPerBundle},
		{"monthly_savings", r.MonthlySavings},
		{"roi_percent", r.ROIPercent},
	}
	if r.PaybackMonths != nil {
		fields = append(fields, numberField{"payback_months", *r.PaybackMonths})
	}
	if r.InternalSentraCost != nil {
		fields = append(fields, numberField{"internal_sentra_cost", *r.InternalSentraCost})
	}
	for _, f := range fields {
		if !isFinite(f.value) {
			return fmt.Errorf("%w: %s overflows", ErrInvalidInput, f.name)
		}
	}
	for _, p := range r.AnnualProjection {
		if !isFinite(p.CumulativeSavings) {
			return fmt.Errorf("%w: projection month %d overflows", ErrInvalidInput, p.Month)
		}
	}
	return nil
}

// CalculateRequest resolves a wire request and runs it through the engine.
func (e *Engine) CalculateRequest(req Request) (Result, error) {
	in, err := req.Input()
	if err != nil {
		return Result{}, err
	}
	return e.Calculate(in)
}

type volumeMetrics struct {
	totalMinutes float64
	humanMinutes float64
	humanHours   float64
}

func resolveVolume(in Input) volumeMetrics {
	total := channelMinutes(in.Calls, in.CallAHT) + channelMinutes(in.Interactions, in.InteractionAHT)
	human := total * (1 - clamp01(in.AutomationPct))
	return volumeMetrics{
		totalMinutes: total,
		humanMinutes: human,
		humanHours:   human / 60,
	}
}

// channelMinutes treats a non-positive volume or handle time as no work.
func channelMinutes(units, aht float64) float64 {
	if units <= 0 || aht <= 0 {
		return 0
	}
	return units * aht
}

func payback(implCost, monthlySavings float64) (*float64, bool) {
	if implCost == 0 {
		zero := 0.0
		return &zero, false
	}
	if monthlySavings <= 0 {
		return nil, false
	}
	months := implCost / monthlySavings
	return &months, true
}

func roiPercent(traditional, price, implCost float64) float64 {
	bpoAnnual := traditional * MonthsPerYear
	totalCosts := price*MonthsPerYear + implCost
	return safeDiv(bpoAnnual-totalCosts, totalCosts) * 100
}

func project(monthlySavings, implCost float64, months int) []ProjectionPoint {
	if months <= 0 {
		return []ProjectionPoint{}
	}
	points := make([]ProjectionPoint, months)
	for i := range points {
		month := i + 1
		points[i] = ProjectionPoint{
			Month:             month,
			CumulativeSavings: monthlySavings*float64(month) - implCost,
		}
	}
	return points
}

type numberField struct {
	name  string
	value float64
}

func (in Input) validate(staffing Staffing) error {
	fields := []numberField{
		{"calls", in.Calls},
		{"interactions", in.Interactions},
		{"callAHT", in.CallAHT},
		{"interactionAHT", in.InteractionAHT},
		{"automationPct", in.AutomationPct},
		{"sentraPricePer1k", in.PricePerBundle},
		{"bundlesPerMonth", in.BundlesPerMonth},
		{"implCost", in.ImplCost},
	}
	for _, f := range fields {
		if !isFinite(f.value) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidInput, f.name)
		}
	}

	if agents, ok := headcountOf(staffing); ok {
		if !isFinite(agents) || agents < 0 {
			return fmt.Errorf("%w: agent count %v", ErrInvalidMode, agents)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
