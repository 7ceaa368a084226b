package roi

import (
	"fmt"
	"math"
)

// AgentComparison is the simpler per-agent view: flat baseline cost per outsourced
// agent against the flat AI cost per agent.
type AgentComparison struct {
	Country                string  `json:"country"`
	Agents                 float64 `json:"agents"`
	TraditionalMonthlyCost float64 `json:"traditional_monthly_cost"`
	AIMonthlyCost          float64 `json:"ai_monthly_cost"`
	MonthlySavings         float64 `json:"monthly_savings"`
	AnnualSavings          float64 `json:"annual_savings"`
	SavingsPercent         float64 `json:"savings_percent"`
}

// CompareAgents prices agents outsourced agents in country against the AI platform.
func (e *Engine) CompareAgents(country string, agents float64) (AgentComparison, error) {
	rate, ok := e.rates.Lookup(country)
	if !ok {
		return AgentComparison{}, fmt.Errorf("%w: %q", ErrInvalidCountry, country)
	}
	if math.IsNaN(agents) || math.IsInf(agents, 0) || agents < 0 {
		return AgentComparison{}, fmt.Errorf("%w: agents %v", ErrInvalidInput, agents)
	}

	traditional := agents * rate.BaseCostPerAgent
	ai := agents * e.rates.AICostPerAgent()
	monthly := traditional - ai
	if !isFinite(traditional) || !isFinite(monthly*MonthsPerYear) {
		return AgentComparison{}, fmt.Errorf("%w: agents %v overflows", ErrInvalidInput, agents)
	}

	return AgentComparison{
		Country:                country,
		Agents:                 agents,
		TraditionalMonthlyCost: traditional,
		AIMonthlyCost:          ai,
		MonthlySavings:         monthly,
		AnnualSavings:          monthly * MonthsPerYear,
		SavingsPercent:         safeDiv(monthly, traditional) * 100,
	}, nil
}
