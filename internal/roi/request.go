package roi

import "fmt"

// Request is the flat wire shape of a calculation, as posted by the site's calculator.
// Input converts it into the typed Input the engine consumes.
type Request struct {
	Calls                 float64       `json:"calls"`
	Interactions          float64       `json:"interactions"`
	CallAHT               float64       `json:"callAHT"`
	InteractionAHT        float64       `json:"interactionAHT"`
	AutomationPct         float64       `json:"automationPct"`
	Country               string        `json:"country"`
	Mode                  Mode          `json:"mode,omitempty"`
	AgentCount            *float64      `json:"agentCount,omitempty"`
	VolumeSubMode         VolumeSubMode `json:"volumeSubMode,omitempty"`
	ManualAgentCount      *float64      `json:"manualAgentCount,omitempty"`
	SentraPricePer1k      float64       `json:"sentraPricePer1k"`
	BundlesPerMonth       float64       `json:"bundlesPerMonth"`
	ImplCost              float64       `json:"implCost"`
	PeriodMonths          int           `json:"periodMonths"`
	ShowInternalBreakdown bool          `json:"showInternalBreakdown,omitempty"`
}

// Input resolves the mode fields into a Staffing variant.
func (r Request) Input() (Input, error) {
	staffing, err := r.staffing()
	if err != nil {
		return Input{}, err
	}

	return Input{
		Calls:                 r.Calls,
		Interactions:          r.Interactions,
		CallAHT:               r.CallAHT,
		InteractionAHT:        r.InteractionAHT,
		AutomationPct:         r.AutomationPct,
		Country:               r.Country,
		Staffing:              staffing,
		PricePerBundle:        r.SentraPricePer1k,
		BundlesPerMonth:       r.BundlesPerMonth,
		ImplCost:              r.ImplCost,
		PeriodMonths:          r.PeriodMonths,
		ShowInternalBreakdown: r.ShowInternalBreakdown,
	}, nil
}

func (r Request) staffing() (Staffing, error) {
	switch r.Mode {
	case ModeAgentCount:
		if r.AgentCount == nil {
			return nil, fmt.Errorf("%w: agentCount is required in %s mode", ErrInvalidMode, ModeAgentCount)
		}
		return AgentCount{Agents: *r.AgentCount}, nil
	case ModeCallVolume, "":
		switch r.VolumeSubMode {
		case SubModeManual:
			if r.ManualAgentCount == nil {
				return nil, fmt.Errorf("%w: manualAgentCount is required in %s submode", ErrInvalidMode, SubModeManual)
			}
			return ManualVolume{Agents: *r.ManualAgentCount}, nil
		case SubModeDerived, "":
			return DerivedVolume{}, nil
		default:
			return nil, fmt.Errorf("%w: unknown volumeSubMode %q", ErrInvalidMode, r.VolumeSubMode)
		}
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidMode, r.Mode)
	}
}
