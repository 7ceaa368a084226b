package roi

import "fmt"

// Mode names the calculation mode on the wire.
type Mode string

// VolumeSubMode refines ModeCallVolume.
type VolumeSubMode string

const (
	ModeAgentCount Mode = "agent_count"
	ModeCallVolume Mode = "call_volume"

	SubModeManual  VolumeSubMode = "manual"
	SubModeDerived VolumeSubMode = "derived"
)

const (
	// MonthlyLaborCostPerFTE is a fully loaded hourly rate (2.25) times monthly hours (160).
	MonthlyLaborCostPerFTE = 2.25 * WorkingHoursPerMonth
	WorkingHoursPerMonth   = 160.0
)

// Staffing selects how the headcount side of the report is produced. It is one of
// AgentCount, ManualVolume or DerivedVolume; a nil Staffing behaves as DerivedVolume.
type Staffing interface {
	staffing(humanHours float64) staffingResult
}

// AgentCount takes the headcount directly from the caller.
type AgentCount struct {
	Agents float64
}

// ManualVolume is call-volume mode with a caller-supplied headcount.
type ManualVolume struct {
	Agents float64
}

// DerivedVolume is call-volume mode with headcount derived from human hours.
type DerivedVolume struct{}

type staffingResult struct {
	mode       Mode
	subMode    VolumeSubMode
	agentCount *float64
	fteNeeded  float64
	laborCost  float64
}

func (s AgentCount) staffing(float64) staffingResult {
	return fixedHeadcount(ModeAgentCount, "", s.Agents)
}

func (s ManualVolume) staffing(float64) staffingResult {
	return fixedHeadcount(ModeCallVolume, SubModeManual, s.Agents)
}

func (DerivedVolume) staffing(humanHours float64) staffingResult {
	fte := safeDiv(humanHours, WorkingHoursPerMonth)
	return staffingResult{
		mode:      ModeCallVolume,
		subMode:   SubModeDerived,
		fteNeeded: fte,
		laborCost: fte * MonthlyLaborCostPerFTE,
	}
}

func fixedHeadcount(mode Mode, sub VolumeSubMode, agents float64) staffingResult {
	count := agents
	return staffingResult{
		mode:       mode,
		subMode:    sub,
		agentCount: &count,
		fteNeeded:  agents,
		laborCost:  agents * MonthlyLaborCostPerFTE,
	}
}

// resolveStaffing maps nil to DerivedVolume and dereferences pointer variants so
// validation and pricing only ever see values.
func resolveStaffing(s Staffing) (Staffing, error) {
	switch v := s.(type) {
	case nil:
		return DerivedVolume{}, nil
	case *AgentCount:
		if v == nil {
			return nil, fmt.Errorf("%w: nil %T", ErrInvalidMode, v)
		}
		return *v, nil
	case *ManualVolume:
		if v == nil {
			return nil, fmt.Errorf("%w: nil %T", ErrInvalidMode, v)
		}
		return *v, nil
	case *DerivedVolume:
		return DerivedVolume{}, nil
	default:
		return s, nil
	}
}

func headcountOf(s Staffing) (float64, bool) {
	switch v := s.(type) {
	case AgentCount:
		return v.Agents, true
	case ManualVolume:
		return v.Agents, true
	default:
		return 0, false
	}
}
