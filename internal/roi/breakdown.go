package roi

import (
	"fmt"
	"math"
)

// Breakdown splits the internal platform cost by component. Not customer-facing.
type Breakdown struct {
	STTCost  float64 `json:"stt_cost"`
	TTSCost  float64 `json:"tts_cost"`
	LLMCost  float64 `json:"llm_cost"`
	PSTNCost float64 `json:"pstn_cost"`
}

// Total sums the components.
func (b Breakdown) Total() float64 {
	return b.STTCost + b.TTSCost + b.LLMCost + b.PSTNCost
}

// CostWeights are the share of the internal cost attributed to each component.
// They must be non-negative and sum to 1.
type CostWeights struct {
	STT  float64 `json:"stt"`
	TTS  float64 `json:"tts"`
	LLM  float64 `json:"llm"`
	PSTN float64 `json:"pstn"`
}

// InternalCostModel estimates what one bundle costs the platform to serve.
type InternalCostModel struct {
	// PerHandledMinute is the cost of one automated minute across all components.
	PerHandledMinute float64
	Weights          CostWeights
}

const weightTolerance = 1e-9

// DefaultInternalCost returns the documented default split.
func DefaultInternalCost() InternalCostModel {
	return InternalCostModel{
		PerHandledMinute: 0.05,
		Weights: CostWeights{
			STT:  0.20,
			TTS:  0.25,
			LLM:  0.35,
			PSTN: 0.20,
		},
	}
}

// split returns the internal cost of the automated minutes, capped at the bundle
// price, and its component breakdown. PSTN takes the remainder so the parts add up.
func (m InternalCostModel) split(totalMinutes, automationPct, price float64) (float64, Breakdown) {
	handled := totalMinutes * clamp01(automationPct)
	total := math.Min(handled*m.PerHandledMinute, math.Max(price, 0))

	b := Breakdown{
		STTCost: total * m.Weights.STT,
		TTSCost: total * m.Weights.TTS,
		LLMCost: total * m.Weights.LLM,
	}
	b.PSTNCost = total - b.STTCost - b.TTSCost - b.LLMCost
	return total, b
}

func (m InternalCostModel) validate() error {
	if !validAmount(m.PerHandledMinute) {
		return fmt.Errorf("%w: internal cost per minute %v", ErrInvalidRates, m.PerHandledMinute)
	}
	w := m.Weights
	for _, v := range []float64{w.STT, w.TTS, w.LLM, w.PSTN} {
		if !validAmount(v) {
			return fmt.Errorf("%w: breakdown weights %+v", ErrInvalidRates, w)
		}
	}
	if sum := w.STT + w.TTS + w.LLM + w.PSTN; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: breakdown weights sum to %v", ErrInvalidRates, sum)
	}
	return nil
}
