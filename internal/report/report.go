// Package report renders ROI results for people: rounded currency, plain text and
// spreadsheet exports. Rounding happens here and nowhere in the engine.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sentratech/roi-engine/internal/roi"
)

// Currency is the ISO code shown next to amounts.
const Currency = "USD"

// Money rounds v half away from zero to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// FormatMoney renders v as "1234.50 USD".
func FormatMoney(v float64) string {
	return Money(v).StringFixed(2) + " " + Currency
}

// FormatPercent renders v with one decimal, e.g. "258.6%".
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).Round(1).StringFixed(1) + "%"
}

// FormatPayback renders the payback period the way the calculator shows it.
func FormatPayback(r roi.Result) string {
	switch {
	case r.PaybackMonths == nil, !r.PaybackExists && r.IsCostIncrease:
		return "not reached"
	case !r.PaybackExists:
		return "immediate"
	default:
		return decimal.NewFromFloat(*r.PaybackMonths).Round(1).StringFixed(1) + " months"
	}
}

// Meta carries the descriptive fields saved alongside a report.
type Meta struct {
	Title   string
	Company string
}

// WriteText writes a plain-text report for r.
func WriteText(w io.Writer, meta Meta, r roi.Result) error {
	var b strings.Builder

	if meta.Title != "" {
		fmt.Fprintf(&b, "%s\n", meta.Title)
	}
	if meta.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", meta.Company)
	}
	fmt.Fprintf(&b, "Country: %s\n", r.Country)
	fmt.Fprintf(&b, "Mode: %s\n", modeLabel(r))
	b.WriteString("\nVolume:\n")
	fmt.Fprintf(&b, "  Total minutes: %s\n", decimal.NewFromFloat(r.TotalMinutes).Round(0).String())
	fmt.Fprintf(&b, "  Human minutes needed: %s\n", decimal.NewFromFloat(r.HumanMinutesNeeded).Round(0).String())
	fmt.Fprintf(&b, "  FTE needed: %s\n", decimal.NewFromFloat(r.FTENeeded).Round(2).StringFixed(2))
	if r.AgentCount != nil {
		fmt.Fprintf(&b, "  Agents: %s\n", decimal.NewFromFloat(*r.AgentCount).String())
	}
	fmt.Fprintf(&b, "  Labor cost: %s\n", FormatMoney(r.LaborCost))

	b.WriteString("\nCost per bundle:\n")
	fmt.Fprintf(&b, "  Traditional BPO: %s\n", FormatMoney(r.TraditionalBPOCostPerBundle))
	fmt.Fprintf(&b, "  SentraTech: %s\n", FormatMoney(r.SentraPricePerBundle))
	fmt.Fprintf(&b, "  Savings: %s\n", FormatMoney(r.SavingsPerBundle))

	b.WriteString("\nSummary:\n")
	fmt.Fprintf(&b, "  Monthly savings: %s\n", FormatMoney(r.MonthlySavings))
	fmt.Fprintf(&b, "  Payback: %s\n", FormatPayback(r))
	fmt.Fprintf(&b, "  ROI: %s\n", FormatPercent(r.ROIPercent))
	if r.IsCostIncrease {
		b.WriteString("  Note: cost increase at this price\n")
	}

	if len(r.AnnualProjection) > 0 {
		b.WriteString("\nProjection:\n")
		for _, p := range r.AnnualProjection {
			fmt.Fprintf(&b, "  Month %d: %s\n", p.Month, FormatMoney(p.CumulativeSavings))
		}
	}

	if r.Breakdown != nil && r.InternalSentraCost != nil {
		b.WriteString("\nInternal cost:\n")
		fmt.Fprintf(&b, "  Total: %s\n", FormatMoney(*r.InternalSentraCost))
		fmt.Fprintf(&b, "  STT: %s\n", FormatMoney(r.Breakdown.STTCost))
		fmt.Fprintf(&b, "  TTS: %s\n", FormatMoney(r.Breakdown.TTSCost))
		fmt.Fprintf(&b, "  LLM: %s\n", FormatMoney(r.Breakdown.LLMCost))
		fmt.Fprintf(&b, "  PSTN: %s\n", FormatMoney(r.Breakdown.PSTNCost))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func modeLabel(r roi.Result) string {
	if r.VolumeSubMode == "" {
		return string(r.Mode)
	}
	return string(r.Mode) + "/" + string(r.VolumeSubMode)
}
