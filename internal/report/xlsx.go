package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sentratech/roi-engine/internal/roi"
)

const (
	summarySheet    = "Summary"
	projectionSheet = "Projection"
)

// WriteXLSX writes a two-sheet workbook: the summary figures and the monthly projection.
func WriteXLSX(w io.Writer, meta Meta, r roi.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	rows := [][]any{
		{"Title", meta.Title},
		{"Company", meta.Company},
		{"Country", r.Country},
		{"Mode", modeLabel(r)},
		{"Total minutes", r.TotalMinutes},
		{"Human minutes needed", r.HumanMinutesNeeded},
		{"FTE needed", r.FTENeeded},
		{"Labor cost", Money(r.LaborCost).InexactFloat64()},
		{"Traditional BPO cost per bundle", Money(r.TraditionalBPOCostPerBundle).InexactFloat64()},
		{"SentraTech price per bundle", Money(r.SentraPricePerBundle).InexactFloat64()},
		{"Savings per bundle", Money(r.SavingsPerBundle).InexactFloat64()},
		{"Monthly savings", Money(r.MonthlySavings).InexactFloat64()},
		{"Payback", FormatPayback(r)},
		{"ROI %", decimalRound(r.ROIPercent, 1)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(projectionSheet); err != nil {
		return fmt.Errorf("create projection sheet: %w", err)
	}
	header := []any{"Month", "Cumulative savings (" + Currency + ")"}
	if err := f.SetSheetRow(projectionSheet, "A1", &header); err != nil {
		return fmt.Errorf("write projection header: %w", err)
	}
	for i, p := range r.AnnualProjection {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{p.Month, Money(p.CumulativeSavings).InexactFloat64()}
		if err := f.SetSheetRow(projectionSheet, cell, &row); err != nil {
			return fmt.Errorf("write projection month %d: %w", p.Month, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func decimalRound(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
