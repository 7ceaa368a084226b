package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sentratech/roi-engine/internal/report"
	"github.com/sentratech/roi-engine/internal/roi"
)

type calculateOptions struct {
	req roi.Request

	agents       float64
	manualAgents float64

	title    string
	company  string
	format   string
	xlsxPath string
}

func newCalculateCmd(a *app) *cobra.Command {
	o := &calculateOptions{}

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compute the ROI report for one scenario",
		Long: `Compute the cost comparison, payback, ROI and monthly projection for one scenario.

The default mode is call_volume with headcount derived from the workload.
Use --mode agent_count --agents N to fix the headcount, or --sub-mode manual
--manual-agents N to override it while keeping call volume as the input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("agents") {
				o.req.AgentCount = &o.agents
			}
			if cmd.Flags().Changed("manual-agents") {
				o.req.ManualAgentCount = &o.manualAgents
			}
			return runCalculate(cmd.OutOrStdout(), a, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.req.Country, "country", "c", "", "outsourcing country")
	f.Float64Var(&o.req.Calls, "calls", 0, "calls per month")
	f.Float64Var(&o.req.Interactions, "interactions", 0, "non-call interactions per month")
	f.Float64Var(&o.req.CallAHT, "call-aht", 0, "average call handle time in minutes")
	f.Float64Var(&o.req.InteractionAHT, "interaction-aht", 0, "average interaction handle time in minutes")
	f.Float64Var(&o.req.AutomationPct, "automation", 0, "automated share of minutes, 0 to 1")
	f.StringVar((*string)(&o.req.Mode), "mode", string(roi.ModeCallVolume), "calculation mode (call_volume, agent_count)")
	f.StringVar((*string)(&o.req.VolumeSubMode), "sub-mode", string(roi.SubModeDerived), "call_volume headcount source (derived, manual)")
	f.Float64Var(&o.agents, "agents", 0, "agent headcount in agent_count mode")
	f.Float64Var(&o.manualAgents, "manual-agents", 0, "agent headcount in manual sub-mode")
	f.Float64Var(&o.req.SentraPricePer1k, "price", 0, "AI platform price per bundle")
	f.Float64Var(&o.req.BundlesPerMonth, "bundles", 1, "bundles per month")
	f.Float64Var(&o.req.ImplCost, "impl-cost", 0, "one-time implementation cost")
	f.IntVar(&o.req.PeriodMonths, "months", roi.MonthsPerYear, "projection period in months")
	f.BoolVar(&o.req.ShowInternalBreakdown, "breakdown", false, "include the internal cost breakdown")
	f.StringVar(&o.title, "title", "", "report title")
	f.StringVar(&o.company, "company", "", "company name")
	f.StringVarP(&o.format, "format", "f", "text", "output format (text, json)")
	f.StringVar(&o.xlsxPath, "xlsx", "", "also write an Excel workbook to this path")
	_ = cmd.MarkFlagRequired("country")

	return cmd
}

func runCalculate(out io.Writer, a *app, o *calculateOptions) error {
	if o.format != "text" && o.format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", o.format)
	}

	start := time.Now()
	result, err := a.engine.CalculateRequest(o.req)
	if err != nil {
		a.log.Debug("calculation rejected", zap.String("kind", roi.ErrorKind(err)), zap.Error(err))
		return err
	}
	a.log.Debug("calculation done",
		zap.String("country", result.Country),
		zap.String("mode", string(result.Mode)),
		zap.Duration("elapsed", time.Since(start)),
	)

	meta := report.Meta{Title: o.title, Company: o.company}
	if o.xlsxPath != "" {
		if err := writeXLSXFile(o.xlsxPath, meta, result); err != nil {
			return err
		}
		a.log.Info("workbook written", zap.String("path", o.xlsxPath))
	}

	if o.format == "json" {
		return writeJSON(out, result)
	}
	return report.WriteText(out, meta, result)
}

func writeXLSXFile(path string, meta report.Meta, result roi.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := report.WriteXLSX(f, meta, result); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
